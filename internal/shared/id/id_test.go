package id

import (
	"strings"
	"testing"
)

func TestPrefixes(t *testing.T) {
	if !strings.HasPrefix(string(NewSessionID()), "sess_") {
		t.Error("Session ID missing sess_ prefix")
	}
	if !strings.HasPrefix(string(NewSubscriptionID()), "sub_") {
		t.Error("Subscription ID missing sub_ prefix")
	}
}

func TestUniqueness(t *testing.T) {
	seen := make(map[SubscriptionID]bool)
	for i := 0; i < 1000; i++ {
		id := NewSubscriptionID()
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestSortability(t *testing.T) {
	g := Default()
	first := g.Generate()
	second := g.Generate()
	if first.Time() > second.Time() {
		t.Errorf("ULID timestamps out of order: %s > %s", first, second)
	}
}

func TestConcurrentGeneration(t *testing.T) {
	done := make(chan string, 64)
	for i := 0; i < 64; i++ {
		go func() {
			done <- Default().GenerateWithPrefix("x")
		}()
	}
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		id := <-done
		if seen[id] {
			t.Fatalf("Duplicate ID under concurrency: %s", id)
		}
		seen[id] = true
	}
}
