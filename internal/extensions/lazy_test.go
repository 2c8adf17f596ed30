package extensions

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

type mockResolver struct {
	home  string
	err   error
	calls atomic.Int32
	gate  chan struct{}
}

func (m *mockResolver) HomeDir(ctx context.Context) (string, error) {
	m.calls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	if m.err != nil {
		return "", m.err
	}
	return m.home, nil
}

func TestLazyConstructsOnce(t *testing.T) {
	resolver := &mockResolver{home: t.TempDir()}
	lazy := NewLazy(resolver, "extensions")

	first, err := lazy.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := lazy.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if first != second {
		t.Error("Expected the same handler instance on repeat calls")
	}
	if n := resolver.calls.Load(); n != 1 {
		t.Errorf("Expected exactly one home resolution, got %d", n)
	}
	if first.Dir() != filepath.Join(resolver.home, "extensions") {
		t.Errorf("Handler scoped to wrong directory: %s", first.Dir())
	}
}

func TestLazyConcurrentFirstUse(t *testing.T) {
	resolver := &mockResolver{home: t.TempDir(), gate: make(chan struct{})}
	lazy := NewLazy(resolver, "extensions")

	const n = 16
	handlers := make([]*Handler, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handlers[i], errs[i] = lazy.Get(context.Background())
		}(i)
	}

	// release the suspended home-dir round trip once everyone is waiting
	close(resolver.gate)
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if handlers[i] != handlers[0] {
			t.Fatalf("caller %d observed a different instance", i)
		}
	}
	if calls := resolver.calls.Load(); calls != 1 {
		t.Errorf("Expected one construction round trip, got %d", calls)
	}
}

func TestLazyFailureCachesNothing(t *testing.T) {
	resolver := &mockResolver{err: errors.New("host unavailable")}
	lazy := NewLazy(resolver, "extensions")

	if _, err := lazy.Get(context.Background()); err == nil {
		t.Fatal("Expected resolution failure to surface")
	}

	// recovery: next call retries construction from scratch
	resolver.err = nil
	resolver.home = t.TempDir()
	handler, err := lazy.Get(context.Background())
	if err != nil {
		t.Fatalf("Expected retry after failure to succeed: %v", err)
	}
	if handler == nil {
		t.Fatal("Expected a handler after successful retry")
	}
	if calls := resolver.calls.Load(); calls != 2 {
		t.Errorf("Expected two resolution attempts, got %d", calls)
	}
}
