package deeplink

import (
	"context"
	"errors"
	"testing"
)

type memSentinel struct {
	present bool
	setErr  error
}

func (m *memSentinel) Set() error {
	if m.setErr != nil {
		return m.setErr
	}
	m.present = true
	return nil
}

func (m *memSentinel) Consume() (bool, error) {
	was := m.present
	m.present = false
	return was, nil
}

type mockWindow struct {
	reloads   int
	reloadErr error
}

func (w *mockWindow) Reload(ctx context.Context) error {
	if w.reloadErr != nil {
		return w.reloadErr
	}
	w.reloads++
	return nil
}

func (w *mockWindow) Minimize(context.Context) error                       { return nil }
func (w *mockWindow) Maximize(context.Context) error                       { return nil }
func (w *mockWindow) Unmaximize(context.Context) error                     { return nil }
func (w *mockWindow) Close(context.Context) error                          { return nil }
func (w *mockWindow) SetRepresentedFilename(context.Context, string) error { return nil }
func (w *mockWindow) SetColorScheme(context.Context, string) error         { return nil }
func (w *mockWindow) SetLanguage(context.Context, string) error            { return nil }
func (w *mockWindow) HandleTitleBarDoubleClick(context.Context) error      { return nil }

func TestDecodeFromLaunchArgs(t *testing.T) {
	args := []string{
		"--ws=default",
		"visor://open?source=foo",
		"positional",
		"visor://open?source=bar",
	}
	intake, err := NewIntake(args, "visor", &memSentinel{})
	if err != nil {
		t.Fatalf("NewIntake failed: %v", err)
	}

	links := intake.Links()
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %v", links)
	}
	if links[0] != "visor://open?source=foo" || links[1] != "visor://open?source=bar" {
		t.Errorf("Links out of order: %v", links)
	}
}

func TestLinksAreACopy(t *testing.T) {
	intake, _ := NewIntake([]string{"visor://a"}, "visor", &memSentinel{})
	first := intake.Links()
	first[0] = "mutated"
	if intake.Links()[0] != "visor://a" {
		t.Error("Caller mutation leaked into the captured set")
	}
}

func TestSentinelPresentYieldsEmptySet(t *testing.T) {
	sentinel := &memSentinel{present: true}
	intake, err := NewIntake([]string{"visor://stale"}, "visor", sentinel)
	if err != nil {
		t.Fatalf("NewIntake failed: %v", err)
	}

	if links := intake.Links(); len(links) != 0 {
		t.Errorf("Expected empty set with sentinel present, got %v", links)
	}
	if sentinel.present {
		t.Error("Sentinel not cleared on consume")
	}
}

func TestResetReloadCycle(t *testing.T) {
	sentinel := &memSentinel{}
	window := &mockWindow{}
	intake, err := NewIntake([]string{"visor://once"}, "visor", sentinel)
	if err != nil {
		t.Fatalf("NewIntake failed: %v", err)
	}

	if len(intake.Links()) != 1 {
		t.Fatal("Expected one link before reset")
	}

	if err := intake.Reset(context.Background(), window); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if window.reloads != 1 {
		t.Errorf("Expected 1 reload, got %d", window.reloads)
	}

	// simulate the post-reload attach
	if err := intake.Rearm(); err != nil {
		t.Fatalf("Rearm failed: %v", err)
	}
	if links := intake.Links(); len(links) != 0 {
		t.Errorf("Stale links redelivered after reset cycle: %v", links)
	}

	// a second reload without reset redelivers the launch links
	if err := intake.Rearm(); err != nil {
		t.Fatalf("Rearm failed: %v", err)
	}
	if links := intake.Links(); len(links) != 1 {
		t.Errorf("Expected launch links back after plain reload, got %v", links)
	}
}

func TestResetSentinelFailureSkipsReload(t *testing.T) {
	sentinel := &memSentinel{setErr: errors.New("disk full")}
	window := &mockWindow{}
	intake, _ := NewIntake([]string{"visor://x"}, "visor", sentinel)

	if err := intake.Reset(context.Background(), window); err == nil {
		t.Fatal("Expected error when sentinel cannot be set")
	}
	if window.reloads != 0 {
		t.Error("Reload issued despite sentinel failure")
	}
	if intake.CurrentPhase() != PhaseArmed {
		t.Error("Intake not restored to armed after failed reset")
	}
}

func TestResetReloadFailureSurfaces(t *testing.T) {
	window := &mockWindow{reloadErr: errors.New("shell gone")}
	intake, _ := NewIntake(nil, "visor", &memSentinel{})

	if err := intake.Reset(context.Background(), window); err == nil {
		t.Fatal("Expected reload failure to surface")
	}
}

func TestFileSentinel(t *testing.T) {
	dir := t.TempDir()
	sentinel := NewFileSentinel(dir)

	present, err := sentinel.Consume()
	if err != nil || present {
		t.Fatalf("Fresh sentinel should be absent: present=%v err=%v", present, err)
	}

	if err := sentinel.Set(); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	present, err = sentinel.Consume()
	if err != nil || !present {
		t.Fatalf("Expected sentinel present after Set: present=%v err=%v", present, err)
	}

	// consumed exactly once
	present, _ = sentinel.Consume()
	if present {
		t.Error("Sentinel survived consume")
	}
}
