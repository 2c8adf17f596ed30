package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFlagsParsing(t *testing.T) {
	flags := NewFlags([]string{"--ws=default", "--verbose", "project.vsr", "--port=9000"})

	parsed, err := flags.CLIFlags(context.Background())
	if err != nil {
		t.Fatalf("CLIFlags failed: %v", err)
	}
	if parsed.Flags["ws"] != "default" || parsed.Flags["port"] != "9000" {
		t.Errorf("Unexpected flags: %v", parsed.Flags)
	}
	if parsed.Flags["verbose"] != "true" {
		t.Errorf("Bare flag not defaulted to true: %v", parsed.Flags)
	}
	if len(parsed.Args) != 1 || parsed.Args[0] != "project.vsr" {
		t.Errorf("Unexpected positional args: %v", parsed.Args)
	}
}

func TestFlagsCopyLaunchArgs(t *testing.T) {
	args := []string{"--a=1"}
	flags := NewFlags(args)
	args[0] = "--a=2"

	parsed, _ := flags.CLIFlags(context.Background())
	if parsed.Flags["a"] != "1" {
		t.Error("Flag source shares the caller's slice")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "storage"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "session", []byte("payload")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	value, err := store.Get(ctx, "session")
	if err != nil || string(value) != "payload" {
		t.Fatalf("Get returned %q, %v", value, err)
	}

	keys, err := store.List(ctx)
	if err != nil || len(keys) != 1 || keys[0] != "session" {
		t.Fatalf("List returned %v, %v", keys, err)
	}

	items, err := store.All(ctx)
	if err != nil || len(items) != 1 || string(items[0].Value) != "payload" {
		t.Fatalf("All returned %v, %v", items, err)
	}

	if err := store.Delete(ctx, "session"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	value, err = store.Get(ctx, "session")
	if err != nil || value != nil {
		t.Errorf("Expected nil after delete, got %q, %v", value, err)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())

	value, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Missing key must not error: %v", err)
	}
	if value != nil {
		t.Errorf("Expected nil for missing key, got %q", value)
	}

	// deleting a missing key is a no-op
	if err := store.Delete(context.Background(), "absent"); err != nil {
		t.Errorf("Delete of missing key errored: %v", err)
	}
}

func TestFileStoreRejectsUnsafeKeys(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		if err := store.Put(ctx, key, []byte("x")); err == nil {
			t.Errorf("Key %q accepted", key)
		}
	}
}

func TestFetchLayouts(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "workspace")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	writeFile(t, filepath.Join(dir, "grid.json"), `{"name":"Grid","panels":[]}`)
	writeFile(t, filepath.Join(nested, "split.json"), `{"panels":[1,2]}`)
	writeFile(t, filepath.Join(dir, "broken.json"), `{not json`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `ignored`)

	layouts, err := NewLayouts(dir).FetchLayouts(context.Background())
	if err != nil {
		t.Fatalf("FetchLayouts failed: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("Expected 2 layouts, got %v", layouts)
	}
	if layouts[0].ID != "grid" || layouts[0].Name != "Grid" {
		t.Errorf("Unexpected first layout: %+v", layouts[0])
	}
	// no name field falls back to the file stem
	if layouts[1].ID != "split" || layouts[1].Name != "split" {
		t.Errorf("Unexpected second layout: %+v", layouts[1])
	}
}

func TestFetchLayoutsMissingDirectory(t *testing.T) {
	layouts, err := NewLayouts(filepath.Join(t.TempDir(), "never-created")).FetchLayouts(context.Background())
	if err != nil {
		t.Fatalf("Missing directory must not error: %v", err)
	}
	if len(layouts) != 0 {
		t.Errorf("Expected no layouts, got %v", layouts)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", path, err)
	}
}
