package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dayly.json")
	store := NewJSONStore(path)

	if _, err := store.Get("dayly.streak"); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Get before Init = %v, want ErrNotLoaded", err)
	}

	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("store file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("store file mode = %o, want 600", perm)
	}

	if _, err := store.Get("dayly.streak"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := store.Set("dayly.streak", []byte(`{"current_length":3}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set("dayly.goals", []byte(`{not json`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	got, err := reopened.Get("dayly.streak")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"current_length":3}` {
		t.Errorf("Get = %s", got)
	}

	// Unparseable blobs are stored and returned verbatim
	got, _ = reopened.Get("dayly.goals")
	if string(got) != `{not json` {
		t.Errorf("corrupt blob not preserved: %s", got)
	}

	keys, err := reopened.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 2 || keys[0] != "dayly.goals" || keys[1] != "dayly.streak" {
		t.Errorf("Keys = %v", keys)
	}
}

func TestJSONStoreLoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Fatal("Load should fail before init")
	}
}

func TestJSONStoreInitKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayly.json")
	first := NewJSONStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Set("dayly.settings", []byte(`{}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	second := NewJSONStore(path)
	if err := second.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if _, err := second.Get("dayly.settings"); err != nil {
		t.Errorf("re-running Init dropped data: %v", err)
	}
}
