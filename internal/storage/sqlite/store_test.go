package sqlite

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/julianstephens/dayly/internal/constants"
	"github.com/julianstephens/dayly/internal/storage"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "dayly.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreImplementsProvider(t *testing.T) {
	var _ storage.Provider = (*Store)(nil)
	var _ storage.Migrator = (*Store)(nil)
	var _ storage.Reviser = (*Store)(nil)
}

func TestGetSet(t *testing.T) {
	store := setupStore(t)

	if _, err := store.Get(constants.StreakKey); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get on empty db = %v, want ErrNotFound", err)
	}

	if err := store.Set(constants.StreakKey, []byte(`{"current_length":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(constants.StreakKey, []byte(`{"current_length":2}`)); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	got, err := store.Get(constants.StreakKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `{"current_length":2}` {
		t.Errorf("Get = %s", got)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != constants.StreakKey {
		t.Errorf("Keys = %v", keys)
	}
}

func TestRevisionsArePruned(t *testing.T) {
	store := setupStore(t)

	writes := constants.MaxBlobRevisions + 3
	for i := 0; i < writes; i++ {
		if err := store.Set(constants.GoalsKey, []byte(fmt.Sprintf(`{"n":%d}`, i))); err != nil {
			t.Fatalf("Set %d failed: %v", i, err)
		}
	}

	revs, err := store.Revisions(constants.GoalsKey)
	if err != nil {
		t.Fatalf("Revisions failed: %v", err)
	}
	if len(revs) != constants.MaxBlobRevisions {
		t.Fatalf("kept %d revisions, want %d", len(revs), constants.MaxBlobRevisions)
	}
	// Newest replaced value first
	if want := fmt.Sprintf(`{"n":%d}`, writes-2); string(revs[0]) != want {
		t.Errorf("newest revision = %s, want %s", revs[0], want)
	}
}

func TestLoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dayly.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Set(constants.SettingsKey, []byte(`{}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	first.Close()

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer second.Close()

	if _, err := second.Get(constants.SettingsKey); err != nil {
		t.Errorf("Get after reload failed: %v", err)
	}

	applied, err := second.Migrate(nil)
	if err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("Migrate on current schema applied %d", applied)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "none.db"))
	if err := store.Load(); err == nil {
		t.Fatal("Load should fail when the database does not exist")
	}
	if _, err := store.Get("k"); !errors.Is(err, storage.ErrNotLoaded) {
		t.Errorf("Get on unloaded store = %v, want ErrNotLoaded", err)
	}
}
