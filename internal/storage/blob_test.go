package storage

import (
	"errors"
	"testing"
)

type sample struct {
	Count int `json:"count"`
}

func TestLoadJSON(t *testing.T) {
	tests := []struct {
		name   string
		stored *string
		want   BlobStatus
		count  int
	}{
		{"absent", nil, BlobMissing, 0},
		{"empty", strPtr(""), BlobMissing, 0},
		{"null", strPtr(" null "), BlobMissing, 0},
		{"valid", strPtr(`{"count":4}`), BlobLoaded, 4},
		{"corrupt", strPtr(`{"count":`), BlobCorrupt, 0},
		{"wrong type", strPtr(`{"count":"four"}`), BlobCorrupt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.stored != nil {
				if err := store.Set("k", []byte(*tt.stored)); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
			}

			var v sample
			status, err := LoadJSON(store, "k", &v)
			if err != nil {
				t.Fatalf("LoadJSON returned error: %v", err)
			}
			if status != tt.want {
				t.Errorf("status = %s, want %s", status, tt.want)
			}
			if status == BlobLoaded && v.Count != tt.count {
				t.Errorf("Count = %d, want %d", v.Count, tt.count)
			}
		})
	}
}

func TestGuardPreservesCorruptBlob(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set("k", []byte("garbage"))

	var v sample
	status, _ := LoadJSON(store, "k", &v)
	guard := Guard{Key: "k", Status: status}

	err := guard.Save(store, sample{Count: 1})
	if !errors.Is(err, ErrCorruptBlob) {
		t.Fatalf("Save over corrupt blob = %v, want ErrCorruptBlob", err)
	}

	raw, _ := store.Get("k")
	if string(raw) != "garbage" {
		t.Errorf("corrupt blob was overwritten: %s", raw)
	}
}

func TestGuardSave(t *testing.T) {
	store := NewMemoryStore()
	guard := Guard{Key: "k", Status: BlobMissing}

	if err := guard.Save(store, sample{Count: 2}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	raw, _ := store.Get("k")
	if string(raw) != `{"count":2}` {
		t.Errorf("stored = %s", raw)
	}

	store.FailWrites(true)
	if err := guard.Save(store, sample{Count: 3}); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("Save with failing store = %v, want ErrWriteFailed", err)
	}
}

func strPtr(s string) *string { return &s }
