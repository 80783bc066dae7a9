package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/dayly/internal/logger"
)

// BlobStatus describes the outcome of decoding a stored blob
type BlobStatus int

const (
	BlobMissing BlobStatus = iota
	BlobLoaded
	BlobCorrupt
)

func (s BlobStatus) String() string {
	switch s {
	case BlobLoaded:
		return "loaded"
	case BlobCorrupt:
		return "corrupt"
	default:
		return "missing"
	}
}

// DecodeFunc turns raw stored bytes into the caller's value.
type DecodeFunc func(raw []byte) error

// LoadBlob reads key and hands non-empty, non-null data to decode. A decode
// failure is reported as BlobCorrupt with a nil error so callers fall back to
// defaults; only provider failures are returned as errors.
func LoadBlob(p Provider, key string, decode DecodeFunc) (BlobStatus, error) {
	raw, err := p.Get(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return BlobMissing, nil
		}
		return BlobMissing, fmt.Errorf("failed to read %s: %w", key, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return BlobMissing, nil
	}

	if err := decode(trimmed); err != nil {
		logger.Warn("Stored data is unreadable, using defaults and leaving it untouched", "key", key, "error", err)
		return BlobCorrupt, nil
	}
	return BlobLoaded, nil
}

// LoadJSON is LoadBlob with a plain json.Unmarshal decoder.
func LoadJSON(p Provider, key string, v any) (BlobStatus, error) {
	return LoadBlob(p, key, func(raw []byte) error {
		return json.Unmarshal(raw, v)
	})
}

// SaveJSON marshals v and writes it under key.
func SaveJSON(p Provider, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := p.Set(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Guard tracks whether a key's stored blob was unreadable at load time and
// blocks writes to it for the rest of the session.
type Guard struct {
	Key    string
	Status BlobStatus
}

// Save writes v unless the blob was corrupt at load time.
func (g Guard) Save(p Provider, v any) error {
	if g.Status == BlobCorrupt {
		logger.Warn("Skipping save over unreadable stored data", "key", g.Key)
		return ErrCorruptBlob
	}
	if err := SaveJSON(p, g.Key, v); err != nil {
		logger.Error("Save failed", "key", g.Key, "error", err)
		return err
	}
	return nil
}
