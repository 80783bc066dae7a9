package storage

import "errors"

var (
	// ErrNotFound is returned by Get when no value is stored under the key
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a store is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrCorruptBlob is returned when a save would overwrite a blob that
	// failed to parse earlier in the session
	ErrCorruptBlob = errors.New("refusing to overwrite unreadable stored data")
)

// Provider is a key/value store of opaque JSON blobs. Engines own the
// serialization format; providers only move bytes.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by providers backed by a versioned SQL schema
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
}

// Reviser is implemented by providers that retain replaced blob values
type Reviser interface {
	Revisions(key string) ([][]byte, error)
}
