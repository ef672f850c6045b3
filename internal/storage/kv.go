// Package storage defines the durable key-value layer for memobook.
//
// The memo store persists its entire collection as a single opaque blob
// under one fixed key. The interface is deliberately small so backends can
// be swapped in tests (the sqlite subpackage is the production backend).
package storage

import "errors"

var (
	// ErrNotFound indicates that the requested key has no stored value.
	ErrNotFound = errors.New("key not found")

	// ErrCorrupt indicates that a stored value could not be deserialized.
	// Callers recover locally (seed fallback); this is never fatal.
	ErrCorrupt = errors.New("stored value is corrupt")
)

// KVStore provides durable storage of opaque blobs keyed by string.
type KVStore interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key has never been written.
	Get(key string) ([]byte, error)

	// Set writes value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the value stored under key.
	// Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases the underlying resources.
	Close() error
}
