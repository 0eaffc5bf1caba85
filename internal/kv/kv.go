// Package kv is a minimal key-value persistence layer. Collections such as
// the substitution rules and the audit log are stored as single JSON blobs
// under well-known keys.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when the key has never been saved.
var ErrNotFound = errors.New("kv: key not found")

// Store persists opaque values under string keys. Implementations must be
// safe for concurrent use.
type Store interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
}
