// Package store provides the key-value persistence layer backing the
// fake user API: a storage interface, thread-safe in-memory and
// JSON-file implementations, and a typed adapter for the user
// collection.
package store

import "context"

// UsersKey is the single key under which the whole user collection is
// persisted. Front-ends that seeded data under this key keep working,
// so the value stays as-is.
const UsersKey = "big-long-key-registration-testing"

// KeyValue is a minimal asynchronous key-value store. Implementations
// must be safe for concurrent use.
type KeyValue interface {
	// Get retrieves the value stored under key. The second return is
	// false when the key has never been set.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores or replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
