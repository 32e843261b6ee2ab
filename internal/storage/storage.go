package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has no stored value.
var ErrKeyNotFound = errors.New("key not found")

// Store is the key-value persistence medium shared by the profile store and
// the session manager. Each component owns a fixed key namespace and treats a
// call as a single atomic read or write.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
