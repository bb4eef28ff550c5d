package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Storage.Get when nothing is stored under the key
var ErrNotFound = errors.New("key not found")

// Storage is a key/value medium holding serialized documents
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
