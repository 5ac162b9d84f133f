// Package storage holds the key/value backends cart snapshots persist to. The
// contract mirrors browser local storage: string keys, string values, last write
// wins.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetItem when the key holds nothing.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a synchronous string key/value store.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
