// Package kvstore provides the generic string key/value store backing all
// persisted logbook state. Keys follow a fixed naming convention owned by
// the callers (see repositories/pages and cloudstore).
package kvstore

import "context"

// Store describes the persistence operations the logbook core needs.
// Get returns common.ErrNotFound when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
