// Package cloudstore defines the upload-backend capability and its
// runtime-selected implementations: Google Sheets append, CSV POST, and S3.
//
// Uploads are at-least-once: the page store resends the same batch after any
// failure, so every backend must tolerate duplicate rows.
package cloudstore

import (
	"context"
	"errors"
	"strings"

	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/client/repositories/kvstore"
	"github.com/cdot/divelog/internal/common"
)

// KeyID is the key/value store entry holding the backend credential.
const KeyID = "cloudstore_key"

// Backend selector values, stored in field 0 of the credential key.
const (
	BackendSheets  = "sheets"
	BackendPostCSV = "postcsv"
	BackendS3      = "s3"
)

// Store is the upload capability. CanUpload reports whether every credential
// field the variant needs is present; Upload durably accepts one batch of
// flattened records in a single round-trip.
type Store interface {
	CanUpload() bool
	Upload(ctx context.Context, rows []models.Row) error
}

// Key is the pipe-delimited credential, addressed by positional field:
// 0 = backend selector, then variant-specific fields (see each variant).
type Key []string

// ParseKey splits a raw credential string into its fields.
func ParseKey(raw string) Key {
	if raw == "" {
		return nil
	}
	return Key(strings.Split(raw, "|"))
}

// Field returns the i-th field, or "" when the key has fewer fields.
func (k Key) Field(i int) string {
	if i < 0 || i >= len(k) {
		return ""
	}
	return k[i]
}

func (k Key) String() string {
	return strings.Join(k, "|")
}

// LoadKey reads the stored credential. A missing entry yields a nil Key, not
// an error: an unconfigured store is a normal state.
func LoadKey(ctx context.Context, kv kvstore.Store) (Key, error) {
	raw, err := kv.Get(ctx, KeyID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseKey(raw), nil
}

// SaveKey stores the credential.
func SaveKey(ctx context.Context, kv kvstore.Store, raw string) error {
	return kv.Set(ctx, KeyID, raw)
}

// New instantiates the variant selected by field 0 of the key.
func New(key Key, opts Options) (Store, error) {
	switch key.Field(0) {
	case BackendSheets:
		return NewSheets(key, opts), nil
	case BackendPostCSV:
		return NewPostCSV(key, opts), nil
	case BackendS3:
		return NewS3(key, opts), nil
	case "":
		return nil, common.ErrBackendUnconfigured
	default:
		return nil, common.ErrUnknownBackend
	}
}
