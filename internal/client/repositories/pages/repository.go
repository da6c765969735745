// Package pages persists Page records and the ordered UID index in the
// key/value store.
//
// Keys: "dive_pages" holds the JSON array of UIDs in display order;
// "dive_page_<uid>" holds one serialized Page.
package pages

import (
	"context"

	"github.com/cdot/divelog/internal/client/models"
)

// Repository describes the persistence operations the page store needs.
type Repository interface {
	// Save serializes the full Page under its UID key.
	Save(ctx context.Context, p *models.Page) error

	// Load deserializes the Page stored under uid. Deserialization
	// failures propagate: a corrupted local record has no safe automatic
	// repair.
	Load(ctx context.Context, uid int64) (*models.Page, error)

	// Delete removes the Page's stored record.
	Delete(ctx context.Context, uid int64) error

	// LoadIndex returns the persisted ordered UID list, or nil when no
	// list has been stored yet.
	LoadIndex(ctx context.Context) ([]int64, error)

	// SaveIndex persists the ordered UID list.
	SaveIndex(ctx context.Context, uids []int64) error
}
