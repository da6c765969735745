package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/client/repositories/kvstore"
	"github.com/cdot/divelog/internal/common"
)

const (
	indexKey      = "dive_pages"
	pageKeyPrefix = "dive_page_"
)

// KVRepository implements Repository over a key/value store.
type KVRepository struct {
	kv kvstore.Store
}

// NewKVRepository returns a KVRepository bound to the given store.
func NewKVRepository(kv kvstore.Store) *KVRepository {
	return &KVRepository{kv: kv}
}

func pageKey(uid int64) string {
	return pageKeyPrefix + strconv.FormatInt(uid, 10)
}

func (r *KVRepository) Save(ctx context.Context, p *models.Page) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize page %d: %w", p.UID, err)
	}
	return r.kv.Set(ctx, pageKey(p.UID), string(data))
}

func (r *KVRepository) Load(ctx context.Context, uid int64) (*models.Page, error) {
	data, err := r.kv.Get(ctx, pageKey(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to load page %d: %w", uid, err)
	}
	p := &models.Page{}
	if err := json.Unmarshal([]byte(data), p); err != nil {
		return nil, fmt.Errorf("failed to deserialize page %d: %w", uid, err)
	}
	return p, nil
}

func (r *KVRepository) Delete(ctx context.Context, uid int64) error {
	return r.kv.Delete(ctx, pageKey(uid))
}

func (r *KVRepository) LoadIndex(ctx context.Context) ([]int64, error) {
	data, err := r.kv.Get(ctx, indexKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load page index: %w", err)
	}
	var uids []int64
	if err := json.Unmarshal([]byte(data), &uids); err != nil {
		return nil, fmt.Errorf("failed to deserialize page index: %w", err)
	}
	return uids, nil
}

func (r *KVRepository) SaveIndex(ctx context.Context, uids []int64) error {
	if uids == nil {
		uids = []int64{}
	}
	data, err := json.Marshal(uids)
	if err != nil {
		return fmt.Errorf("failed to serialize page index: %w", err)
	}
	return r.kv.Set(ctx, indexKey, string(data))
}
