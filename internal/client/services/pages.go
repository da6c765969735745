// Package services hosts the page store: the in-memory catalogue of Pages,
// current-page selection, and the upload workflow.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cdot/divelog/internal/client/cloudstore"
	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/client/repositories/pages"
	"github.com/cdot/divelog/internal/common"
	"github.com/cdot/divelog/internal/logging"
	"github.com/google/uuid"
)

// ListItem is one entry of the externally visible page list.
type ListItem struct {
	UID   int64
	Label string
}

// ListView is the pure projection RefreshList rebuilds: list entries in
// display order, and whether the upload action should be enabled.
type ListView struct {
	Items         []ListItem
	UploadEnabled bool
}

// PageService owns the page catalogue and the form snapshot binding. All
// state mutation happens on a single logical thread of control (direct
// reaction to user input or a network response), so there is no locking;
// correctness rests on mutating in memory first and persisting immediately
// after, never the reverse.
type PageService struct {
	repo pages.Repository
	snap *models.Snapshot
	log  logging.Logger
	now  func() time.Time

	// pages is ordered most-recently-created first; this is display and
	// selection order, not upload order.
	list       []*models.Page
	currentUID int64

	// uploading guards against a second upload racing an outstanding one,
	// which would duplicate rows.
	uploading bool
}

// NewPageService wires a page service over the given repository and form
// snapshot.
func NewPageService(repo pages.Repository, snap *models.Snapshot, log logging.Logger) *PageService {
	return &PageService{repo: repo, snap: snap, log: log, now: time.Now}
}

// Initialize hydrates all Pages from the persisted UID list, or, when none
// exist, seeds one Page captured from the current form state. The first Page
// becomes current.
func (s *PageService) Initialize(ctx context.Context) error {
	uids, err := s.repo.LoadIndex(ctx)
	if err != nil {
		return err
	}

	for _, uid := range uids {
		p, err := s.repo.Load(ctx, uid)
		if err != nil {
			return err
		}
		s.list = append(s.list, p)
	}

	if len(s.list) == 0 {
		p := models.CapturePage(s.snap, s.now())
		if err := s.repo.Save(ctx, p); err != nil {
			return err
		}
		if err := s.addPage(ctx, p); err != nil {
			return err
		}
	}

	return s.SetCurrent(ctx, s.list[0].UID)
}

// Pages returns the catalogue in display order.
func (s *PageService) Pages() []*models.Page {
	return s.list
}

// Current returns the Page the form is bound to, or nil when the store has
// not been initialized.
func (s *PageService) Current() *models.Page {
	return s.find(s.currentUID)
}

func (s *PageService) find(uid int64) *models.Page {
	for _, p := range s.list {
		if p.UID == uid {
			return p
		}
	}
	return nil
}

// SetCurrent binds the Page with the given UID to the form: a pure reference
// change plus pushing that Page's data into the snapshot.
func (s *PageService) SetCurrent(ctx context.Context, uid int64) error {
	p := s.find(uid)
	if p == nil {
		return fmt.Errorf("page %d: %w", uid, common.ErrNotFound)
	}
	s.currentUID = uid
	p.RestoreTo(s.snap)
	return nil
}

func (s *PageService) uids() []int64 {
	uids := make([]int64, len(s.list))
	for i, p := range s.list {
		uids[i] = p.UID
	}
	return uids
}

// addPage prepends (newest first) and persists the UID list.
func (s *PageService) addPage(ctx context.Context, p *models.Page) error {
	s.list = append([]*models.Page{p}, s.list...)
	return s.repo.SaveIndex(ctx, s.uids())
}

// CreatePage builds a blank Page, adds it, and makes it current.
func (s *PageService) CreatePage(ctx context.Context) (*models.Page, error) {
	p := models.NewBlankPage(s.now())
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	if err := s.addPage(ctx, p); err != nil {
		return nil, err
	}
	if err := s.SetCurrent(ctx, p.UID); err != nil {
		return nil, err
	}
	return p, nil
}

// removePage drops the Page from the catalogue, persists the shrunk UID
// list, and deletes the stored record. Only ever called as a post-upload
// consequence.
func (s *PageService) removePage(ctx context.Context, uid int64) error {
	for i, p := range s.list {
		if p.UID == uid {
			s.list = append(s.list[:i], s.list[i+1:]...)
			break
		}
	}
	if err := s.repo.SaveIndex(ctx, s.uids()); err != nil {
		return err
	}
	return s.repo.Delete(ctx, uid)
}

// CaptureCurrent re-reads the current Page from the form snapshot and
// persists it.
func (s *PageService) CaptureCurrent(ctx context.Context) error {
	p := s.Current()
	if p == nil {
		return common.ErrNotFound
	}
	p.CaptureFrom(s.snap)
	return s.repo.Save(ctx, p)
}

// RefreshList rebuilds the externally visible page list. The upload action
// is enabled iff at least one Page is worth uploading.
func (s *PageService) RefreshList() ListView {
	view := ListView{Items: make([]ListItem, 0, len(s.list))}
	for _, p := range s.list {
		view.Items = append(view.Items, ListItem{UID: p.UID, Label: p.Describe()})
		if p.WorthUploading() {
			view.UploadEnabled = true
		}
	}
	return view
}

// Upload sends every upload-worthy Page's records to the backend as a single
// batch, then removes exactly the Pages included in that batch. Removal is
// all-or-nothing, gated strictly on backend success, so a failure leaves the
// retry set untouched: uploads are at-least-once and backends must tolerate
// duplicate rows.
func (s *PageService) Upload(ctx context.Context, backend cloudstore.Store) error {
	if s.uploading {
		return common.ErrUploadInProgress
	}
	s.uploading = true
	defer func() { s.uploading = false }()

	if backend == nil || !backend.CanUpload() {
		return common.ErrBackendUnconfigured
	}

	var batch []models.Row
	var included []int64
	for _, p := range s.list {
		if !p.WorthUploading() {
			continue
		}
		batch = append(batch, p.PrepareUpload()...)
		included = append(included, p.UID)
	}

	if len(batch) == 0 {
		return common.ErrNothingToUpload
	}

	batchID := uuid.NewString()
	s.log.Info(ctx, "uploading batch", "batch", batchID, "pages", len(included), "rows", len(batch))

	if err := backend.Upload(ctx, batch); err != nil {
		s.log.Error(ctx, "upload failed", "batch", batchID, "error", err)
		return fmt.Errorf("upload failed: %w", err)
	}

	// Remove exactly the Pages included in the batch, by identity rather
	// than by re-checking worthiness, which could see state that changed
	// during the round-trip.
	for _, uid := range included {
		if err := s.removePage(ctx, uid); err != nil {
			return err
		}
	}

	if len(s.list) == 0 {
		if _, err := s.CreatePage(ctx); err != nil {
			return err
		}
	}
	if err := s.SetCurrent(ctx, s.list[0].UID); err != nil {
		return err
	}

	s.log.Info(ctx, "upload complete", "batch", batchID, "rows", len(batch))
	return nil
}
