// Package photos caches per-item photo lists for one inspection and runs
// upload/remove operations against the backend, independent of the debounced
// record-persistence path.
package photos

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/thsolutions/homesheet/internal/domain"
)

// photoSource is the subset of backend.Client that Adapter requires.
type photoSource interface {
	ItemPhotos(ctx context.Context, inspectionID, itemName string) ([]domain.Photo, error)
	UploadPhoto(ctx context.Context, inspectionID, itemName, filename string, file io.Reader) (domain.Photo, error)
	DeletePhoto(ctx context.Context, photoID int64) error
}

// File is one photo handed to Upload.
type File struct {
	Name string
	Data []byte
}

// Adapter holds the itemName -> photo list cache for one inspection. The
// cache may be read by several consumers (a worksheet page and a detail
// subform sharing a pseudo-item name); Fetch is the sole writer of a cache
// entry, so readers always see a list the server confirmed.
type Adapter struct {
	backend      photoSource
	logger       *slog.Logger
	inspectionID string

	mu    sync.RWMutex
	cache map[string][]domain.Photo
}

// NewAdapter creates an empty photo cache for one inspection.
func NewAdapter(backend photoSource, inspectionID string, logger *slog.Logger) *Adapter {
	return &Adapter{
		backend:      backend,
		logger:       logger,
		inspectionID: inspectionID,
		cache:        map[string][]domain.Photo{},
	}
}

// Fetch replaces the cached list for itemName with the server's current list.
// Safe to call redundantly. On failure the cached list is left unchanged.
func (a *Adapter) Fetch(ctx context.Context, itemName string) error {
	photos, err := a.backend.ItemPhotos(ctx, a.inspectionID, itemName)
	if err != nil {
		a.logger.Error("failed to fetch photos",
			"inspection_id", a.inspectionID, "item", itemName, "error", err)
		return fmt.Errorf("failed to fetch photos for %q: %w", itemName, err)
	}

	a.mu.Lock()
	a.cache[itemName] = photos
	a.mu.Unlock()
	return nil
}

// Photos returns a copy of the cached list for itemName.
func (a *Adapter) Photos(itemName string) []domain.Photo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]domain.Photo(nil), a.cache[itemName]...)
}

// ByItem returns a copy of the whole cache, for renderers that take the full
// photosByName map.
func (a *Adapter) ByItem() map[string][]domain.Photo {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string][]domain.Photo, len(a.cache))
	for name, list := range a.cache {
		out[name] = append([]domain.Photo(nil), list...)
	}
	return out
}

// Upload sends each file as its own request, strictly one after another, and
// refreshes the item's cached list after each successful upload so partial
// success shows up incrementally. A failing file is logged and skipped; it
// neither blocks nor rolls back the others. Returns the number of files that
// uploaded successfully.
func (a *Adapter) Upload(ctx context.Context, itemName string, files []File) int {
	uploaded := 0
	for _, f := range files {
		_, err := a.backend.UploadPhoto(ctx, a.inspectionID, itemName, f.Name, bytes.NewReader(f.Data))
		if err != nil {
			a.logger.Error("failed to upload photo",
				"inspection_id", a.inspectionID, "item", itemName, "file", f.Name, "error", err)
			continue
		}
		uploaded++
		if err := a.Fetch(ctx, itemName); err != nil {
			// Upload landed; only the refresh failed. The next Fetch heals it.
			continue
		}
	}
	return uploaded
}

// Remove deletes one photo by id, then refreshes the item's list. On failure
// the cached list is left unchanged.
func (a *Adapter) Remove(ctx context.Context, itemName string, photoID int64) error {
	if err := a.backend.DeletePhoto(ctx, photoID); err != nil {
		a.logger.Error("failed to remove photo",
			"inspection_id", a.inspectionID, "item", itemName, "photo_id", photoID, "error", err)
		return fmt.Errorf("failed to remove photo %d: %w", photoID, err)
	}
	return a.Fetch(ctx, itemName)
}
