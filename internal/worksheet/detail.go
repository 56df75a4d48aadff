package worksheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/thsolutions/homesheet/internal/domain"
)

// DetailStore reads and writes a whole-section System Details form as a typed
// value. On the wire a detail form is an ordinary item record whose comment
// field carries the JSON-encoded payload and whose checkbox groups are empty;
// that encoding stays inside this type, callers only ever see their own
// struct. The record lives in the owning section Store's map, so every later
// full-section persist carries the latest saved payload. Photos for the form
// are keyed by the pseudo-item name through the regular photo adapter.
type DetailStore struct {
	store    *Store
	logger   *slog.Logger
	itemName string
}

// NewDetailStore creates a detail store for the section's pseudo-item, e.g.
// "Roof System Details". The store must be the section Store that owns the
// pseudo-item's record.
func NewDetailStore(store *Store, itemName string, logger *slog.Logger) *DetailStore {
	return &DetailStore{store: store, logger: logger, itemName: itemName}
}

// ItemName returns the pseudo-item name the form is stored under.
func (s *DetailStore) ItemName() string { return s.itemName }

// Save updates the pseudo-item record in the section store and persists the
// whole section immediately (detail forms are saved on submit, not debounced
// per keystroke).
func (s *DetailStore) Save(ctx context.Context, details any) error {
	encoded, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.itemName, err)
	}

	s.store.update(s.itemName, false, func(rec *domain.ItemRecord) {
		rec.Comment = string(encoded)
		rec.Status = domain.StatusInspected
	})

	if err := s.store.persistNow(ctx); err != nil {
		return fmt.Errorf("failed to save %s: %w", s.itemName, err)
	}
	return nil
}

// Load decodes the detail payload from the section store into out. A missing
// or empty record leaves out untouched and returns found=false.
func (s *DetailStore) Load(out any) (found bool, err error) {
	rec, ok := s.store.Record(s.itemName)
	if !ok || rec.Comment == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(rec.Comment), out); err != nil {
		s.logger.Error("failed to decode detail payload",
			"inspection_id", s.store.InspectionID(), "item", s.itemName, "error", err)
		return false, fmt.Errorf("failed to decode %s: %w", s.itemName, err)
	}
	return true, nil
}
