// Package worksheet keeps the in-memory state of one inspection worksheet
// section synchronized with the remote backend: fetch on load, optimistic
// local edits, and a debounced full-section persist.
package worksheet

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/thsolutions/homesheet/internal/debounce"
	"github.com/thsolutions/homesheet/internal/domain"
)

// recordSource is the subset of backend.Client that Store requires.
type recordSource interface {
	SectionRecords(ctx context.Context, section domain.Section, inspectionID string) ([]domain.ItemRecord, error)
	UpsertSectionRecords(ctx context.Context, section domain.Section, records []domain.ItemRecord) error
}

// State is the lifecycle of a section store. There is no saving state:
// persistence is fire-and-forget relative to callers.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateReady
	StateError
)

// Store owns the itemName -> ItemRecord map for one (inspection, section)
// pair. Edits mutate the map immediately and schedule a debounced persist of
// the whole section; all fields of the section share one debounced writer so
// rapid multi-field edits collapse into a single write.
type Store struct {
	backend      recordSource
	logger       *slog.Logger
	inspectionID string
	section      domain.Section

	mu      sync.Mutex
	records map[string]domain.ItemRecord
	state   State
	loadErr error

	writer *debounce.Debouncer[[]domain.ItemRecord]
}

// NewStore creates an unloaded store for one (inspectionID, section) pair.
func NewStore(backend recordSource, inspectionID string, section domain.Section, delay time.Duration, logger *slog.Logger) *Store {
	s := &Store{
		backend:      backend,
		logger:       logger,
		inspectionID: inspectionID,
		section:      section,
		records:      map[string]domain.ItemRecord{},
	}
	s.writer = debounce.New(delay, s.persist)
	return s
}

// Section returns the section this store synchronizes.
func (s *Store) Section() domain.Section { return s.section }

// InspectionID returns the inspection this store synchronizes.
func (s *Store) InspectionID() string { return s.inspectionID }

// Load fetches the existing records for the pair and replaces the in-memory
// map. Calling it again for the same pair is safe: the re-fetch wins. On
// fetch failure the map is left as it was and the store reports StateError
// until the next Load.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	fetched, err := s.backend.SectionRecords(ctx, s.section, s.inspectionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateError
		s.loadErr = err
		s.logger.Error("failed to load section records",
			"inspection_id", s.inspectionID, "section", s.section, "error", err)
		return err
	}

	records := make(map[string]domain.ItemRecord, len(fetched))
	for _, rec := range fetched {
		rec.Materialize()
		if rec.InspectionID == "" {
			rec.InspectionID = s.inspectionID
		}
		records[rec.ItemName] = rec
	}
	s.records = records
	s.state = StateReady
	s.loadErr = nil
	return nil
}

// State reports the store lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last failed load, if the store is in StateError.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Record returns a copy of one item's record and whether it exists yet.
func (s *Store) Record(itemName string) (domain.ItemRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[itemName]
	if !ok {
		return domain.ItemRecord{}, false
	}
	return rec.Clone(), true
}

// Records returns a copy of the current map.
func (s *Store) Records() map[string]domain.ItemRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.ItemRecord, len(s.records))
	for name, rec := range s.records {
		out[name] = rec.Clone()
	}
	return out
}

// SetCheckbox flips one boolean inside the materials or conditions group of
// an item, leaving the other flags untouched, and returns the updated record.
func (s *Store) SetCheckbox(itemName string, group domain.Group, label string) domain.ItemRecord {
	return s.update(itemName, true, func(rec *domain.ItemRecord) {
		flags := rec.Materials
		if group == domain.GroupConditions {
			flags = rec.Conditions
		}
		flags[label] = !flags[label]
	})
}

// SetComment replaces the free-text comment of an item.
func (s *Store) SetComment(itemName, comment string) domain.ItemRecord {
	return s.update(itemName, true, func(rec *domain.ItemRecord) {
		rec.Comment = comment
	})
}

// SetStatus sets the inspection status by direct user action. No
// auto-promotion is applied here: an explicit choice always sticks.
func (s *Store) SetStatus(itemName string, status domain.Status) domain.ItemRecord {
	return s.update(itemName, false, func(rec *domain.ItemRecord) {
		rec.Status = status
	})
}

// update applies mutate to the item's record (creating it with defaults on
// first touch), re-evaluates the auto-promotion invariant when requested,
// stores the result, and schedules a debounced persist of the full section.
// The updated record is returned synchronously; a later write failure is
// logged, never rolled back.
func (s *Store) update(itemName string, promote bool, mutate func(*domain.ItemRecord)) domain.ItemRecord {
	s.mu.Lock()

	rec, ok := s.records[itemName]
	if !ok {
		rec = domain.NewItemRecord(s.inspectionID, itemName)
	} else {
		rec = rec.Clone()
	}

	mutate(&rec)

	// A record with any material or condition selected has been addressed, so
	// it counts as inspected unless the inspector has set a sticky override.
	if promote && !rec.Status.Override() && rec.HasSelection() {
		rec.Status = domain.StatusInspected
	}

	s.records[itemName] = rec
	// Hand the snapshot to the writer before releasing the lock so snapshots
	// reach the debouncer in the order they were taken.
	s.writer.Call(s.snapshotLocked())
	s.mu.Unlock()

	return rec.Clone()
}

// snapshotLocked serializes the current map into a stable slice for the wire.
// Callers must hold s.mu.
func (s *Store) snapshotLocked() []domain.ItemRecord {
	out := make([]domain.ItemRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out
}

// persist is the debounced writer action: one bulk upsert carrying the whole
// section state. Failures are logged and the optimistic in-memory state is
// kept, so the client may diverge from the server until the next write lands.
func (s *Store) persist(records []domain.ItemRecord) {
	if err := s.backend.UpsertSectionRecords(context.Background(), s.section, records); err != nil {
		s.logger.Error("failed to persist section records",
			"inspection_id", s.inspectionID, "section", s.section, "error", err)
	}
}

// persistNow sends the current full-section state synchronously, dropping any
// pending debounced write, which the snapshot sent here supersedes. Unlike the
// debounced path the failure is returned, not just logged.
func (s *Store) persistNow(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.snapshotLocked()
	s.writer.Stop()
	s.mu.Unlock()

	if err := s.backend.UpsertSectionRecords(ctx, s.section, snapshot); err != nil {
		s.logger.Error("failed to persist section records",
			"inspection_id", s.inspectionID, "section", s.section, "error", err)
		return err
	}
	return nil
}

// Flush forces any pending debounced persist to run now. Call on page
// teardown so the last burst of edits is not lost with the timer.
func (s *Store) Flush() {
	s.writer.Flush()
}

// Discard drops any pending persist without sending it.
func (s *Store) Discard() {
	s.writer.Stop()
}
