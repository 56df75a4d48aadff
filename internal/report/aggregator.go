// Package report folds an inspection's section records, photos, and context
// data into an ordered, densely indexed document for read-only presentation
// and for the AI analysis feed.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/thsolutions/homesheet/internal/domain"
)

// reportSource is the subset of backend.Client that Aggregator requires.
type reportSource interface {
	SectionRecords(ctx context.Context, section domain.Section, inspectionID string) ([]domain.ItemRecord, error)
	AllPhotos(ctx context.Context, inspectionID string) ([]domain.Photo, error)
	PropertyDetails(ctx context.Context, propertyID, inspectionID string) (*domain.PropertyDetails, error)
	InspectionDetails(ctx context.Context, inspectionID, propertyID string) (*domain.InspectionDetails, error)
	Address(ctx context.Context, propertyID string) (*domain.Address, error)
}

// Mode selects which items a built document carries.
type Mode int

const (
	// ModeFull keeps every fetched record, the worksheet view of the report.
	ModeFull Mode = iota
	// ModeAnalysisFeed drops items that are NotInspected with no comment and
	// no photos: they represent unobserved, not negative, findings and would
	// mislead the analyzer.
	ModeAnalysisFeed
)

// Item is one record of a visible section with its display index, photo list,
// and pre-joined checkbox summaries.
type Item struct {
	Index            string // dense "section.item", e.g. "2.1"
	Record           domain.ItemRecord
	MaterialSummary  string
	ConditionSummary string
	Photos           []domain.Photo
}

// SectionBlock is one visible section with its dense 1-based display index.
type SectionBlock struct {
	Section domain.Section
	Title   string
	Index   int
	Items   []Item
}

// Document is the aggregated, filtered, indexed view of one inspection.
type Document struct {
	InspectionID string
	PropertyID   string
	Address      *domain.Address
	Property     *domain.PropertyDetails
	Inspection   *domain.InspectionDetails
	Sections     []SectionBlock
	GeneratedAt  time.Time
}

// Aggregator builds Documents. It shares no mutable state with the worksheet
// stores; every Build fetches fresh.
type Aggregator struct {
	backend  reportSource
	sections []domain.SectionConfig
	logger   *slog.Logger
}

// NewAggregator creates an aggregator over the given section configuration,
// normally domain.Worksheets().
func NewAggregator(backend reportSource, sections []domain.SectionConfig, logger *slog.Logger) *Aggregator {
	return &Aggregator{backend: backend, sections: sections, logger: logger}
}

// Build fetches everything for one inspection and assembles the document.
// Individual fetch failures are isolated: a failing section is treated as
// empty, missing context records stay nil, and the rest of the report is
// still produced. The only returned error is context cancellation.
func (a *Aggregator) Build(ctx context.Context, inspectionID, propertyID string, mode Mode) (*Document, error) {
	doc := &Document{
		InspectionID: inspectionID,
		PropertyID:   propertyID,
		GeneratedAt:  time.Now(),
	}

	sectionRecords := make([][]domain.ItemRecord, len(a.sections))
	var photoIndex []domain.Photo

	var wg sync.WaitGroup

	// Section fetches are independent of each other and of the photo index,
	// so they all run concurrently; each goroutine owns its own slot.
	for i, cfg := range a.sections {
		wg.Add(1)
		go func(i int, cfg domain.SectionConfig) {
			defer wg.Done()
			records, err := a.backend.SectionRecords(ctx, cfg.Section, inspectionID)
			if err != nil {
				a.logger.Error("failed to fetch section for report",
					"inspection_id", inspectionID, "section", cfg.Section, "error", err)
				return
			}
			sectionRecords[i] = records
		}(i, cfg)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		photos, err := a.backend.AllPhotos(ctx, inspectionID)
		if err != nil {
			a.logger.Error("failed to fetch photo index for report",
				"inspection_id", inspectionID, "error", err)
			return
		}
		photoIndex = photos
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		details, err := a.backend.PropertyDetails(ctx, propertyID, inspectionID)
		if err != nil {
			a.logger.Error("failed to fetch property details for report",
				"property_id", propertyID, "error", err)
			return
		}
		doc.Property = details
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		details, err := a.backend.InspectionDetails(ctx, inspectionID, propertyID)
		if err != nil {
			a.logger.Error("failed to fetch inspection details for report",
				"inspection_id", inspectionID, "error", err)
			return
		}
		doc.Inspection = details
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		addr, err := a.backend.Address(ctx, propertyID)
		if err != nil {
			a.logger.Error("failed to fetch address for report",
				"property_id", propertyID, "error", err)
			return
		}
		doc.Address = addr
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	photosByItem := make(map[string][]domain.Photo, len(photoIndex))
	for _, p := range photoIndex {
		photosByItem[p.ItemName] = append(photosByItem[p.ItemName], p)
	}

	doc.Sections = a.fold(sectionRecords, photosByItem, mode)
	return doc, nil
}

// fold applies the visibility filter and dense numbering: a section is shown
// when it has at least one record or at least one photo under any of its item
// names, and only visible sections (and their kept items) consume indices.
func (a *Aggregator) fold(sectionRecords [][]domain.ItemRecord, photosByItem map[string][]domain.Photo, mode Mode) []SectionBlock {
	blocks := make([]SectionBlock, 0, len(a.sections))

	for i, cfg := range a.sections {
		records := sectionRecords[i]

		hasPhotos := false
		for _, name := range cfg.ItemNames() {
			if len(photosByItem[name]) > 0 {
				hasPhotos = true
				break
			}
		}
		if len(records) == 0 && !hasPhotos {
			continue
		}

		block := SectionBlock{
			Section: cfg.Section,
			Title:   cfg.Title,
			Index:   len(blocks) + 1,
		}

		for _, rec := range records {
			itemPhotos := photosByItem[rec.ItemName]
			if mode == ModeAnalysisFeed && rec.Status == domain.StatusNotInspected &&
				rec.Comment == "" && len(itemPhotos) == 0 {
				continue
			}
			block.Items = append(block.Items, Item{
				Index:            itemIndex(block.Index, len(block.Items)+1),
				Record:           rec,
				MaterialSummary:  joinSelected(rec.Materials),
				ConditionSummary: joinSelected(rec.Conditions),
				Photos:           itemPhotos,
			})
		}

		// A section whose every item was suppressed by feed mode carries no
		// evidence either; drop it so feed numbering stays dense.
		if mode == ModeAnalysisFeed && len(block.Items) == 0 {
			continue
		}
		blocks = append(blocks, block)
	}

	return blocks
}

func itemIndex(section, item int) string {
	return fmt.Sprintf("%d.%d", section, item)
}

// joinSelected returns the comma-joined labels whose flag is set, in sorted
// order for stable output. Empty when nothing is selected.
func joinSelected(flags map[string]bool) string {
	selected := make([]string, 0, len(flags))
	for label, on := range flags {
		if on {
			selected = append(selected, label)
		}
	}
	sort.Strings(selected)
	return strings.Join(selected, ", ")
}
