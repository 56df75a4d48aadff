package reportdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/thsolutions/homesheet/internal/domain"
)

// ReportSnapshot is one stored rendering of an inspection report.
type ReportSnapshot struct {
	ID           string
	InspectionID string
	PropertyID   string
	Payload      []byte
	CreatedAt    time.Time
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveReport stores a new report snapshot and returns it. Snapshots are
// append-only; history is kept so earlier renderings stay retrievable.
func (s *Store) SaveReport(ctx context.Context, inspectionID, propertyID string, payload []byte) (*ReportSnapshot, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, inspection_id, property_id, payload) VALUES (?, ?, ?, ?)
	`, id, inspectionID, propertyID, string(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	return s.reportByID(ctx, id)
}

// LatestReport returns the most recent snapshot for an inspection, or nil
// when none has been stored.
func (s *Store) LatestReport(ctx context.Context, inspectionID string) (*ReportSnapshot, error) {
	snap := &ReportSnapshot{}
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, inspection_id, property_id, payload, created_at FROM reports
		WHERE inspection_id = ? ORDER BY rowid DESC LIMIT 1
	`, inspectionID).Scan(&snap.ID, &snap.InspectionID, &snap.PropertyID, &payload, &snap.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest report: %w", err)
	}

	snap.Payload = []byte(payload)
	return snap, nil
}

func (s *Store) reportByID(ctx context.Context, id string) (*ReportSnapshot, error) {
	snap := &ReportSnapshot{}
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, inspection_id, property_id, payload, created_at FROM reports WHERE id = ?
	`, id).Scan(&snap.ID, &snap.InspectionID, &snap.PropertyID, &payload, &snap.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	snap.Payload = []byte(payload)
	return snap, nil
}

// SaveAnalysis upserts the analysis summary for an inspection. One summary is
// kept per inspection; a rerun replaces the previous text.
func (s *Store) SaveAnalysis(ctx context.Context, inspectionID, summary string) (*domain.AnalysisResult, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, inspection_id, summary) VALUES (?, ?, ?)
		ON CONFLICT(inspection_id) DO UPDATE SET
			summary = excluded.summary,
			created_at = CURRENT_TIMESTAMP
	`, uuid.NewString(), inspectionID, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	return s.LatestAnalysis(ctx, inspectionID)
}

// LatestAnalysis returns the stored analysis for an inspection, or nil when
// none exists.
func (s *Store) LatestAnalysis(ctx context.Context, inspectionID string) (*domain.AnalysisResult, error) {
	result := &domain.AnalysisResult{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, inspection_id, summary, created_at FROM analyses WHERE inspection_id = ?
	`, inspectionID).Scan(&result.ID, &result.InspectionID, &result.Summary, &result.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return result, nil
}

// ListAnalyses returns every stored analysis, newest first.
func (s *Store) ListAnalyses(ctx context.Context) ([]*domain.AnalysisResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, inspection_id, summary, created_at FROM analyses
		ORDER BY created_at DESC, inspection_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var results []*domain.AnalysisResult
	for rows.Next() {
		result := &domain.AnalysisResult{}
		if err := rows.Scan(&result.ID, &result.InspectionID, &result.Summary, &result.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}

	return results, nil
}
