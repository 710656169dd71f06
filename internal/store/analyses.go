package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/jobsift/internal/detector"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// SavedAnalysis is a persisted classification together with its input.
type SavedAnalysis struct {
	ID             string                  `json:"id"`
	Title          string                  `json:"title"`
	JobDescription string                  `json:"job_description"`
	PostedDate     string                  `json:"posted_date,omitempty"`
	Analysis       detector.HiringAnalysis `json:"analysis"`
	CreatedAt      time.Time               `json:"created_at"`
}

// SaveAnalysis persists the analysis and returns its generated id.
func (s *Store) SaveAnalysis(ctx context.Context, title, jobDescription, postedDate string, analysis detector.HiringAnalysis) (string, error) {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.ExecContext(ctx, `
INSERT INTO analyses (id, title, job_description, posted_date, hiring_type, confidence, active_score, passive_score, analysis, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		id, title, jobDescription, postedDate,
		string(analysis.HiringType), string(analysis.Confidence),
		analysis.ActiveScore, analysis.PassiveScore,
		string(payload), createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}

	s.logger.Debug("saved analysis",
		zap.String("id", id),
		zap.String("hiring_type", string(analysis.HiringType)),
	)

	return id, nil
}

// GetAnalysis loads one saved analysis by id.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*SavedAnalysis, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, title, job_description, posted_date, analysis, created_at
FROM analyses
WHERE id = ?;`, id)

	return scanAnalysis(row)
}

// ListAnalyses returns saved analyses newest-first. A non-positive limit
// returns everything.
func (s *Store) ListAnalyses(ctx context.Context, limit, offset int) ([]SavedAnalysis, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, job_description, posted_date, analysis, created_at
FROM analyses
ORDER BY created_at DESC, rowid DESC
LIMIT ? OFFSET ?;`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []SavedAnalysis
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// DeleteAnalysis removes one saved analysis.
func (s *Store) DeleteAnalysis(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*SavedAnalysis, error) {
	var rec SavedAnalysis
	var payload, createdAt string

	err := row.Scan(&rec.ID, &rec.Title, &rec.JobDescription, &rec.PostedDate, &payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan analysis: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &rec.Analysis); err != nil {
		return nil, fmt.Errorf("unmarshal analysis %s: %w", rec.ID, err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", rec.ID, err)
	}

	return &rec, nil
}
