package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/jobsift/internal/resume"
	"go.uber.org/zap"
)

// SavedResume is a persisted resume report.
type SavedResume struct {
	ID          string             `json:"id"`
	Filename    string             `json:"filename"`
	Email       string             `json:"email,omitempty"`
	Phone       string             `json:"phone,omitempty"`
	Skills      []string           `json:"skills"`
	Education   []resume.Education `json:"education"`
	WordCount   int                `json:"word_count"`
	ATSScore    float64            `json:"ats_score"`
	Suggestions []string           `json:"suggestions"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SaveResume persists a resume report and returns its generated id. The raw
// resume text is not stored.
func (s *Store) SaveResume(ctx context.Context, filename string, report *resume.Report) (string, error) {
	if report == nil {
		return "", errors.New("resume report is required")
	}

	skills, err := json.Marshal(report.Parsed.Skills)
	if err != nil {
		return "", fmt.Errorf("marshal skills: %w", err)
	}
	education, err := json.Marshal(report.Parsed.Education)
	if err != nil {
		return "", fmt.Errorf("marshal education: %w", err)
	}
	suggestions, err := json.Marshal(report.Suggestions)
	if err != nil {
		return "", fmt.Errorf("marshal suggestions: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.ExecContext(ctx, `
INSERT INTO resumes (id, filename, email, phone, skills, education, word_count, ats_score, suggestions, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		id, filename, report.Parsed.Email, report.Parsed.Phone,
		string(skills), string(education), report.Parsed.WordCount,
		report.ATSScore, string(suggestions), createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert resume: %w", err)
	}

	s.logger.Debug("saved resume",
		zap.String("id", id),
		zap.String("filename", filename),
		zap.Float64("ats_score", report.ATSScore),
	)

	return id, nil
}

// GetResume loads one saved resume by id.
func (s *Store) GetResume(ctx context.Context, id string) (*SavedResume, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, filename, email, phone, skills, education, word_count, ats_score, suggestions, created_at
FROM resumes
WHERE id = ?;`, id)

	return scanResume(row)
}

// ListResumes returns saved resumes newest-first. A non-positive limit
// returns everything.
func (s *Store) ListResumes(ctx context.Context, limit, offset int) ([]SavedResume, error) {
	if limit <= 0 {
		limit = -1
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, filename, email, phone, skills, education, word_count, ats_score, suggestions, created_at
FROM resumes
ORDER BY created_at DESC, rowid DESC
LIMIT ? OFFSET ?;`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	var out []SavedResume
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// DeleteResume removes one saved resume.
func (s *Store) DeleteResume(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
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

func scanResume(row rowScanner) (*SavedResume, error) {
	var rec SavedResume
	var skills, education, suggestions, createdAt string

	err := row.Scan(&rec.ID, &rec.Filename, &rec.Email, &rec.Phone,
		&skills, &education, &rec.WordCount, &rec.ATSScore, &suggestions, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan resume: %w", err)
	}

	if err := json.Unmarshal([]byte(skills), &rec.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills for %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(education), &rec.Education); err != nil {
		return nil, fmt.Errorf("unmarshal education for %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(suggestions), &rec.Suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions for %s: %w", rec.ID, err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", rec.ID, err)
	}

	return &rec, nil
}
