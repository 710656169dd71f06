// Package matcher scores the semantic similarity between resumes and job
// descriptions using sentence embeddings.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// Embedder produces a sentence embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Match is the result of comparing one resume against one job.
type Match struct {
	Score          float64 `json:"match_score"`
	Level          string  `json:"match_level"`
	Recommendation string  `json:"recommendation"`
}

// Job identifies one job description to rank.
type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
}

// JobMatch is one ranked entry returned by RankJobs.
type JobMatch struct {
	JobID    string  `json:"job_id"`
	JobTitle string  `json:"job_title"`
	Company  string  `json:"company"`
	Score    float64 `json:"match_score"`
	Level    string  `json:"match_level"`
	Snippet  string  `json:"job_description"`
}

// Matcher compares texts through an Embedder.
type Matcher struct {
	embedder Embedder
	logger   *zap.Logger
}

// New creates a Matcher. A nil logger is replaced with a no-op one.
func New(embedder Embedder, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{embedder: embedder, logger: logger}
}

// Match embeds both texts and returns the similarity-based match.
func (m *Matcher) Match(ctx context.Context, resumeText, jobText string) (*Match, error) {
	if m.embedder == nil {
		return nil, errors.New("embedder is required")
	}

	resumeVec, err := m.embedder.Embed(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("embed resume: %w", err)
	}

	jobVec, err := m.embedder.Embed(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("embed job: %w", err)
	}

	score, err := similarityPercent(resumeVec, jobVec)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("matched resume to job", zap.Float64("match_score", score))

	return &Match{
		Score:          score,
		Level:          levelFor(score),
		Recommendation: recommendationFor(score),
	}, nil
}

// RankJobs embeds the resume once, scores it against every job, and returns
// the matches sorted by descending score.
func (m *Matcher) RankJobs(ctx context.Context, resumeText string, jobs []Job) ([]JobMatch, error) {
	if m.embedder == nil {
		return nil, errors.New("embedder is required")
	}

	resumeVec, err := m.embedder.Embed(ctx, resumeText)
	if err != nil {
		return nil, fmt.Errorf("embed resume: %w", err)
	}

	matches := make([]JobMatch, 0, len(jobs))
	for _, job := range jobs {
		jobVec, err := m.embedder.Embed(ctx, job.Description)
		if err != nil {
			return nil, fmt.Errorf("embed job %s: %w", job.ID, err)
		}

		score, err := similarityPercent(resumeVec, jobVec)
		if err != nil {
			return nil, fmt.Errorf("score job %s: %w", job.ID, err)
		}

		matches = append(matches, JobMatch{
			JobID:    job.ID,
			JobTitle: job.Title,
			Company:  job.Company,
			Score:    score,
			Level:    levelFor(score),
			Snippet:  snippet(job.Description),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches, nil
}

// similarityPercent converts cosine similarity to a 0-100 score, rounded to
// two decimals.
func similarityPercent(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding size mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-magnitude embedding")
	}

	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Round(similarity*100*100) / 100, nil
}

func levelFor(score float64) string {
	switch {
	case score >= 80:
		return "Excellent Match"
	case score >= 65:
		return "Good Match"
	case score >= 50:
		return "Fair Match"
	default:
		return "Weak Match"
	}
}

func recommendationFor(score float64) string {
	switch {
	case score >= 80:
		return "Apply immediately! Your profile is an excellent fit for this role."
	case score >= 65:
		return "Strong candidate. Tailor your resume to highlight relevant skills."
	case score >= 50:
		return "Possible fit. Consider gaining more relevant experience or skills."
	default:
		return "Weak match. Focus on roles that better align with your background."
	}
}

func snippet(description string) string {
	const limit = 200
	runes := []rune(description)
	if len(runes) <= limit {
		return description
	}
	return string(runes[:limit]) + "..."
}
