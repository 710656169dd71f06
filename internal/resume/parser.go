// Package resume extracts structured data from PDF resumes and scores them
// for ATS compatibility.
package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Education is one degree mention with its surrounding context.
type Education struct {
	Degree  string `json:"degree"`
	Context string `json:"context"`
}

// Parsed holds the structured fields extracted from a resume.
type Parsed struct {
	RawText   string      `json:"raw_text"`
	Email     string      `json:"email,omitempty"`
	Phone     string      `json:"phone,omitempty"`
	Skills    []string    `json:"skills"`
	Education []Education `json:"education"`
	WordCount int         `json:"word_count"`
}

// Report is the full parser output: parsed fields, the ATS score, and the
// improvement suggestions derived from both.
type Report struct {
	Parsed      Parsed   `json:"parsed_data"`
	ATSScore    float64  `json:"ats_score"`
	Suggestions []string `json:"suggestions"`
}

// Parser extracts text and fields from PDF resumes.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a Parser. A nil logger is replaced with a no-op one.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// ParseFile reads a PDF resume from disk and returns the full report.
func (p *Parser) ParseFile(path string) (*Report, error) {
	text, err := extractText(path)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}

	report := p.ParseText(text)

	p.logger.Debug("parsed resume",
		zap.String("path", path),
		zap.Int("word_count", report.Parsed.WordCount),
		zap.Int("skills", len(report.Parsed.Skills)),
		zap.Float64("ats_score", report.ATSScore),
	)

	return report, nil
}

// ParseText runs field extraction and scoring over already-extracted text.
func (p *Parser) ParseText(text string) *Report {
	parsed := Parsed{
		RawText:   text,
		Email:     extractEmail(text),
		Phone:     extractPhone(text),
		Skills:    extractSkills(text),
		Education: extractEducation(text),
		WordCount: len(strings.Fields(text)),
	}

	score := ATSScore(parsed)

	return &Report{
		Parsed:      parsed,
		ATSScore:    score,
		Suggestions: Suggestions(parsed, score),
	}
}

func extractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
