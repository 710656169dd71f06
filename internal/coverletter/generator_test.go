package coverletter

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func sampleResume() ResumeSummary {
	return ResumeSummary{
		Name:       "Alex Rivera",
		Skills:     []string{"Go", "Python", "SQL", "Docker"},
		Experience: []string{"Backend Engineer at Initech", "Data Analyst at Globex"},
	}
}

func sampleJob() JobSummary {
	return JobSummary{
		Title:       "Senior Backend Engineer",
		Company:     "TechCorp",
		Description: "We need a backend engineer with Go and SQL experience.",
	}
}

func TestGenerate(t *testing.T) {
	stub := &stubGenerator{response: "  I am excited to apply for this role.  "}
	gen := New(stub, zap.NewNop(), 0)

	letter, err := gen.Generate(context.Background(), sampleResume(), sampleJob(), ToneProfessional)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if letter != "I am excited to apply for this role." {
		t.Fatalf("expected trimmed letter, got %q", letter)
	}

	for _, want := range []string{
		"Name: Alex Rivera",
		"Top Skills: Go, Python, SQL, Docker",
		"Recent Experience: Backend Engineer at Initech; Data Analyst at Globex",
		"Position: Senior Backend Engineer",
		"Company: TechCorp",
		"Write a professional cover letter",
	} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, stub.lastPrompt)
		}
	}
}

func TestGenerateCapsPromptInputs(t *testing.T) {
	resume := sampleResume()
	resume.Skills = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	resume.Experience = []string{"first", "second", "third"}

	job := sampleJob()
	job.Description = strings.Repeat("x", 600)

	stub := &stubGenerator{response: "letter"}
	if _, err := New(stub, zap.NewNop(), 0).Generate(context.Background(), resume, job, ToneFormal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(stub.lastPrompt, "i, j") {
		t.Fatalf("expected skills capped at 8, got:\n%s", stub.lastPrompt)
	}
	if strings.Contains(stub.lastPrompt, "third") {
		t.Fatalf("expected experience capped at 2 entries")
	}
	if strings.Contains(stub.lastPrompt, strings.Repeat("x", 501)) {
		t.Fatalf("expected description capped at 500 characters")
	}
}

func TestGeneratePlaceholdersForMissingInputs(t *testing.T) {
	stub := &stubGenerator{response: "letter"}
	gen := New(stub, zap.NewNop(), 0)

	if _, err := gen.Generate(context.Background(), ResumeSummary{}, JobSummary{}, ToneEnthusiastic); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Name: Candidate",
		"Recent Experience: Entry-level professional seeking first opportunity",
		"Position: Position",
		"Company: Company",
	} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

func TestGenerateRejectsUnknownTone(t *testing.T) {
	gen := New(&stubGenerator{response: "letter"}, zap.NewNop(), 0)

	if _, err := gen.Generate(context.Background(), sampleResume(), sampleJob(), Tone("casual")); err == nil {
		t.Fatalf("expected error for unknown tone")
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	gen := New(&stubGenerator{response: "   "}, zap.NewNop(), 0)

	if _, err := gen.Generate(context.Background(), sampleResume(), sampleJob(), ToneProfessional); err == nil {
		t.Fatalf("expected error for empty response")
	}
}

func TestGeneratePropagatesBackendError(t *testing.T) {
	gen := New(&stubGenerator{err: errors.New("quota exceeded")}, zap.NewNop(), 0)

	if _, err := gen.Generate(context.Background(), sampleResume(), sampleJob(), ToneProfessional); err == nil {
		t.Fatalf("expected backend error to propagate")
	}
}

func TestParseTone(t *testing.T) {
	tests := []struct {
		input   string
		want    Tone
		wantErr bool
	}{
		{input: "professional", want: ToneProfessional},
		{input: " Enthusiastic ", want: ToneEnthusiastic},
		{input: "FORMAL", want: ToneFormal},
		{input: "casual", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseTone(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseTone(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTone(%q): unexpected error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("ParseTone(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}
