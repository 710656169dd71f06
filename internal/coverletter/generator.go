package coverletter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/jobsift/internal/util"
	"go.uber.org/zap"
)

// Tone controls the register of the generated letter.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneEnthusiastic Tone = "enthusiastic"
	ToneFormal       Tone = "formal"
)

// ParseTone validates a user-supplied tone string.
func ParseTone(s string) (Tone, error) {
	switch Tone(strings.ToLower(strings.TrimSpace(s))) {
	case ToneProfessional:
		return ToneProfessional, nil
	case ToneEnthusiastic:
		return ToneEnthusiastic, nil
	case ToneFormal:
		return ToneFormal, nil
	default:
		return "", fmt.Errorf("unknown tone %q (expected professional, enthusiastic or formal)", s)
	}
}

// ResumeSummary is the candidate-side input for a cover letter.
type ResumeSummary struct {
	Name       string
	Skills     []string
	Experience []string
}

// JobSummary is the posting-side input for a cover letter.
type JobSummary struct {
	Title       string
	Company     string
	Description string
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

const (
	maxPromptSkills      = 8
	maxPromptExperience  = 2
	maxPromptDescription = 500
	defaultMaxLogLength  = 200
)

// Generator drafts cover letters through a text-generation backend.
type Generator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func New(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Generator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Generate builds the prompt for the given candidate and posting and returns
// the drafted letter.
func (g *Generator) Generate(ctx context.Context, resume ResumeSummary, job JobSummary, tone Tone) (string, error) {
	if g.generator == nil {
		return "", errors.New("content generator is required")
	}

	if _, err := ParseTone(string(tone)); err != nil {
		return "", err
	}

	prompt := buildPrompt(resume, job, tone)

	g.logger.Debug("cover letter generation request",
		zap.String("job_title", job.Title),
		zap.String("company", job.Company),
		zap.String("tone", string(tone)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate cover letter: %w", err)
	}

	letter := strings.TrimSpace(raw)
	if letter == "" {
		return "", errors.New("generator returned an empty cover letter")
	}

	g.logger.Debug("cover letter generation response",
		zap.Int("response_length", utf8.RuneCountInString(letter)),
		zap.String("response_preview", util.TruncateForLog(letter, g.maxLogLen)),
	)

	return letter, nil
}

func buildPrompt(resume ResumeSummary, job JobSummary, tone Tone) string {
	name := strings.TrimSpace(resume.Name)
	if name == "" {
		name = "Candidate"
	}

	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = "Position"
	}

	company := strings.TrimSpace(job.Company)
	if company == "" {
		company = "Company"
	}

	skills := resume.Skills
	if len(skills) > maxPromptSkills {
		skills = skills[:maxPromptSkills]
	}

	description := job.Description
	if runes := []rune(description); len(runes) > maxPromptDescription {
		description = string(runes[:maxPromptDescription])
	}

	var b strings.Builder
	b.WriteString("You are an expert career coach writing a compelling cover letter.\n\n")
	b.WriteString("**Candidate Information:**\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Top Skills: %s\n", strings.Join(skills, ", "))
	fmt.Fprintf(&b, "Recent Experience: %s\n\n", summarizeExperience(resume.Experience))
	b.WriteString("**Job Information:**\n")
	fmt.Fprintf(&b, "Position: %s\n", title)
	fmt.Fprintf(&b, "Company: %s\n", company)
	fmt.Fprintf(&b, "Job Description: %s\n\n", description)
	b.WriteString("**Instructions:**\n")
	fmt.Fprintf(&b, "Write a %s cover letter (250-300 words) that:\n", tone)
	b.WriteString("1. Opens with enthusiasm for the specific role and company\n")
	b.WriteString("2. Highlights 2-3 relevant experiences that match the job requirements\n")
	b.WriteString("3. Connects the candidate's skills to the company's needs\n")
	b.WriteString("4. Shows genuine interest in the company/industry\n")
	b.WriteString("5. Closes with a strong call to action\n\n")
	b.WriteString("**Tone Guidelines:**\n")
	b.WriteString("- Professional: Formal, business-appropriate, confident\n")
	b.WriteString("- Enthusiastic: Energetic, passionate, but still professional\n")
	b.WriteString("- Formal: Very traditional, corporate language\n\n")
	b.WriteString("**Format:**\n")
	b.WriteString("Do NOT include:\n")
	b.WriteString("- [Your Name], [Your Address], [Date] (they'll add these themselves)\n")
	b.WriteString("- \"Dear Hiring Manager\" or salutation (they'll customize)\n")
	b.WriteString("- Signature line\n\n")
	b.WriteString("Start directly with the opening paragraph.\n")
	b.WriteString("Write in first person (\"I am excited to apply...\").\n")
	b.WriteString("Keep it concise and impactful.\n\n")
	b.WriteString("Generate the cover letter now:")

	return b.String()
}

func summarizeExperience(experience []string) string {
	if len(experience) == 0 {
		return "Entry-level professional seeking first opportunity"
	}

	entries := make([]string, 0, maxPromptExperience)
	for _, entry := range experience {
		if len(entries) == maxPromptExperience {
			break
		}
		if entry = strings.TrimSpace(entry); entry != "" {
			entries = append(entries, entry)
		}
	}

	if len(entries) == 0 {
		return "Experienced professional"
	}
	return strings.Join(entries, "; ")
}
