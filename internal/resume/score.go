package resume

import (
	"fmt"
	"strings"
)

// experienceKeywords are the action words the experience tier looks for.
var experienceKeywords = []string{"experience", "worked", "developed", "managed", "led", "designed"}

// ATSScore rates a parsed resume from 0 to 100 using a fixed linear rubric:
// contact info up to 20, skills up to 30, education 20, experience keywords
// up to 30.
func ATSScore(parsed Parsed) float64 {
	score := 0.0

	if parsed.Email != "" {
		score += 10
	}
	if parsed.Phone != "" {
		score += 10
	}

	switch {
	case len(parsed.Skills) >= 8:
		score += 30
	case len(parsed.Skills) >= 5:
		score += 20
	case len(parsed.Skills) >= 3:
		score += 10
	}

	if len(parsed.Education) > 0 {
		score += 20
	}

	lower := strings.ToLower(parsed.RawText)
	found := 0
	for _, keyword := range experienceKeywords {
		if strings.Contains(lower, keyword) {
			found++
		}
	}
	switch {
	case found >= 4:
		score += 30
	case found >= 2:
		score += 20
	case found >= 1:
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Suggestions derives improvement advice from the parsed fields and score.
func Suggestions(parsed Parsed, score float64) []string {
	suggestions := []string{}

	if score < 70 {
		if parsed.Email == "" {
			suggestions = append(suggestions, "Add a professional email address in the contact section")
		}
		if parsed.Phone == "" {
			suggestions = append(suggestions, "Include a phone number for contact purposes")
		}
		if len(parsed.Skills) < 5 {
			suggestions = append(suggestions, fmt.Sprintf("Add more relevant skills (currently %d, aim for 8-12)", len(parsed.Skills)))
		}
		if len(parsed.Education) == 0 {
			suggestions = append(suggestions, "Include your education background")
		}

		lower := strings.ToLower(parsed.RawText)
		if !strings.Contains(lower, "experience") && !strings.Contains(lower, "worked") {
			suggestions = append(suggestions, "Add work experience with action verbs (developed, led, managed)")
		}
	}

	if score >= 70 && score < 85 {
		suggestions = append(suggestions,
			"Good score! Consider adding more quantifiable achievements",
			"Use industry-specific keywords from job descriptions",
		)
	}

	if score >= 85 {
		suggestions = append(suggestions, "Excellent ATS score! Your resume is well-optimized")
	}

	return suggestions
}
