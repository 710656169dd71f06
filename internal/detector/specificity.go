package detector

import (
	"fmt"
	"regexp"
	"strings"
)

// SpecificityAnalysis scores how much concrete, role-specific detail a
// posting contains. Vague postings suggest a pipeline, specific ones a real
// role.
type SpecificityAnalysis struct {
	Score      int      `json:"score"`
	Details    []string `json:"details"`
	IsSpecific bool     `json:"is_specific"`
	Reason     string   `json:"reason"`
}

var (
	managerPattern      = regexp.MustCompile(`(?i)reporting to \w+|reports to \w+`)
	projectPattern      = regexp.MustCompile(`(?i)working on|project|tech stack|tools we use`)
	compensationPattern = regexp.MustCompile(`(?i)\$[\d,]+|salary range|pay range|\d+k-\d+k`)
)

// AnalyzeSpecificity applies the fixed rubric: +2 for a named manager, +1 for
// two or more department mentions, +1 for project or tooling detail, +2 for
// concrete compensation. A score of 3 or more counts as specific.
func AnalyzeSpecificity(text string) SpecificityAnalysis {
	lower := strings.ToLower(text)

	score := 0
	details := []string{}

	if managerPattern.MatchString(text) {
		score += 2
		details = append(details, "Specific manager mentioned")
	}

	deptMentions := 0
	for _, dept := range departments {
		if strings.Contains(lower, dept) {
			deptMentions++
		}
	}
	if deptMentions >= 2 {
		score++
		details = append(details, fmt.Sprintf("%d specific departments", deptMentions))
	}

	if projectPattern.MatchString(text) {
		score++
		details = append(details, "Project/tech details mentioned")
	}

	if compensationPattern.MatchString(text) {
		score += 2
		details = append(details, "Specific compensation mentioned")
	}

	reason := "Low specificity suggests generic pipeline"
	if score >= 3 {
		reason = "High specificity suggests active hiring"
	}

	return SpecificityAnalysis{
		Score:      score,
		Details:    details,
		IsSpecific: score >= 3,
		Reason:     reason,
	}
}
