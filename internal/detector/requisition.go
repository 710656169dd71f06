package detector

import (
	"fmt"
	"regexp"
	"strings"
)

// RequisitionAnalysis describes whether a requisition ID was found and how
// trustworthy it looks.
type RequisitionAnalysis struct {
	HasID        bool   `json:"has_id"`
	ID           string `json:"id,omitempty"`
	IsSuspicious bool   `json:"is_suspicious"`
	Reason       string `json:"reason"`
}

var requisitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:req|requisition|job)\s*(?:id|#|number)?\s*:?\s*([A-Z0-9_-]+)`),
	regexp.MustCompile(`(?i)(?:reference|ref)\s*(?:number|#)?\s*:?\s*([A-Z0-9_-]+)`),
}

// ExtractRequisitionID returns the first requisition-like identifier found in
// text, or the empty string. The first pattern that matches wins; within a
// pattern, the first match wins.
func ExtractRequisitionID(text string) string {
	for _, pattern := range requisitionPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// AnalyzeRequisitionID classifies a requisition ID. An empty ID is treated as
// suspicious. The evergreen-term check takes priority over the length check.
func AnalyzeRequisitionID(reqID string) RequisitionAnalysis {
	if reqID == "" {
		return RequisitionAnalysis{
			IsSuspicious: true,
			Reason:       "No requisition ID found - possible unstructured posting",
		}
	}

	upper := strings.ToUpper(reqID)
	for _, term := range evergreenIDTerms {
		if strings.Contains(upper, term) {
			return RequisitionAnalysis{
				HasID:        true,
				ID:           reqID,
				IsSuspicious: true,
				Reason:       fmt.Sprintf("Requisition ID '%s' contains evergreen/generic terms", reqID),
			}
		}
	}

	if len(reqID) <= 4 && isAlphanumeric(reqID) {
		return RequisitionAnalysis{
			HasID:        true,
			ID:           reqID,
			IsSuspicious: true,
			Reason:       fmt.Sprintf("Suspiciously simple req ID: '%s'", reqID),
		}
	}

	return RequisitionAnalysis{
		HasID:  true,
		ID:     reqID,
		Reason: "Specific requisition ID suggests real opening",
	}
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}
