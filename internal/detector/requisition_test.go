package detector

import (
	"strings"
	"testing"
)

func TestExtractRequisitionID(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{name: "req with id and colon", text: "Req ID: REQ-2024-0452 is open", want: "REQ-2024-0452"},
		{name: "job number", text: "Job number 88127 in our system", want: "88127"},
		{name: "reference fallback", text: "Reference number: AB-12", want: "AB-12"},
		{name: "first match wins", text: "Req # FIRST-1 and Req # SECOND-2", want: "FIRST-1"},
		{name: "no id", text: "We are a growing company.", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractRequisitionID(tc.text)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestAnalyzeRequisitionID(t *testing.T) {
	cases := []struct {
		name       string
		id         string
		suspicious bool
		reason     string
	}{
		{name: "specific id", id: "REQ-2024-ML-1847", suspicious: false, reason: "Specific requisition ID"},
		{name: "evergreen term", id: "EVERGREEN_ENG_2024", suspicious: true, reason: "evergreen/generic terms"},
		{name: "simple id", id: "A1", suspicious: true, reason: "Suspiciously simple"},
		{name: "missing id", id: "", suspicious: true, reason: "No requisition ID found"},
		// POOL is both short and an evergreen term: the evergreen check wins.
		{name: "evergreen beats length", id: "POOL", suspicious: true, reason: "evergreen/generic terms"},
		{name: "lowercase evergreen term", id: "pipeline-01", suspicious: true, reason: "evergreen/generic terms"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analysis := AnalyzeRequisitionID(tc.id)

			if analysis.IsSuspicious != tc.suspicious {
				t.Fatalf("expected suspicious=%v, got %v (%s)", tc.suspicious, analysis.IsSuspicious, analysis.Reason)
			}
			if !strings.Contains(analysis.Reason, tc.reason) {
				t.Fatalf("expected reason containing %q, got %q", tc.reason, analysis.Reason)
			}
			if tc.id != "" && !analysis.HasID {
				t.Fatalf("expected HasID for %q", tc.id)
			}
			if tc.id == "" && analysis.HasID {
				t.Fatalf("did not expect HasID for empty input")
			}
		})
	}
}

func TestAnalyzeRequisitionIDSimpleNonAlnumIsLegitimate(t *testing.T) {
	// A short ID with punctuation escapes the simple-ID rule.
	analysis := AnalyzeRequisitionID("A-1")
	if analysis.IsSuspicious {
		t.Fatalf("expected non-alphanumeric short ID to pass, got: %s", analysis.Reason)
	}
}
