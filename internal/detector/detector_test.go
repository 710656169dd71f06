package detector

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestDetector(now time.Time) *Detector {
	d := New(nil)
	d.now = func() time.Time { return now }
	return d
}

const activeJob = `Software Engineer - Machine Learning Team
Requisition ID: REQ-2024-ML-1847

We have an immediate opening for an ML Engineer to join our Data Science team,
reporting directly to Sarah Chen, VP of AI.

Start date: March 15, 2024
Salary range: $140,000 - $180,000

You'll be working on our recommendation engine using PyTorch and TensorFlow.
Our team of 8 engineers is based in San Francisco.

Apply now - interviews happening this week!`

const pipelineJob = `Senior Software Engineers - Future Opportunities
Requisition: EVERGREEN_ENG_2024

Join our talent pool! We're always looking for talented engineers
across multiple locations nationwide.

Submit your resume for future consideration. We'll keep you in mind
for various positions as they become available.

Locations: New York, Los Angeles, Chicago, Houston, Phoenix, San Francisco,
Seattle, Denver, Austin, Dallas, Miami, Boston, Atlanta

Email your resume to: careers@company.com
Competitive salary commensurate with experience.`

func TestClassifyActiveHiring(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d := newTestDetector(now)

	analysis := d.Classify(activeJob, "2024-02-15")

	if analysis.HiringType != ActiveHiring {
		t.Fatalf("expected Active Hiring, got %s", analysis.HiringType)
	}
	if analysis.Confidence != ConfidenceHigh {
		t.Fatalf("expected High confidence, got %s", analysis.Confidence)
	}
	if analysis.ActiveScore != 13 {
		t.Fatalf("expected active score 13, got %d", analysis.ActiveScore)
	}
	if analysis.PassiveScore != 0 {
		t.Fatalf("expected passive score 0, got %d", analysis.PassiveScore)
	}
	if analysis.IsStale {
		t.Fatalf("a 15-day-old posting is not stale")
	}
	if analysis.PostingAgeDays == nil || *analysis.PostingAgeDays != 15 {
		t.Fatalf("expected posting age 15, got %v", analysis.PostingAgeDays)
	}
	if len(analysis.ApplicationStrategy) != 5 {
		t.Fatalf("expected 5 strategy items, got %d", len(analysis.ApplicationStrategy))
	}
}

func TestClassifyPipelineEvergreen(t *testing.T) {
	posted := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	d := newTestDetector(posted.AddDate(0, 0, 240))

	analysis := d.Classify(pipelineJob, "2023-06-01")

	if analysis.HiringType != PipelineEvergreen {
		t.Fatalf("expected Pipeline/Evergreen, got %s", analysis.HiringType)
	}
	if analysis.Confidence != ConfidenceHigh {
		t.Fatalf("expected High confidence, got %s", analysis.Confidence)
	}
	if !analysis.IsStale {
		t.Fatalf("expected a 240-day-old posting to be stale")
	}
	if !analysis.Location.IsBlast {
		t.Fatalf("expected a location blast")
	}
	if analysis.Location.CitiesMentioned < 10 {
		t.Fatalf("expected at least 10 cities, got %d", analysis.Location.CitiesMentioned)
	}
	if analysis.PassiveScore <= analysis.ActiveScore {
		t.Fatalf("expected passive (%d) to dominate active (%d)", analysis.PassiveScore, analysis.ActiveScore)
	}
}

func TestClassifyStalenessBoundary(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		posted string
		stale  bool
		age    int
	}{
		{name: "46 days is stale", posted: "2024-05-15", stale: true, age: 46},
		{name: "45 days is not stale", posted: "2024-05-16", stale: false, age: 45},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDetector(now)
			analysis := d.Classify("plain text", tc.posted)

			if analysis.IsStale != tc.stale {
				t.Fatalf("expected stale=%v, got %v", tc.stale, analysis.IsStale)
			}
			if analysis.PostingAgeDays == nil || *analysis.PostingAgeDays != tc.age {
				t.Fatalf("expected age %d, got %v", tc.age, analysis.PostingAgeDays)
			}
		})
	}
}

func TestClassifyTolerantDateParsing(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	d := newTestDetector(now)

	analysis := d.Classify("plain text", "2024-06-01T00:00:00Z")
	if analysis.PostingAgeDays == nil || *analysis.PostingAgeDays != 29 {
		t.Fatalf("expected age 29 from datetime with Z suffix, got %v", analysis.PostingAgeDays)
	}
}

func TestClassifySwallowsBadDates(t *testing.T) {
	d := newTestDetector(time.Now())

	analysis := d.Classify("plain text", "next Tuesday")
	if analysis.PostingAgeDays != nil {
		t.Fatalf("expected absent posting age, got %v", *analysis.PostingAgeDays)
	}
	if analysis.IsStale {
		t.Fatalf("unparseable dates must never mark a posting stale")
	}
}

func TestClassifyNeutralTextScoresBonusesOnly(t *testing.T) {
	// No keywords, no requisition ID, no cities: only the missing-ID penalty
	// applies, which alone tips the ratio toward pipeline.
	d := newTestDetector(time.Now())
	analysis := d.Classify("The quick brown fox leaps over the lazy dog.", "")

	if analysis.ActiveScore != 0 {
		t.Fatalf("expected active score 0, got %d", analysis.ActiveScore)
	}
	if analysis.PassiveScore != 3 {
		t.Fatalf("expected passive score 3 (suspicious requisition bonus), got %d", analysis.PassiveScore)
	}
	if analysis.HiringType != PipelineEvergreen {
		t.Fatalf("expected Pipeline/Evergreen, got %s", analysis.HiringType)
	}
	if analysis.Confidence != ConfidenceMedium {
		t.Fatalf("expected Medium confidence below score 8, got %s", analysis.Confidence)
	}
}

func TestClassifyEmptyTextNeverFails(t *testing.T) {
	d := newTestDetector(time.Now())
	analysis := d.Classify("", "")

	if analysis.ActiveIndicators.Total() != 0 || analysis.PassiveIndicators.Total() != 0 {
		t.Fatalf("expected all-zero indicator matches for empty text")
	}
	if !analysis.Requisition.IsSuspicious {
		t.Fatalf("missing requisition ID must be suspicious")
	}
	if len(analysis.ApplicationStrategy) == 0 {
		t.Fatalf("expected a strategy list for every classification")
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	first := newTestDetector(now).Classify(activeJob, "2024-02-15")
	second := newTestDetector(now).Classify(activeJob, "2024-02-15")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results for identical input")
	}
}

func TestClassifyInsightOrdering(t *testing.T) {
	d := newTestDetector(time.Now())
	analysis := d.Classify("We have a vacancy. Join our talent pool.", "")

	activeIdx, passiveIdx := -1, -1
	for i, insight := range analysis.Insights {
		if strings.Contains(insight, "active hiring signals") {
			activeIdx = i
		}
		if strings.Contains(insight, "pipeline/evergreen signals") {
			passiveIdx = i
		}
	}

	if activeIdx == -1 || passiveIdx == -1 {
		t.Fatalf("expected both summary lines, got %v", analysis.Insights)
	}
	if activeIdx > passiveIdx {
		t.Fatalf("active summary must precede passive summary: %v", analysis.Insights)
	}
}

func TestClassifyInsightsIncludeStrongestCategory(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d := newTestDetector(now)

	analysis := d.Classify(activeJob, "")
	if len(analysis.Insights) < 2 {
		t.Fatalf("expected summary plus strongest-category line, got %v", analysis.Insights)
	}
	if analysis.Insights[0] != "4 active hiring signals detected" {
		t.Fatalf("unexpected summary line: %q", analysis.Insights[0])
	}
	if analysis.Insights[1] != "strongest: vacancy (2 mentions)" {
		t.Fatalf("unexpected strongest line: %q", analysis.Insights[1])
	}
}
