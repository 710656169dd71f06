package detector

import (
	"strings"
	"testing"
)

func TestDetectLocationBlastByCities(t *testing.T) {
	text := "Open in New York, Chicago, Houston, Phoenix, Dallas and Seattle."

	analysis := DetectLocationBlast(text)
	if !analysis.IsBlast {
		t.Fatalf("expected blast with six cities")
	}
	if analysis.CitiesMentioned != 6 {
		t.Fatalf("expected 6 cities, got %d", analysis.CitiesMentioned)
	}
	if analysis.BlastKeywords != 0 {
		t.Fatalf("expected zero blast keywords, got %d", analysis.BlastKeywords)
	}
	if !strings.Contains(analysis.Reason, "6 cities") {
		t.Fatalf("unexpected reason: %q", analysis.Reason)
	}
}

func TestDetectLocationBlastSingleKeywordSuffices(t *testing.T) {
	analysis := DetectLocationBlast("We hire nationwide for this role in Boston.")

	if !analysis.IsBlast {
		t.Fatalf("expected blast from a single generic keyword")
	}
	if analysis.BlastKeywords != 1 {
		t.Fatalf("expected 1 blast keyword, got %d", analysis.BlastKeywords)
	}
	if analysis.CitiesMentioned != 1 {
		t.Fatalf("expected 1 city, got %d", analysis.CitiesMentioned)
	}
}

func TestDetectLocationBlastCountsDuplicates(t *testing.T) {
	analysis := DetectLocationBlast("Boston Boston Boston Boston Boston")

	if analysis.CitiesMentioned != 5 {
		t.Fatalf("expected duplicate mentions to count, got %d", analysis.CitiesMentioned)
	}
	if !analysis.IsBlast {
		t.Fatalf("expected blast at five mentions")
	}
}

func TestDetectLocationBlastCityMatchingIsCaseSensitive(t *testing.T) {
	analysis := DetectLocationBlast("boston seattle denver miami tampa")

	if analysis.CitiesMentioned != 0 {
		t.Fatalf("expected lowercase city names to be ignored, got %d", analysis.CitiesMentioned)
	}
	if analysis.IsBlast {
		t.Fatalf("did not expect a blast")
	}
}

func TestDetectLocationBlastNormalPosting(t *testing.T) {
	analysis := DetectLocationBlast("Our office is in Denver with a hybrid schedule.")

	if analysis.IsBlast {
		t.Fatalf("did not expect a blast for one office location")
	}
	if analysis.Reason != "Normal location specificity" {
		t.Fatalf("unexpected reason: %q", analysis.Reason)
	}
}
