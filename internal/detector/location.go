package detector

import (
	"fmt"
	"regexp"
	"strings"
)

// LocationAnalysis reports whether a posting looks broadcast across many
// locations at once.
type LocationAnalysis struct {
	IsBlast         bool   `json:"is_blast"`
	CitiesMentioned int    `json:"cities_mentioned"`
	BlastKeywords   int    `json:"blast_keywords"`
	Reason          string `json:"reason"`
}

var cityPattern = regexp.MustCompile(`\b(?:` + strings.Join(majorCities, "|") + `)\b`)

// DetectLocationBlast counts multi-location keywords and major-city mentions.
// A single blast keyword is enough on its own; five or more city mentions
// (duplicates included) also trip the flag.
func DetectLocationBlast(text string) LocationAnalysis {
	lower := strings.ToLower(text)

	blastKeywords := 0
	for _, category := range RedFlagIndicators {
		if category.Name != "location_blast" {
			continue
		}
		for _, keyword := range category.Keywords {
			if strings.Contains(lower, keyword) {
				blastKeywords++
			}
		}
	}

	cities := len(cityPattern.FindAllString(text, -1))
	isBlast := blastKeywords > 0 || cities >= 5

	reason := "Normal location specificity"
	if isBlast {
		reason = fmt.Sprintf("Found %d cities and %d multi-location keywords", cities, blastKeywords)
	}

	return LocationAnalysis{
		IsBlast:         isBlast,
		CitiesMentioned: cities,
		BlastKeywords:   blastKeywords,
		Reason:          reason,
	}
}
