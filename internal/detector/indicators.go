package detector

import "strings"

// IndicatorMatch maps a category name to the number of its keywords found in
// the analyzed text. Every category of the table is present, zero-hit ones
// included.
type IndicatorMatch map[string]int

// CountIndicators counts, per category, how many keywords appear in text as
// case-insensitive substrings. Matching is deliberately containment-based,
// not word-boundary based; "hire" inside "hiring" counts.
func CountIndicators(text string, table IndicatorTable) IndicatorMatch {
	lower := strings.ToLower(text)
	matches := make(IndicatorMatch, len(table))

	for _, category := range table {
		count := 0
		for _, keyword := range category.Keywords {
			if strings.Contains(lower, keyword) {
				count++
			}
		}
		matches[category.Name] = count
	}

	return matches
}

// Total sums hit counts across all categories.
func (m IndicatorMatch) Total() int {
	total := 0
	for _, count := range m {
		total += count
	}
	return total
}

// strongestCategory returns the category with the highest hit count, first in
// table declaration order on ties, together with its count.
func strongestCategory(matches IndicatorMatch, table IndicatorTable) (string, int) {
	name := ""
	best := -1
	for _, category := range table {
		if matches[category.Name] > best {
			name = category.Name
			best = matches[category.Name]
		}
	}
	return name, best
}
