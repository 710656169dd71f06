package resume

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// techSkills is the fixed list of skills the extractor recognizes.
var techSkills = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "sql", "r", "go", "rust", "scala",
	"react", "vue", "angular", "node.js", "express", "django", "flask", "fastapi", "spring",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy", "keras", "opencv",
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "terraform", "ansible",
	"postgresql", "mysql", "mongodb", "redis", "cassandra", "elasticsearch",
	"machine learning", "deep learning", "nlp", "computer vision", "data science",
	"rest api", "graphql", "microservices", "agile", "scrum", "git", "ci/cd",
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[-.\s]??)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	degreePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(Bachelor'?s?|B\.?S\.?|B\.?A\.?|Master'?s?|M\.?S\.?|M\.?A\.?|Ph\.?D\.?|MBA)`),
		regexp.MustCompile(`(?i)(Associate'?s?|A\.?S\.?|A\.?A\.?)`),
	}

	skillPatterns = compileSkillPatterns()
)

func compileSkillPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(techSkills))
	for _, skill := range techSkills {
		patterns[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`)
	}
	return patterns
}

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

func extractPhone(text string) string {
	return phonePattern.FindString(text)
}

// extractSkills matches the fixed skill list on word boundaries and returns
// title-cased, deduplicated, sorted results.
func extractSkills(text string) []string {
	lower := strings.ToLower(text)

	found := make(map[string]struct{})
	for skill, pattern := range skillPatterns {
		if pattern.MatchString(lower) {
			found[titleCase(skill)] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return skills
}

// extractEducation collects up to three degree mentions, each with up to 50
// characters of context on either side.
func extractEducation(text string) []Education {
	const maxEntries = 3
	const contextRadius = 50

	education := []Education{}
	for _, pattern := range degreePatterns {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			start := loc[0] - contextRadius
			if start < 0 {
				start = 0
			}
			end := loc[1] + contextRadius
			if end > len(text) {
				end = len(text)
			}

			education = append(education, Education{
				Degree:  text[loc[0]:loc[1]],
				Context: strings.TrimSpace(text[start:end]),
			})
		}
	}

	if len(education) > maxEntries {
		education = education[:maxEntries]
	}
	return education
}

// titleCase uppercases the first letter of every word, where a word starts
// after any non-letter rune. "node.js" becomes "Node.Js".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}

	return b.String()
}
