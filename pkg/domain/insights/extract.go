package insights

import "strings"

// ExtractFeature finds the first known feature mentioned in a query.
// Multi-word names match when at least half their words appear, so "how is
// dark mode doing" finds "Dark mode support". Returns "" when nothing
// matches.
func ExtractFeature(query string, features []string) string {
	q := strings.ToLower(query)
	for _, feature := range features {
		if mentions(q, feature) {
			return feature
		}
	}
	return ""
}

// ExtractFeatures returns every known feature mentioned in a query, in the
// order the feature list provides them.
func ExtractFeatures(query string, features []string) []string {
	q := strings.ToLower(query)
	var out []string
	for _, feature := range features {
		if mentions(q, feature) {
			out = append(out, feature)
		}
	}
	return out
}

func mentions(queryLower, feature string) bool {
	words := strings.Fields(strings.ToLower(feature))
	if len(words) > 1 {
		hits := 0
		for _, w := range words {
			if strings.Contains(queryLower, w) {
				hits++
			}
		}
		need := len(words) / 2
		if need < 1 {
			need = 1
		}
		return hits >= need
	}
	return strings.Contains(queryLower, strings.ToLower(feature))
}
