package ranking

import "strings"

// teamKeywords routes a feature to a delivery team by name. First match wins,
// checked in declaration order.
var teamKeywords = []struct {
	team  string
	words []string
}{
	{"Backend Team", []string{"api", "performance", "backend", "database"}},
	{"Mobile Team", []string{"mobile", "app", "ios", "android"}},
	{"Frontend Team", []string{"ui", "ux", "design", "interface", "dark mode"}},
	{"Data Team", []string{"analytics", "reporting", "data"}},
}

// AssignTeam suggests an owning team from keywords in the feature name.
// Unmatched features default to the product team.
func AssignTeam(feature string) string {
	name := strings.ToLower(feature)
	for _, entry := range teamKeywords {
		for _, word := range entry.words {
			if strings.Contains(name, word) {
				return entry.team
			}
		}
	}
	return "Product Team"
}
