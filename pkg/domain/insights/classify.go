// Package insights answers stakeholder questions about the ranked roadmap:
// keyword-routed query handlers, CEL filter expressions and what-if scenario
// simulation.
package insights

import "strings"

// QueryKind routes a stakeholder question to its handler.
type QueryKind string

const (
	QueryPriority   QueryKind = "priority"
	QueryTimeline   QueryKind = "timeline"
	QueryROI        QueryKind = "roi"
	QueryComparison QueryKind = "comparison"
	QueryCapacity   QueryKind = "capacity"
	QueryRisk       QueryKind = "risk"
	QueryGeneral    QueryKind = "general"
)

// classRules are checked in order; the first class with a keyword hit wins.
var classRules = []struct {
	kind  QueryKind
	words []string
}{
	{QueryPriority, []string{"priority", "important", "rank", "top", "highest"}},
	{QueryTimeline, []string{"timeline", "when", "schedule", "quarter", "q1", "q2", "q3", "q4"}},
	{QueryROI, []string{"roi", "return", "revenue", "cost", "profit", "investment"}},
	{QueryComparison, []string{"compare", "versus", "vs", "difference", "better"}},
	{QueryCapacity, []string{"capacity", "resource", "team", "effort", "workload"}},
	{QueryRisk, []string{"risk", "risky", "danger", "problem", "challenge"}},
}

// Classify picks the query kind from keywords. Unmatched queries are general.
func Classify(query string) QueryKind {
	q := strings.ToLower(query)
	for _, rule := range classRules {
		for _, word := range rule.words {
			if strings.Contains(q, word) {
				return rule.kind
			}
		}
	}
	return QueryGeneral
}
