package feedback

import "sort"

// Defaults applied when one side of the feedback/usage join has no data for a
// feature. They mirror the midpoints the analytics pipeline assumes for
// unknown signals.
const (
	defaultBusinessValue   = 5.0
	defaultRevenueImpact   = 10000.0
	defaultEffort          = 8.0
	defaultSessionDuration = 30.0
	defaultConversion      = 0.05
	defaultRetention       = 0.08
)

// Summary aggregates every signal known about a single feature. It is the
// unit of input for RICE derivation and the ML re-ranker.
type Summary struct {
	Feature          string  `json:"feature"`
	RequestCount     int     `json:"request_count"`
	AvgBusinessValue float64 `json:"avg_business_value"`
	AvgRevenueImpact float64 `json:"avg_revenue_impact"`
	AvgEffort        float64 `json:"avg_effort"`
	CriticalRequests int     `json:"critical_requests"`
	HighRequests     int     `json:"high_requests"`
	UniqueUsers      int     `json:"unique_users"`
	AvgUsage         float64 `json:"avg_usage"`
	AvgSessionDur    float64 `json:"avg_session_duration"`
	AvgConversion    float64 `json:"avg_conversion_impact"`
	AvgRetention     float64 `json:"avg_retention_impact"`
}

// Summarize joins feedback and usage records per feature. Features known only
// from usage data receive feedback defaults and vice versa, so every feature
// with any signal at all produces a summary. The result is sorted by feature
// name for determinism.
func Summarize(records []*Record, usage []*Usage) []*Summary {
	type feedbackAgg struct {
		count          int
		businessValue  float64
		revenueImpact  float64
		effort         float64
		critical, high int
	}
	type usageAgg struct {
		users      map[string]struct{}
		count      int
		usageSum   float64
		sessionSum float64
		convSum    float64
		retSum     float64
	}

	fb := make(map[string]*feedbackAgg)
	for _, r := range records {
		agg, ok := fb[r.Feature]
		if !ok {
			agg = &feedbackAgg{}
			fb[r.Feature] = agg
		}
		agg.count++
		agg.businessValue += float64(r.BusinessValue)
		agg.revenueImpact += r.RevenueImpact
		agg.effort += float64(r.Effort)
		switch r.Priority {
		case PriorityCritical:
			agg.critical++
		case PriorityHigh:
			agg.high++
		}
	}

	us := make(map[string]*usageAgg)
	for _, u := range usage {
		agg, ok := us[u.Feature]
		if !ok {
			agg = &usageAgg{users: make(map[string]struct{})}
			us[u.Feature] = agg
		}
		agg.users[u.UserID] = struct{}{}
		agg.count++
		agg.usageSum += float64(u.UsageCount)
		agg.sessionSum += u.SessionDuration
		agg.convSum += u.ConversionImpact
		agg.retSum += u.RetentionImpact
	}

	names := make(map[string]struct{}, len(fb)+len(us))
	for name := range fb {
		names[name] = struct{}{}
	}
	for name := range us {
		names[name] = struct{}{}
	}

	summaries := make([]*Summary, 0, len(names))
	for name := range names {
		s := &Summary{
			Feature:          name,
			AvgBusinessValue: defaultBusinessValue,
			AvgRevenueImpact: defaultRevenueImpact,
			AvgEffort:        defaultEffort,
			AvgSessionDur:    defaultSessionDuration,
			AvgConversion:    defaultConversion,
			AvgRetention:     defaultRetention,
		}
		if agg, ok := fb[name]; ok {
			n := float64(agg.count)
			s.RequestCount = agg.count
			s.AvgBusinessValue = agg.businessValue / n
			s.AvgRevenueImpact = agg.revenueImpact / n
			s.AvgEffort = agg.effort / n
			s.CriticalRequests = agg.critical
			s.HighRequests = agg.high
		}
		if agg, ok := us[name]; ok {
			n := float64(agg.count)
			s.UniqueUsers = len(agg.users)
			s.AvgUsage = agg.usageSum / n
			s.AvgSessionDur = agg.sessionSum / n
			s.AvgConversion = agg.convSum / n
			s.AvgRetention = agg.retSum / n
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Feature < summaries[j].Feature
	})
	return summaries
}
