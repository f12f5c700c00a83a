package ranking

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain/scoring"
)

// PlanningQuarters is how many quarters the roadmap schedules ahead.
const PlanningQuarters = 4

// NextQuarters returns n quarter labels starting with the quarter after the
// one containing now, e.g. "Q4 2026".
func NextQuarters(now time.Time, n int) []string {
	quarter := (int(now.Month())-1)/3 + 1
	year := now.Year()

	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		quarter++
		if quarter > 4 {
			quarter = 1
			year++
		}
		out = append(out, fmt.Sprintf("Q%d %d", quarter, year))
	}
	return out
}

// AssignQuarters spreads records over the next four quarters by composite
// score quantiles: the top quartile ships first, the bottom quartile last.
func AssignQuarters(records []*ScoreRecord, now time.Time) {
	if len(records) == 0 {
		return
	}
	quarters := NextQuarters(now, PlanningQuarters)

	composites := make([]float64, len(records))
	for i, r := range records {
		composites[i] = r.Composite
	}
	q75 := scoring.Quantile(composites, 0.75)
	q50 := scoring.Quantile(composites, 0.50)
	q25 := scoring.Quantile(composites, 0.25)

	for _, r := range records {
		switch {
		case r.Composite >= q75:
			r.Quarter = quarters[0]
		case r.Composite >= q50:
			r.Quarter = quarters[1]
		case r.Composite >= q25:
			r.Quarter = quarters[2]
		default:
			r.Quarter = quarters[3]
		}
	}
}
