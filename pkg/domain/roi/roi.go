// Package roi projects development cost, revenue and payback for the top of
// the ranked backlog. All money math runs on decimals so totals reported to
// stakeholders add up exactly.
package roi

import (
	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/ranking"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCostPerPoint is the assumed fully loaded cost of one story
	// point in dollars.
	DefaultCostPerPoint = 18000

	// TopN limits projections to the head of the ranking.
	TopN = 15

	// MaxPaybackMonths caps reported payback at five years.
	MaxPaybackMonths = 60
)

// Projection is the financial outlook for one ranked feature.
type Projection struct {
	Feature         string          `json:"feature"`
	DevelopmentCost decimal.Decimal `json:"development_cost"`
	AnnualRevenue   decimal.Decimal `json:"projected_annual_revenue"`
	ROIPercent      decimal.Decimal `json:"roi_percentage"`
	PaybackMonths   decimal.Decimal `json:"payback_months"`
	Confidence      float64         `json:"confidence"`
	Risk            float64         `json:"risk_score"`
}

// Project computes projections for the top-ranked records. Revenue scales the
// per-customer revenue signal by audience size and a conversion multiplier,
// annualized. Records without a matching summary are skipped.
func Project(records []*ranking.ScoreRecord, summaries []*feedback.Summary, costPerPoint decimal.Decimal) []Projection {
	if costPerPoint.LessThanOrEqual(decimal.Zero) {
		costPerPoint = decimal.NewFromInt(DefaultCostPerPoint)
	}

	byFeature := make(map[string]*feedback.Summary, len(summaries))
	for _, s := range summaries {
		byFeature[s.Feature] = s
	}

	limit := len(records)
	if limit > TopN {
		limit = TopN
	}

	out := make([]Projection, 0, limit)
	for _, r := range records[:limit] {
		s, ok := byFeature[r.Feature]
		if !ok {
			continue
		}

		cost := decimal.NewFromFloat(r.Effort).Mul(costPerPoint)

		audience := s.UniqueUsers
		if s.RequestCount > audience {
			audience = s.RequestCount
		}
		conversionBoost := decimal.NewFromFloat(1 + s.AvgConversion*5)
		annual := decimal.NewFromFloat(s.AvgRevenueImpact).
			Mul(decimal.NewFromInt(int64(audience))).
			Mul(conversionBoost).
			Mul(decimal.NewFromInt(12))

		p := Projection{
			Feature:         r.Feature,
			DevelopmentCost: cost,
			AnnualRevenue:   annual,
			PaybackMonths:   decimal.NewFromInt(MaxPaybackMonths),
			Confidence:      r.Confidence,
			Risk:            r.Risk,
		}

		if cost.IsPositive() {
			p.ROIPercent = annual.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100))
		}
		if monthly := annual.Div(decimal.NewFromInt(12)); monthly.IsPositive() {
			payback := cost.Div(monthly)
			if payback.LessThan(p.PaybackMonths) {
				p.PaybackMonths = payback
			}
		}
		out = append(out, p)
	}
	return out
}

// Totals sums cost and revenue across projections for executive summaries.
func Totals(projections []Projection) (cost, revenue decimal.Decimal) {
	for _, p := range projections {
		cost = cost.Add(p.DevelopmentCost)
		revenue = revenue.Add(p.AnnualRevenue)
	}
	return cost, revenue
}
