package ranking

import "math"

// RiskScore combines delivery risk (relative effort) with evidence risk
// (low confidence) on a 0 to 100 scale. Effort contributes up to 40 points,
// confidence up to 60.
func RiskScore(effort, maxEffort, confidence float64) float64 {
	effortRisk := 0.0
	if maxEffort > 0 {
		effortRisk = effort / maxEffort * 40
	}
	confidenceRisk := (1 - confidence) * 60
	return math.Min(effortRisk+confidenceRisk, 100)
}
