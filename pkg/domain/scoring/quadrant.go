package scoring

import "sort"

// Quadrant buckets a feature by impact vs. effort.
type Quadrant string

const (
	// QuadrantQuickWins is high impact at low effort.
	QuadrantQuickWins Quadrant = "Quick Wins"
	// QuadrantMajorProjects is high impact at high effort.
	QuadrantMajorProjects Quadrant = "Major Projects"
	// QuadrantFillIns is low impact at low effort.
	QuadrantFillIns Quadrant = "Fill-ins"
	// QuadrantQuestionable is low impact at high effort.
	QuadrantQuestionable Quadrant = "Questionable"
)

// Classify assigns a quadrant given the portfolio-wide median splits.
// Effort at or below the median counts as low effort; impact strictly above
// the median counts as high impact.
func Classify(effort, impact, effortMedian, impactMedian float64) Quadrant {
	lowEffort := effort <= effortMedian
	highImpact := impact > impactMedian

	switch {
	case lowEffort && highImpact:
		return QuadrantQuickWins
	case !lowEffort && highImpact:
		return QuadrantMajorProjects
	case lowEffort && !highImpact:
		return QuadrantFillIns
	default:
		return QuadrantQuestionable
	}
}

// Median returns the median of values, interpolating between the two middle
// elements for even lengths. An empty slice yields zero.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// Quantile returns the q-quantile (0 <= q <= 1) of values using linear
// interpolation between order statistics. An empty slice yields zero.
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
