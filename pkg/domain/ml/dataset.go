package ml

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/felixgeelhaar/ricemill/pkg/domain/feedback"
	"github.com/felixgeelhaar/ricemill/pkg/domain/scoring"
)

// FeatureNames lists the model inputs in column order. The first four are the
// derived RICE components; the rest are raw aggregate signals.
var FeatureNames = []string{
	"reach",
	"impact",
	"confidence",
	"effort",
	"request_count",
	"business_value",
	"revenue_impact",
	"unique_users",
	"conversion_impact",
	"retention_impact",
}

// Dataset is a dense training set: one row per feature, target = RICE score.
type Dataset struct {
	X [][]float64
	Y []float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.X) }

// Row builds the model input vector for one feature summary and its derived
// RICE components.
func Row(s *feedback.Summary, in scoring.Input) []float64 {
	return []float64{
		in.Reach,
		in.Impact,
		in.Confidence,
		in.Effort,
		float64(s.RequestCount),
		s.AvgBusinessValue,
		s.AvgRevenueImpact,
		float64(s.UniqueUsers),
		s.AvgConversion,
		s.AvgRetention,
	}
}

// Build assembles a dataset from summaries. The target for each row is its
// deterministic RICE score.
func Build(summaries []*feedback.Summary) (*Dataset, error) {
	d := &Dataset{}
	for _, s := range summaries {
		in := scoring.Derive(s)
		score, err := scoring.Score(in)
		if err != nil {
			return nil, fmt.Errorf("ml: score %s: %w", s.Feature, err)
		}
		d.X = append(d.X, Row(s, in))
		d.Y = append(d.Y, score)
	}
	return d, nil
}

// Augment appends n jittered copies of random rows. Reach-like columns get
// wide noise, score components narrow noise, effort the widest, and targets
// are recomputed with the RICE formula so the synthetic rows stay on-manifold.
func (d *Dataset) Augment(n int, rng *rand.Rand) {
	if d.Len() == 0 || n <= 0 {
		return
	}

	noise := func(col int) float64 {
		switch FeatureNames[col] {
		case "reach", "request_count", "unique_users":
			return uniform(rng, 0.7, 1.3)
		case "impact", "confidence":
			return uniform(rng, 0.9, 1.1)
		case "effort":
			return uniform(rng, 0.6, 1.4)
		default:
			return uniform(rng, 0.8, 1.2)
		}
	}

	base := d.Len()
	for i := 0; i < n; i++ {
		src := d.X[rng.Intn(base)]
		row := make([]float64, len(src))
		for j, v := range src {
			row[j] = math.Abs(v * noise(j))
		}
		effort := math.Max(row[3], 1)
		target := row[0] * row[1] * row[2] / effort
		d.X = append(d.X, row)
		d.Y = append(d.Y, target)
	}
}

// Split shuffles deterministically and carves off a test fraction.
func (d *Dataset) Split(testFraction float64, rng *rand.Rand) (train, test *Dataset) {
	idx := rng.Perm(d.Len())
	testSize := int(math.Round(float64(d.Len()) * testFraction))
	if testSize < 1 && d.Len() > 1 && testFraction > 0 {
		testSize = 1
	}

	train, test = &Dataset{}, &Dataset{}
	for i, j := range idx {
		if i < testSize {
			test.X = append(test.X, d.X[j])
			test.Y = append(test.Y, d.Y[j])
			continue
		}
		train.X = append(train.X, d.X[j])
		train.Y = append(train.Y, d.Y[j])
	}
	return train, test
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
