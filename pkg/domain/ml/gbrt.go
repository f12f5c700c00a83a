package ml

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// MinTrainingFeatures is the threshold below which training is skipped and
// callers fall back to pure RICE ordering.
const MinTrainingFeatures = 10

// ErrTooFewSamples signals that the training set is below the fallback
// threshold. Callers should treat it as "use RICE alone", not as a failure.
var ErrTooFewSamples = errors.New("ml: too few features to train, falling back to RICE")

// Config holds the boosting hyperparameters.
type Config struct {
	Estimators   int     `json:"estimators"`
	LearningRate float64 `json:"learning_rate"`
	MaxDepth     int     `json:"max_depth"`
	MinLeaf      int     `json:"min_leaf"`
	TestFraction float64 `json:"test_fraction"`
	Synthetic    int     `json:"synthetic"`
	Seed         int64   `json:"seed"`
}

// DefaultConfig mirrors the reference pipeline: 100 trees, learning rate 0.1,
// depth 4, 20% holdout, 100 synthetic rows, seed 42.
func DefaultConfig() Config {
	return Config{
		Estimators:   100,
		LearningRate: 0.1,
		MaxDepth:     4,
		MinLeaf:      1,
		TestFraction: 0.2,
		Synthetic:    100,
		Seed:         42,
	}
}

// Model is a trained gradient-boosted ensemble plus its input scaler. The
// whole struct serializes to JSON as the workspace model artifact.
type Model struct {
	Config    Config          `json:"config"`
	Scaler    *StandardScaler `json:"scaler"`
	Base      float64         `json:"base"`
	Trees     []*treeNode     `json:"trees"`
	TrainedAt time.Time       `json:"trained_at"`
	Stats     TrainStats      `json:"stats"`
}

// TrainStats reports fit quality on the held-out split.
type TrainStats struct {
	TrainR2    float64 `json:"train_r2"`
	TestR2     float64 `json:"test_r2"`
	TrainRows  int     `json:"train_rows"`
	TestRows   int     `json:"test_rows"`
	Synthetic  int     `json:"synthetic_rows"`
}

// Train fits the ensemble on the dataset. Datasets under MinTrainingFeatures
// rows (before augmentation) return ErrTooFewSamples.
func Train(d *Dataset, cfg Config) (*Model, error) {
	if d.Len() < MinTrainingFeatures {
		return nil, ErrTooFewSamples
	}
	if cfg.Estimators <= 0 || cfg.LearningRate <= 0 || cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("ml: invalid config %+v", cfg)
	}
	if cfg.MinLeaf < 1 {
		cfg.MinLeaf = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	combined := &Dataset{
		X: append([][]float64{}, d.X...),
		Y: append([]float64{}, d.Y...),
	}
	combined.Augment(cfg.Synthetic, rng)

	train, test := combined.Split(cfg.TestFraction, rng)
	if train.Len() == 0 {
		return nil, fmt.Errorf("ml: empty training split")
	}

	scaler := &StandardScaler{}
	trainX, err := scaler.FitTransform(train.X)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Config:    cfg,
		Scaler:    scaler,
		Base:      mean(train.Y),
		TrainedAt: time.Now().UTC(),
	}

	// Boost on residuals: each tree fits the gradient of squared loss.
	preds := make([]float64, train.Len())
	for i := range preds {
		preds[i] = m.Base
	}
	residuals := make([]float64, train.Len())
	for t := 0; t < cfg.Estimators; t++ {
		for i, y := range train.Y {
			residuals[i] = y - preds[i]
		}
		tree := fitTree(trainX, residuals, cfg.MaxDepth, cfg.MinLeaf)
		m.Trees = append(m.Trees, tree)
		for i, row := range trainX {
			preds[i] += cfg.LearningRate * tree.predict(row)
		}
	}

	m.Stats = TrainStats{
		TrainRows: train.Len(),
		TestRows:  test.Len(),
		Synthetic: cfg.Synthetic,
	}
	m.Stats.TrainR2, err = m.Score(train)
	if err != nil {
		return nil, err
	}
	if test.Len() > 0 {
		m.Stats.TestR2, err = m.Score(test)
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Predict scores one raw (unscaled) feature row.
func (m *Model) Predict(row []float64) (float64, error) {
	scaled, err := m.Scaler.Transform([][]float64{row})
	if err != nil {
		return 0, err
	}
	pred := m.Base
	for _, tree := range m.Trees {
		pred += m.Config.LearningRate * tree.predict(scaled[0])
	}
	return pred, nil
}

// PredictAll scores a batch of raw rows.
func (m *Model) PredictAll(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		pred, err := m.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = pred
	}
	return out, nil
}

// Score returns the coefficient of determination R^2 on a dataset.
func (m *Model) Score(d *Dataset) (float64, error) {
	if d.Len() == 0 {
		return 0, fmt.Errorf("ml: cannot score empty dataset")
	}
	preds, err := m.PredictAll(d.X)
	if err != nil {
		return 0, err
	}

	var residual float64
	for i, y := range d.Y {
		diff := y - preds[i]
		residual += diff * diff
	}
	total := sse(d.Y)
	if total == 0 {
		if residual == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 1 - residual/total, nil
}

// Importance is the normalized squared-error reduction credited to one input.
type Importance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// FeatureImportances reports normalized gains per input, highest first.
func (m *Model) FeatureImportances() []Importance {
	gains := make([]float64, len(FeatureNames))
	for _, tree := range m.Trees {
		tree.collectGains(gains)
	}

	total := 0.0
	for _, g := range gains {
		total += g
	}

	out := make([]Importance, len(FeatureNames))
	for i, name := range FeatureNames {
		imp := 0.0
		if total > 0 {
			imp = gains[i] / total
		}
		out[i] = Importance{Feature: name, Importance: imp}
	}
	sortImportances(out)
	return out
}

func sortImportances(imps []Importance) {
	for i := 1; i < len(imps); i++ {
		for j := i; j > 0 && imps[j].Importance > imps[j-1].Importance; j-- {
			imps[j], imps[j-1] = imps[j-1], imps[j]
		}
	}
}
