package ml

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestTrainRejectsSmallDatasets(t *testing.T) {
	d, err := Build(sampleSummaries(5))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := Train(d, DefaultConfig()); !errors.Is(err, ErrTooFewSamples) {
		t.Fatalf("Train() error = %v, want ErrTooFewSamples", err)
	}
}

func TestTrainRecoversRICE(t *testing.T) {
	d, err := Build(sampleSummaries(20))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	m, err := Train(d, DefaultConfig())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	// The targets are a deterministic function of the inputs, so the
	// ensemble should fit the training split almost perfectly.
	if m.Stats.TrainR2 < 0.95 {
		t.Errorf("train R2 = %v, want >= 0.95", m.Stats.TrainR2)
	}
	if len(m.Trees) != 100 {
		t.Errorf("len(Trees) = %d, want 100", len(m.Trees))
	}
	if m.Stats.TrainRows+m.Stats.TestRows != 20+100 {
		t.Errorf("split rows = %d + %d, want 120 total", m.Stats.TrainRows, m.Stats.TestRows)
	}
}

func TestTrainDeterministic(t *testing.T) {
	d1, _ := Build(sampleSummaries(15))
	d2, _ := Build(sampleSummaries(15))

	m1, err := Train(d1, DefaultConfig())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	m2, err := Train(d2, DefaultConfig())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	row := d1.X[0]
	p1, err := m1.Predict(row)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	p2, err := m2.Predict(row)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if p1 != p2 {
		t.Errorf("same seed produced different predictions: %v vs %v", p1, p2)
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	d, _ := Build(sampleSummaries(12))
	m, err := Train(d, DefaultConfig())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if _, err := m.Predict([]float64{1, 2, 3}); err == nil {
		t.Error("Predict() with short row expected error")
	}
}

func TestFeatureImportances(t *testing.T) {
	d, _ := Build(sampleSummaries(20))
	m, err := Train(d, DefaultConfig())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	imps := m.FeatureImportances()
	if len(imps) != len(FeatureNames) {
		t.Fatalf("len(importances) = %d, want %d", len(imps), len(FeatureNames))
	}

	var total float64
	for i, imp := range imps {
		if imp.Importance < 0 {
			t.Errorf("importance %q = %v, want non-negative", imp.Feature, imp.Importance)
		}
		if i > 0 && imp.Importance > imps[i-1].Importance {
			t.Errorf("importances not sorted descending at %d", i)
		}
		total += imp.Importance
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("importances sum = %v, want 1", total)
	}
}

func TestModelRoundTrip(t *testing.T) {
	d, _ := Build(sampleSummaries(15))
	m, err := Train(d, DefaultConfig())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var restored Model
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	row := d.X[3]
	want, _ := m.Predict(row)
	got, err := restored.Predict(row)
	if err != nil {
		t.Fatalf("restored Predict() error = %v", err)
	}
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("restored Predict() = %v, want %v", got, want)
	}
}
