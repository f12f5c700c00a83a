// Package ml implements the learned re-ranker: a least-squares gradient
// boosted tree ensemble over aggregated feature signals, with standard
// scaling and synthetic training augmentation.
package ml

import (
	"fmt"
	"math"
)

// StandardScaler centers features to zero mean and unit variance, fitted on
// the training set and applied to everything predicted later.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Fit computes per-column mean and standard deviation.
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return fmt.Errorf("ml: cannot fit scaler on empty data")
	}
	dims := len(rows[0])
	s.Mean = make([]float64, dims)
	s.Std = make([]float64, dims)

	for _, row := range rows {
		if len(row) != dims {
			return fmt.Errorf("ml: ragged row, got %d columns want %d", len(row), dims)
		}
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range s.Mean {
		s.Mean[j] /= n
	}

	for _, row := range rows {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := range s.Std {
		s.Std[j] = math.Sqrt(s.Std[j] / n)
		if s.Std[j] == 0 {
			// Constant column: leave it centered but unscaled.
			s.Std[j] = 1
		}
	}
	return nil
}

// Transform scales rows in a fresh slice, leaving the input untouched.
func (s *StandardScaler) Transform(rows [][]float64) ([][]float64, error) {
	if len(s.Mean) == 0 {
		return nil, fmt.Errorf("ml: scaler is not fitted")
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("ml: row has %d columns, scaler fitted on %d", len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits the scaler and returns the scaled rows.
func (s *StandardScaler) FitTransform(rows [][]float64) ([][]float64, error) {
	if err := s.Fit(rows); err != nil {
		return nil, err
	}
	return s.Transform(rows)
}
