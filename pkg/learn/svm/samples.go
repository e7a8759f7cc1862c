package svm

import (
	"github.com/okian/revsent/pkg/learn"
	"gonum.org/v1/gonum/floats"
)

// samples abstracts sparse and dense training rows. Weight slices carry one
// trailing entry for the bias, paired with a constant feature of 1.
type samples interface {
	Len() int
	Dim() int
	Dot(i int, w []float64) float64
	AddTo(i int, alpha float64, w []float64)
}

type sparseSamples struct {
	m *learn.Matrix
}

func (s sparseSamples) Len() int { return len(s.m.Rows) }
func (s sparseSamples) Dim() int { return s.m.Cols }

func (s sparseSamples) Dot(i int, w []float64) float64 {
	return s.m.Rows[i].Dot(w[:s.m.Cols]) + w[s.m.Cols]
}

func (s sparseSamples) AddTo(i int, alpha float64, w []float64) {
	row := s.m.Rows[i]
	for k, j := range row.Indices {
		if j < s.m.Cols {
			w[j] += alpha * row.Values[k]
		}
	}
	w[s.m.Cols] += alpha
}

type denseSamples struct {
	rows [][]float64
	dim  int
}

func (d denseSamples) Len() int { return len(d.rows) }
func (d denseSamples) Dim() int { return d.dim }

func (d denseSamples) Dot(i int, w []float64) float64 {
	return floats.Dot(d.rows[i], w[:d.dim]) + w[d.dim]
}

func (d denseSamples) AddTo(i int, alpha float64, w []float64) {
	floats.AddScaled(w[:d.dim], alpha, d.rows[i])
	w[d.dim] += alpha
}
