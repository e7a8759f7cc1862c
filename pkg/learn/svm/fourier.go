package svm

import (
	"math"
	"math/rand"

	"github.com/okian/revsent/pkg/learn"
)

// fourierMap approximates the RBF kernel exp(-gamma*|x-y|^2) with
// z(x) = sqrt(2/D) * cos(W^T x + b), W ~ N(0, 2*gamma), b ~ U[0, 2*pi).
type fourierMap struct {
	proj   [][]float64 // one row of D weights per input column
	offset []float64
	norm   float64
}

func newFourierMap(cols, components int, gamma float64, rng *rand.Rand) *fourierMap {
	std := math.Sqrt(2 * gamma)
	f := &fourierMap{
		proj:   make([][]float64, cols),
		offset: make([]float64, components),
		norm:   math.Sqrt(2 / float64(components)),
	}
	for j := range f.proj {
		row := make([]float64, components)
		for k := range row {
			row[k] = rng.NormFloat64() * std
		}
		f.proj[j] = row
	}
	for k := range f.offset {
		f.offset[k] = rng.Float64() * 2 * math.Pi
	}
	return f
}

func (f *fourierMap) transform(x *learn.Matrix) [][]float64 {
	out := make([][]float64, len(x.Rows))
	for i, row := range x.Rows {
		z := append([]float64(nil), f.offset...)
		for k, j := range row.Indices {
			if j >= len(f.proj) {
				continue
			}
			v := row.Values[k]
			for d, w := range f.proj[j] {
				z[d] += v * w
			}
		}
		for d := range z {
			z[d] = f.norm * math.Cos(z[d])
		}
		out[i] = z
	}
	return out
}
