package dataset

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Affine represents a ground-truth transform of the form y = x*Weight + Bias used to
// generate sample sets with a known solution.
type Affine struct {
	Weight float64
	Bias   float64
}

// At evaluates the transform at the given input.
func (a Affine) At(x float64) float64 {
	return x*a.Weight + a.Bias
}

// CelsiusToFahrenheit is the canonical transform the example datasets are drawn from.
var CelsiusToFahrenheit = Affine{Weight: 1.8, Bias: 32}

// GenerateGrid returns n evenly spaced inputs starting at start.
func GenerateGrid(start, step float64, n int) []float64 {
	x := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x = append(x, start+float64(i)*step)
	}
	return x
}

// GenerateAffine returns a dataset pairing the given inputs with the transform output
// at each input.
func GenerateAffine(a Affine, x []float64) (*Dataset, error) {
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = a.At(v)
	}
	return New(x, y)
}

// GenerateTrainTest returns a training and test set of n points each drawn from the
// given transform. The test grid is offset by half a step so no test input coincides
// with a training input.
func GenerateTrainTest(a Affine, n int) (*Dataset, *Dataset, error) {
	train, err := GenerateAffine(a, GenerateGrid(0, 1, n))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to generate training set, %w", err)
	}
	test, err := GenerateAffine(a, GenerateGrid(0.5, 1, n))
	if err != nil {
		return nil, nil, fmt.Errorf("unable to generate test set, %w", err)
	}
	return train, test, nil
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// GenerateNoise returns gaussian noise scaled by the input scale. Deterministic for a
// given random source.
func GenerateNoise(rnd *rand.Rand, n int, scale float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rnd.NormFloat64()*scale)
	}
	return Series(y)
}
