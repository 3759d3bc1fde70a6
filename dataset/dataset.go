// Package dataset stores index-paired input and target samples used to fit and
// evaluate linear models.
package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrDatasetLenMismatch = errors.New("inputs have a different length than targets")
	ErrAllPointsDropped   = errors.New("all points dropped from dataset")
)

// Dataset represents a sample set storing a slice of inputs and target values.
// Both must be of the same length and targets are paired with inputs by index.
type Dataset struct {
	X []float64
	Y []float64
}

// New returns an instance of a Dataset given an input and target slice.
func New(x, y []float64) (*Dataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf(
			"inputs have a length of %d, but targets have a length of %d, %w",
			len(x), len(y), ErrDatasetLenMismatch,
		)
	}

	xSeries := make([]float64, len(x))
	ySeries := make([]float64, len(y))
	copy(xSeries, x)
	copy(ySeries, y)
	d := &Dataset{
		X: xSeries,
		Y: ySeries,
	}

	return d, nil
}

// Len returns the number of sample points in the dataset.
func (d *Dataset) Len() int {
	return len(d.X)
}

func (d *Dataset) Copy() *Dataset {
	xSeries := make([]float64, len(d.X))
	ySeries := make([]float64, len(d.Y))
	copy(xSeries, d.X)
	copy(ySeries, d.Y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}
}

// Without returns a copy of the dataset excluding the sample points at the given
// indexes. Used to re-fit after detecting outliers in the residual.
func (d *Dataset) Without(drop map[int]struct{}) (*Dataset, error) {
	x := make([]float64, 0, d.Len())
	y := make([]float64, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		if _, exists := drop[i]; exists {
			continue
		}
		x = append(x, d.X[i])
		y = append(y, d.Y[i])
	}
	if len(x) == 0 {
		return nil, ErrAllPointsDropped
	}
	return &Dataset{X: x, Y: y}, nil
}
