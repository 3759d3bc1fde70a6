// Package models is a collection of linear model fitting implementations to be used in
// the regressor
package models

import (
	"github.com/aouyang1/go-linreg/dataset"
)

type Model interface {
	Fit(d *dataset.Dataset) error
	Predict(x []float64) ([]float64, error)
	Score(d *dataset.Dataset) (float64, error)
	Intercept() float64
	Weight() float64
}
