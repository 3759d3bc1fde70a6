package models

import (
	"testing"

	"github.com/aouyang1/go-linreg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func celsiusTrainingData(t *testing.T) *dataset.Dataset {
	train, _, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)
	return train
}

func testModel(t *testing.T, model Model, d *dataset.Dataset, intercept, weight, tol float64) {
	err := model.Fit(d)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol)
	assert.InDelta(t, weight, model.Weight(), tol)

	r2, err := model.Score(d)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, 1e-3)
}
