package models

import (
	"testing"

	"github.com/aouyang1/go-linreg/dataset"
	"github.com/sajari/regression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOLSRegression(t *testing.T) {
	tol := 1e-8
	testData := map[string]struct {
		x         []float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		weight    float64
	}{
		"model intercept": {
			x:         []float64{0, 1, 2, 3, 4},
			y:         []float64{2, 5, 8, 11, 14},
			opt:       nil,
			intercept: 2.0,
			weight:    3.0,
		},
		"model no intercept": {
			x:         []float64{1, 2, 3, 4, 5},
			y:         []float64{2, 4, 6, 8, 10},
			opt:       &OLSOptions{FitIntercept: false},
			intercept: 0.0,
			weight:    2.0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			d, err := dataset.New(td.x, td.y)
			require.Nil(t, err)

			model, err := NewOLSRegression(td.opt)
			require.Nil(t, err)

			testModel(t, model, d, td.intercept, td.weight, tol)
		})
	}
}

func TestOLSRegressionCelsius(t *testing.T) {
	d := celsiusTrainingData(t)

	model, err := NewOLSRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(d))

	assert.InDelta(t, 32.0, model.Intercept(), 1e-8)
	assert.InDelta(t, 1.8, model.Weight(), 1e-8)

	predicted, err := model.Predict([]float64{30})
	require.Nil(t, err)
	assert.InDelta(t, 86.0, predicted[0], 1e-8)
}

func TestOLSRegressionUntrained(t *testing.T) {
	model, err := NewOLSRegression(nil)
	require.Nil(t, err)

	_, err = model.Predict([]float64{30})
	expected := ErrUntrainedModel
	assert.ErrorAs(t, err, &expected)
}

func TestOLSAgainstLibRegression(t *testing.T) {
	d := celsiusTrainingData(t)

	model, err := NewOLSRegression(nil)
	require.Nil(t, err)
	require.Nil(t, model.Fit(d))

	r := new(regression.Regression)
	r.SetObserved("fahrenheit")
	r.SetVar(0, "celsius")
	for i := 0; i < d.Len(); i++ {
		r.Train(regression.DataPoint(d.Y[i], []float64{d.X[i]}))
	}
	require.Nil(t, r.Run())

	t.Logf("Regression formula:\n%v\n", r.Formula)

	coeffs := r.GetCoeffs()
	assert.InDelta(t, coeffs[0], model.Intercept(), 1e-6)
	assert.InDelta(t, coeffs[1], model.Weight(), 1e-6)
}

func TestGradientDescentMatchesOLS(t *testing.T) {
	d := celsiusTrainingData(t)

	ols, err := NewOLSRegression(nil)
	require.Nil(t, err)
	require.Nil(t, ols.Fit(d))

	gd, err := NewGradientDescent(NewDefaultGradientDescentOptions())
	require.Nil(t, err)
	require.Nil(t, gd.Fit(d))

	assert.InDelta(t, ols.Weight(), gd.Weight(), 0.05)
	assert.InDelta(t, ols.Intercept(), gd.Intercept(), 1.0)
}
