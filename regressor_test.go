package linreg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aouyang1/go-linreg/dataset"
	"github.com/aouyang1/go-linreg/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testData := map[string]struct {
		opt *Options
		err error
	}{
		"nil opt uses default": {nil, nil},
		"valid": {
			&Options{
				LearningRates: []float64{1e-4, 5e-4},
				Epochs:        1000,
			}, nil,
		},
		"no learning rates": {
			&Options{Epochs: 1000},
			models.ErrNoLearningRates,
		},
		"negative epochs": {
			&Options{LearningRates: []float64{5e-4}, Epochs: -1},
			models.ErrNegativeEpochs,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			r, err := New(td.opt)
			if td.err != nil {
				assert.ErrorAs(t, err, &td.err)
				return
			}
			require.Nil(t, err)
			require.NotNil(t, r)
		})
	}
}

func TestFitPredictEvaluate(t *testing.T) {
	train, test, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)

	opt := NewDefaultOptions()
	opt.Seed = 11

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(train.X, train.Y))

	assert.InDelta(t, 1.8, r.Weight(), 0.05)
	assert.InDelta(t, 32.0, r.Intercept(), 1.0)
	assert.Equal(t, models.DefaultLearningRate, r.BestLearningRate())

	costHistory := r.CostHistory()
	require.Len(t, costHistory, opt.Epochs)
	assert.Less(t, costHistory[len(costHistory)-1], costHistory[0])
	assert.Less(t, costHistory[len(costHistory)-1], 1e-3)

	res, err := r.Predict([]float64{30})
	require.Nil(t, err)
	assert.InDelta(t, 86.0, res.Predicted[0], 1.0)

	require.NotNil(t, r.FitResults())
	assert.Len(t, r.Residuals(), train.Len())
	require.NotNil(t, r.Scores())
	assert.Greater(t, r.Scores().R2, 0.999)

	scores, err := r.Evaluate(test.X, test.Y)
	require.Nil(t, err)
	assert.Greater(t, scores.R2, 0.999)
	assert.Less(t, scores.MSE, 0.01)
}

func TestFitDeterminism(t *testing.T) {
	train, _, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)

	opt := NewDefaultOptions()
	opt.Epochs = 5000
	opt.Seed = 11

	fit := func() *Regressor {
		r, err := New(opt)
		require.Nil(t, err)
		require.Nil(t, r.Fit(train.X, train.Y))
		return r
	}

	a := fit()
	b := fit()
	assert.Equal(t, a.Weight(), b.Weight())
	assert.Equal(t, a.Intercept(), b.Intercept())
	assert.Equal(t, a.CostHistory(), b.CostHistory())
}

func TestFitWithOutliers(t *testing.T) {
	train, _, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)

	y := make([]float64, len(train.Y))
	copy(y, train.Y)
	y[10] += 200
	y[42] -= 150
	y[77] += 300

	opt := NewDefaultOptions()
	opt.Seed = 11
	opt.OutlierOptions = NewOutlierOptions()

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(train.X, y))

	assert.InDelta(t, 1.8, r.Weight(), 0.05)
	assert.InDelta(t, 32.0, r.Intercept(), 1.0)
}

func TestPredictUntrained(t *testing.T) {
	r, err := New(nil)
	require.Nil(t, err)

	_, err = r.Predict([]float64{30})
	expected := ErrUntrainedRegressor
	assert.ErrorAs(t, err, &expected)

	_, err = r.ModelEq()
	assert.ErrorAs(t, err, &expected)

	_, err = r.Model()
	assert.ErrorAs(t, err, &expected)
}

func TestModelRoundTrip(t *testing.T) {
	train, _, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)

	opt := NewDefaultOptions()
	opt.Epochs = 5000
	opt.Seed = 11

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(train.X, train.Y))

	m, err := r.Model()
	require.Nil(t, err)

	data, err := json.Marshal(m)
	require.Nil(t, err)

	var decoded Model
	require.Nil(t, json.Unmarshal(data, &decoded))

	loaded, err := NewFromModel(decoded)
	require.Nil(t, err)

	input := []float64{0, 12.5, 30, 99.5}
	expected, err := r.Predict(input)
	require.Nil(t, err)
	actual, err := loaded.Predict(input)
	require.Nil(t, err)
	assert.Equal(t, expected.Predicted, actual.Predicted)
}

func TestNewFromModelNoOptions(t *testing.T) {
	_, err := NewFromModel(Model{})
	expected := ErrNoOptionsInModel
	assert.ErrorAs(t, err, &expected)
}

func TestModelEq(t *testing.T) {
	train, _, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)

	opt := NewDefaultOptions()
	opt.Seed = 11

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(train.X, train.Y))

	eq, err := r.ModelEq()
	require.Nil(t, err)
	assert.True(t, strings.HasPrefix(eq, "y ~ "))
}

func TestModelTablePrint(t *testing.T) {
	train, _, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)

	opt := NewDefaultOptions()
	opt.Epochs = 5000
	opt.Seed = 11

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(train.X, train.Y))

	m, err := r.Model()
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, m.TablePrint(&buf, "", "  "))
	out := buf.String()
	assert.Contains(t, out, "Regression:")
	assert.Contains(t, out, "Scores:")
	assert.Contains(t, out, "Weights:")
}

func TestPlotFit(t *testing.T) {
	train, _, err := dataset.GenerateTrainTest(dataset.CelsiusToFahrenheit, 100)
	require.Nil(t, err)

	opt := NewDefaultOptions()
	opt.Epochs = 5000
	opt.Seed = 11

	r, err := New(opt)
	require.Nil(t, err)
	require.Nil(t, r.Fit(train.X, train.Y))

	var buf bytes.Buffer
	require.Nil(t, r.PlotFit(&buf, nil))
	assert.Greater(t, buf.Len(), 0)

	buf.Reset()
	require.Nil(t, r.PlotFit(&buf, &PlotOpts{HorizonCnt: 20, HorizonStep: 0.5}))
	assert.Greater(t, buf.Len(), 0)
}

func TestPlotFitUntrained(t *testing.T) {
	r, err := New(nil)
	require.Nil(t, err)

	var buf bytes.Buffer
	err = r.PlotFit(&buf, nil)
	expected := ErrCannotInferStep
	assert.ErrorAs(t, err, &expected)
}
