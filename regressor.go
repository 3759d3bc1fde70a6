package linreg

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/aouyang1/go-linreg/dataset"
	"github.com/aouyang1/go-linreg/linearunit"
	"github.com/aouyang1/go-linreg/models"
	"github.com/aouyang1/go-linreg/stats"
	"github.com/go-echarts/go-echarts/v2/components"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoOptionsInModel   = errors.New("no options set in model")
	ErrUntrainedRegressor = errors.New("regressor has not been fit")
	ErrCannotInferStep    = errors.New("cannot infer grid step from training data")
)

// Regressor fits a single linear unit to univariate training data and can be used to
// generate predictions
type Regressor struct {
	opt *Options

	unit *linearunit.LinearUnit
	auto *models.GradientDescentAuto

	fitTrainingData *dataset.Dataset
	fitResults      *Results
	residual        []float64
	scores          *models.Scores
}

// New creates a new instance of a Regressor using the provided options. If no options
// are provided a default is used.
func New(opt *Options) (*Regressor, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	if _, err := opt.newGradientDescentAutoOptions(nil).Validate(); err != nil {
		return nil, fmt.Errorf("invalid regressor options, %w", err)
	}

	return &Regressor{
		opt: opt,
	}, nil
}

// NewFromModel creates a new instance of Regressor from a pre-existing model. This
// should be generated from a previous regressor call to Model().
func NewFromModel(model Model) (*Regressor, error) {
	if model.Options == nil {
		return nil, ErrNoOptionsInModel
	}

	unit, err := linearunit.New(model.Weights.Weight, model.Weights.Bias)
	if err != nil {
		return nil, fmt.Errorf("unable to restore linear unit from model weights, %w", err)
	}

	return &Regressor{
		opt:    model.Options,
		unit:   unit,
		scores: model.Scores,
	}, nil
}

// Fit uses the input training data and fits the linear unit with gradient descent
func (r *Regressor) Fit(x, y []float64) error {
	td, err := dataset.New(x, y)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}
	r.fitTrainingData = td.Copy()

	if err := r.fitWithOutliers(td); err != nil {
		return err
	}

	fitResults, err := r.Predict(td.X)
	if err != nil {
		return fmt.Errorf("unable to get predicted values from training set, %w", err)
	}
	r.fitResults = fitResults

	r.residual = make([]float64, td.Len())
	floats.SubTo(r.residual, td.Y, fitResults.Predicted)

	scores, err := models.NewScores(fitResults.Predicted, td.Y)
	if err != nil {
		return fmt.Errorf("unable to compute fit scores, %w", err)
	}
	r.scores = scores

	return nil
}

func (r *Regressor) fitWithOutliers(td *dataset.Dataset) error {
	// iterate to remove outliers
	numPasses := 0
	if r.opt.OutlierOptions != nil {
		numPasses = r.opt.OutlierOptions.NumPasses
	}

	init := linearunit.NewRand(rand.New(rand.NewPCG(r.opt.Seed, r.opt.Seed)))

	current := td
	for i := 0; i <= numPasses; i++ {
		auto, err := models.NewGradientDescentAuto(r.opt.newGradientDescentAutoOptions(init))
		if err != nil {
			return fmt.Errorf("unable to initialize gradient descent sweep, %w", err)
		}
		if err := auto.Fit(current); err != nil {
			return fmt.Errorf("unable to fit training data, %w", err)
		}
		r.auto = auto
		r.unit = auto.Unit()

		// break out if no outlier options provided
		if r.opt.OutlierOptions == nil {
			break
		}

		predicted, err := auto.Predict(current.X)
		if err != nil {
			return fmt.Errorf("unable to predict on training data, %w", err)
		}
		residual := make([]float64, current.Len())
		floats.SubTo(residual, current.Y, predicted)

		outlierIdxs := stats.DetectOutliers(
			residual,
			r.opt.OutlierOptions.LowerPercentile,
			r.opt.OutlierOptions.UpperPercentile,
			r.opt.OutlierOptions.TukeyFactor,
		)

		// no more outliers detected with outlier options so break early
		if len(outlierIdxs) == 0 {
			break
		}

		outlierSet := make(map[int]struct{}, len(outlierIdxs))
		for _, idx := range outlierIdxs {
			outlierSet[idx] = struct{}{}
		}

		next, err := current.Without(outlierSet)
		if err != nil {
			slog.Warn("skipping outlier pass that would leave no training data",
				"pass", i, "outliers", len(outlierIdxs))
			break
		}
		current = next
	}
	return nil
}

// Predict takes in any set of inputs and generates a prediction per input
func (r *Regressor) Predict(x []float64) (*Results, error) {
	if r.unit == nil {
		return nil, ErrUntrainedRegressor
	}

	xCopy := make([]float64, len(x))
	copy(xCopy, x)

	predicted := make([]float64, len(x))
	for i, v := range x {
		predicted[i] = r.unit.Predict(v)
	}

	return &Results{
		X:         xCopy,
		Predicted: predicted,
	}, nil
}

// Evaluate scores the fit against a held-out set of inputs and targets
func (r *Regressor) Evaluate(x, y []float64) (*models.Scores, error) {
	d, err := dataset.New(x, y)
	if err != nil {
		return nil, fmt.Errorf("unable to create evaluation dataset, %w", err)
	}

	res, err := r.Predict(d.X)
	if err != nil {
		return nil, err
	}
	return models.NewScores(res.Predicted, d.Y)
}

// Residuals returns the difference between the final fit against the training data
func (r *Regressor) Residuals() []float64 {
	return r.residual
}

// Scores returns the fit scores computed over the training data
func (r *Regressor) Scores() *models.Scores {
	return r.scores
}

// Weight returns the slope of the fit linear unit
func (r *Regressor) Weight() float64 {
	if r.unit == nil {
		return 0.0
	}
	return r.unit.W
}

// Intercept returns the bias of the fit linear unit
func (r *Regressor) Intercept() float64 {
	if r.unit == nil {
		return 0.0
	}
	return r.unit.B
}

// CostHistory returns the training cost recorded at the start of each epoch of the
// best fit
func (r *Regressor) CostHistory() []float64 {
	if r.auto == nil {
		return nil
	}
	return r.auto.CostHistory()
}

// BestLearningRate returns the learning rate that produced the best fit score
func (r *Regressor) BestLearningRate() float64 {
	if r.auto == nil {
		return 0.0
	}
	return r.auto.BestLearningRate()
}

// ModelEq returns a string representation of the fit model represented as y ~ b + w*x
func (r *Regressor) ModelEq() (string, error) {
	if r.unit == nil {
		return "", ErrUntrainedRegressor
	}
	return r.unit.String(), nil
}

// TrainingData returns the training data used to fit the current regressor model
func (r *Regressor) TrainingData() *dataset.Dataset {
	return r.fitTrainingData
}

// FitResults returns the predictions over the training inputs after fitting
func (r *Regressor) FitResults() *Results {
	return r.fitResults
}

// Model generates a serializeable representation of the fit options, scores, and
// learned weights. This can be used to initialize a new Regressor for immediate
// predictions skipping the training step.
func (r *Regressor) Model() (Model, error) {
	if r.unit == nil {
		return Model{}, ErrUntrainedRegressor
	}
	m := Model{
		Options: r.opt,
		Weights: Weights{
			Weight: r.unit.W,
			Bias:   r.unit.B,
		},
		Scores: r.scores,
	}
	return m, nil
}

// PlotOpts sets the horizon to extrapolate out to. By default will use 10% of the
// training size assuming even spacing between points and the first two points are used
// to infer the grid step.
type PlotOpts struct {
	HorizonCnt  int
	HorizonStep float64
}

// PlotFit uses the Apache Echarts library to generate an html page showing the
// resulting fit along with the training cost history
func (r *Regressor) PlotFit(w io.Writer, opt *PlotOpts) error {
	td := r.TrainingData()
	if td == nil || td.Len() < 2 {
		return ErrCannotInferStep
	}

	horizonCnt := td.Len() / 10
	horizonStep := td.X[1] - td.X[0]
	if opt != nil {
		horizonCnt = opt.HorizonCnt
		horizonStep = opt.HorizonStep
	}
	if horizonCnt < 1 {
		horizonCnt = 1
	}
	if horizonStep <= 0 {
		horizonStep = td.X[1] - td.X[0]
	}

	lastX := td.X[td.Len()-1]
	horizon := make([]float64, 0, horizonCnt)
	for i := 0; i < horizonCnt; i++ {
		horizon = append(horizon, lastX+float64(i+1)*horizonStep)
	}

	horizonRes, err := r.Predict(horizon)
	if err != nil {
		return fmt.Errorf("unable to predict with horizon, %w", err)
	}

	page := components.NewPage()
	page.AddCharts(
		LineFit(td, r.fitResults, horizonRes),
		LineCostHistory(r.CostHistory()),
	)
	return page.Render(w)
}
