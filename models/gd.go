package models

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-linreg/dataset"
	"github.com/aouyang1/go-linreg/linearunit"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultEpochs       = 70000
	DefaultLearningRate = 5e-4

	// DefaultTolerance disables early stopping so the cost history spans every epoch.
	DefaultTolerance = 0.0
)

// Forward runs the linear unit over the full dataset returning the per point
// predictions along with the half mean squared error cost,
// sum((y-yhat)^2) / (2*m). The half scaling keeps the cost derivative free of a
// stray factor of 2.
func Forward(u *linearunit.LinearUnit, d *dataset.Dataset) ([]float64, float64, error) {
	if u == nil {
		return nil, 0.0, ErrNoLinearUnit
	}
	if d == nil || d.Len() == 0 {
		return nil, 0.0, ErrNoTrainingData
	}

	m := d.Len()
	predicted := make([]float64, m)
	for i, x := range d.X {
		predicted[i] = u.Predict(x)
	}

	residual := make([]float64, m)
	floats.SubTo(residual, d.Y, predicted)
	cost := floats.Dot(residual, residual) / (2.0 * float64(m))
	return predicted, cost, nil
}

// Backward computes the gradient of the forward cost with respect to the unit's weight
// and bias given the predictions and the dataset they were derived from,
//
//	deltaW = sum((y-yhat)*x) / m
//	deltaB = sum(y-yhat) / m
//
// These are the negative partial derivatives of the half mean squared error, so a
// positive delta means the parameter must increase to reduce the cost. Predictions must
// come from a Forward call over the same dataset to keep the index pairing intact.
func Backward(predicted []float64, d *dataset.Dataset) (float64, float64, error) {
	if d == nil || d.Len() == 0 {
		return 0.0, 0.0, ErrNoTrainingData
	}
	if len(predicted) != d.Len() {
		return 0.0, 0.0, fmt.Errorf(
			"got %d predictions for %d training points, %w",
			len(predicted), d.Len(), ErrPredictionLenMismatch,
		)
	}

	m := float64(d.Len())
	residual := make([]float64, d.Len())
	floats.SubTo(residual, d.Y, predicted)

	deltaW := floats.Dot(residual, d.X) / m
	deltaB := floats.Sum(residual) / m
	return deltaW, deltaB, nil
}

// Train mutates the linear unit in place running forward and backward passes over the
// training dataset for the configured number of epochs. Each epoch adds the alpha
// scaled deltas onto the parameters since the deltas already carry the sign that
// reduces the cost. Returns the cost recorded at the start of every epoch. Divergence
// from an excessive learning rate is not guarded and propagates as ordinary IEEE
// infinities through the history.
func Train(u *linearunit.LinearUnit, d *dataset.Dataset, opt *GradientDescentOptions) ([]float64, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNoLinearUnit
	}
	if d == nil || d.Len() == 0 {
		return nil, ErrNoTrainingData
	}

	costHistory := make([]float64, 0, opt.Epochs)
	for i := 0; i < opt.Epochs; i++ {
		predicted, cost, err := Forward(u, d)
		if err != nil {
			return nil, err
		}
		costHistory = append(costHistory, cost)

		deltaW, deltaB, err := Backward(predicted, d)
		if err != nil {
			return nil, err
		}

		stepW := deltaW * opt.LearningRate
		stepB := deltaB * opt.LearningRate
		u.W += stepW
		u.B += stepB

		// break early if we've achieved the desired tolerance
		if opt.Tolerance > 0 && math.Max(math.Abs(stepW), math.Abs(stepB)) < opt.Tolerance*math.Max(math.Abs(u.W), math.Abs(u.B)) {
			break
		}
	}
	return costHistory, nil
}

// GradientDescentOptions represents input options to run the batch gradient descent fit
type GradientDescentOptions struct {
	// LearningRate scales the parameter update applied on each epoch. Must be positive.
	LearningRate float64

	// Epochs is the number of full forward/backward/update passes over the training set.
	Epochs int

	// Tolerance is the smallest relative parameter update on each epoch to determine
	// when to stop iterating. 0 disables early stopping.
	Tolerance float64

	// Init primes the fit with a starting weight and bias. A zero valued unit is used
	// when not set.
	Init *linearunit.LinearUnit
}

// Validate runs basic validation on gradient descent options
func (g *GradientDescentOptions) Validate() (*GradientDescentOptions, error) {
	if g == nil {
		g = NewDefaultGradientDescentOptions()
	}

	if g.LearningRate <= 0 {
		return nil, ErrNonPositiveLearningRate
	}
	if g.Epochs < 0 {
		return nil, ErrNegativeEpochs
	}
	if g.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	return g, nil
}

// NewDefaultGradientDescentOptions returns a default set of gradient descent options
func NewDefaultGradientDescentOptions() *GradientDescentOptions {
	return &GradientDescentOptions{
		LearningRate: DefaultLearningRate,
		Epochs:       DefaultEpochs,
		Tolerance:    DefaultTolerance,
		Init:         nil,
	}
}

// GradientDescent fits a linear unit with batch gradient descent over a univariate
// dataset
type GradientDescent struct {
	opt *GradientDescentOptions

	unit        *linearunit.LinearUnit
	costHistory []float64
}

// NewGradientDescent initializes a gradient descent model ready for fitting
func NewGradientDescent(opt *GradientDescentOptions) (*GradientDescent, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &GradientDescent{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data
func (g *GradientDescent) Fit(d *dataset.Dataset) error {
	if g.opt == nil {
		return ErrNoOptions
	}

	unit := &linearunit.LinearUnit{}
	if g.opt.Init != nil {
		unit = g.opt.Init.Copy()
	}

	costHistory, err := Train(unit, d, g.opt)
	if err != nil {
		return fmt.Errorf("unable to run gradient descent, %w", err)
	}
	g.unit = unit
	g.costHistory = costHistory
	return nil
}

// Predict using the fit linear unit
func (g *GradientDescent) Predict(x []float64) ([]float64, error) {
	if g.unit == nil {
		return nil, ErrUntrainedModel
	}

	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = g.unit.Predict(v)
	}
	return res, nil
}

// Score computes the coefficient of determination of the prediction
func (g *GradientDescent) Score(d *dataset.Dataset) (float64, error) {
	if d == nil || d.Len() == 0 {
		return 0.0, ErrNoTrainingData
	}

	predicted, err := g.Predict(d.X)
	if err != nil {
		return 0.0, err
	}

	score := stat.RSquaredFrom(predicted, d.Y, nil)
	if math.IsNaN(score) {
		score = 1.0
	}
	return score, nil
}

// Intercept returns the bias of the fit linear unit
func (g *GradientDescent) Intercept() float64 {
	if g == nil || g.unit == nil {
		return 0.0
	}
	return g.unit.B
}

// Weight returns the weight of the fit linear unit
func (g *GradientDescent) Weight() float64 {
	if g == nil || g.unit == nil {
		return 0.0
	}
	return g.unit.W
}

// Unit returns a copy of the fit linear unit
func (g *GradientDescent) Unit() *linearunit.LinearUnit {
	if g == nil || g.unit == nil {
		return nil
	}
	return g.unit.Copy()
}

// CostHistory returns the cost recorded at the start of each training epoch
func (g *GradientDescent) CostHistory() []float64 {
	return g.costHistory
}
