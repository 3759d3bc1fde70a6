package models

import (
	"log/slog"
	"math"
	"sync"

	"github.com/aouyang1/go-linreg/dataset"
	"github.com/aouyang1/go-linreg/linearunit"
)

// GradientDescentAutoOptions represents input options to run the batch gradient descent
// fit with optimal learning rate selection
type GradientDescentAutoOptions struct {
	// LearningRates is the set of candidate learning rates to sweep over. The rate
	// producing the best fit score is kept.
	LearningRates []float64

	// Epochs is the number of full forward/backward/update passes over the training set.
	Epochs int

	// Tolerance is the smallest relative parameter update on each epoch to determine
	// when to stop iterating. 0 disables early stopping.
	Tolerance float64

	// Init primes each candidate fit with a starting weight and bias.
	Init *linearunit.LinearUnit

	// Parallelization sets how many fits to run in parallel. More will increase memory
	// and compute usage.
	Parallelization int
}

// Validate runs basic validation on gradient descent auto options
func (g *GradientDescentAutoOptions) Validate() (*GradientDescentAutoOptions, error) {
	if g == nil {
		g = NewDefaultGradientDescentAutoOptions()
	}

	if len(g.LearningRates) == 0 {
		return nil, ErrNoLearningRates
	}
	for _, rate := range g.LearningRates {
		if rate <= 0 {
			return nil, ErrNonPositiveLearningRate
		}
	}

	if g.Epochs < 0 {
		return nil, ErrNegativeEpochs
	}
	if g.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}
	if g.Parallelization == 0 || g.Parallelization > len(g.LearningRates) {
		g.Parallelization = len(g.LearningRates)
	}
	return g, nil
}

// NewDefaultGradientDescentAutoOptions returns a default set of gradient descent auto
// options
func NewDefaultGradientDescentAutoOptions() *GradientDescentAutoOptions {
	return &GradientDescentAutoOptions{
		LearningRates:   []float64{DefaultLearningRate},
		Epochs:          DefaultEpochs,
		Tolerance:       DefaultTolerance,
		Parallelization: 1,
	}
}

// GradientDescentAuto fits one gradient descent model per candidate learning rate and
// keeps the model with the best fit score. Candidate fits run independently of each
// other so they may run in parallel, but each fit's epoch loop stays strictly
// sequential since every update depends on the previous one.
type GradientDescentAuto struct {
	opt *GradientDescentAutoOptions

	scoreMu   sync.Mutex
	bestScore float64
	bestRate  float64
	bestModel *GradientDescent
}

// NewGradientDescentAuto initializes a gradient descent model ready for fitting using
// automated learning rate selection
func NewGradientDescentAuto(opt *GradientDescentAutoOptions) (*GradientDescentAuto, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	return &GradientDescentAuto{
		opt:       opt,
		bestScore: math.Inf(-1),
	}, nil
}

// Fit the model according to the given training data
func (g *GradientDescentAuto) Fit(d *dataset.Dataset) error {
	if g.opt == nil {
		return ErrNoOptions
	}
	if d == nil || d.Len() == 0 {
		return ErrNoTrainingData
	}

	sem := make(chan struct{}, g.opt.Parallelization)
	var wg sync.WaitGroup
	for _, rate := range g.opt.LearningRates {
		sem <- struct{}{}
		wg.Add(1)

		go g.runDescent(rate, d, &wg, sem)
	}
	wg.Wait()

	if g.bestModel == nil {
		return ErrNoConvergedFit
	}
	return nil
}

func (g *GradientDescentAuto) runDescent(rate float64, d *dataset.Dataset, wg *sync.WaitGroup, sem chan struct{}) {
	defer func() {
		wg.Done()
		<-sem
	}()

	opt := &GradientDescentOptions{
		LearningRate: rate,
		Epochs:       g.opt.Epochs,
		Tolerance:    g.opt.Tolerance,
		Init:         g.opt.Init,
	}

	reg, err := NewGradientDescent(opt)
	if err != nil {
		slog.Error("unable to initialize gradient descent", "error", err.Error())
		return
	}
	if err := reg.Fit(d); err != nil {
		slog.Error("unable to fit gradient descent", "error", err.Error(), "learning_rate", rate)
		return
	}

	history := reg.CostHistory()
	if len(history) > 0 {
		if last := history[len(history)-1]; math.IsNaN(last) || math.IsInf(last, 0) {
			slog.Warn("gradient descent diverged", "learning_rate", rate, "last_cost", last)
			return
		}
	}

	score, err := reg.Score(d)
	if err != nil {
		slog.Error("unable to compute fit score for gradient descent", "error", err.Error(), "learning_rate", rate)
		return
	}

	g.scoreMu.Lock()
	defer g.scoreMu.Unlock()
	if score > g.bestScore {
		g.bestScore = score
		g.bestRate = rate
		g.bestModel = reg
	}
}

// Predict using the best fit model
func (g *GradientDescentAuto) Predict(x []float64) ([]float64, error) {
	if g.bestModel == nil {
		return nil, ErrUntrainedModel
	}
	return g.bestModel.Predict(x)
}

// Score computes the coefficient of determination of the prediction
func (g *GradientDescentAuto) Score(d *dataset.Dataset) (float64, error) {
	if g.bestModel == nil {
		return 0.0, ErrUntrainedModel
	}
	return g.bestModel.Score(d)
}

// Intercept returns the bias of the best fit linear unit
func (g *GradientDescentAuto) Intercept() float64 {
	if g == nil || g.bestModel == nil {
		return 0.0
	}
	return g.bestModel.Intercept()
}

// Weight returns the weight of the best fit linear unit
func (g *GradientDescentAuto) Weight() float64 {
	if g == nil || g.bestModel == nil {
		return 0.0
	}
	return g.bestModel.Weight()
}

// Unit returns a copy of the best fit linear unit
func (g *GradientDescentAuto) Unit() *linearunit.LinearUnit {
	if g == nil || g.bestModel == nil {
		return nil
	}
	return g.bestModel.Unit()
}

// CostHistory returns the cost history of the best fit
func (g *GradientDescentAuto) CostHistory() []float64 {
	if g == nil || g.bestModel == nil {
		return nil
	}
	return g.bestModel.CostHistory()
}

// BestLearningRate returns the learning rate that produced the best fit score
func (g *GradientDescentAuto) BestLearningRate() float64 {
	if g == nil || g.bestModel == nil {
		return 0.0
	}
	return g.bestRate
}
