package linreg

import (
	"github.com/aouyang1/go-linreg/linearunit"
	"github.com/aouyang1/go-linreg/models"
)

// OutlierOptions configures the detection of training outliers from the fit residual
type OutlierOptions struct {
	NumPasses       int     `json:"num_passes"`
	UpperPercentile float64 `json:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor"`
}

func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		NumPasses:       3,
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// Options configures the regressor fit
type Options struct {
	// LearningRates is the set of candidate learning rates swept during the fit keeping
	// the one producing the best score.
	LearningRates []float64 `json:"learning_rates"`

	// Epochs is the number of full forward/backward/update passes over the training set.
	Epochs int `json:"epochs"`

	// Tolerance is the smallest relative parameter update per epoch before stopping
	// early. 0 disables early stopping.
	Tolerance float64 `json:"tolerance"`

	// Parallelization sets how many candidate fits to run in parallel.
	Parallelization int `json:"parallelization"`

	// Seed drives the initial weight and bias drawn uniformly from [0, 1).
	Seed uint64 `json:"seed"`

	OutlierOptions *OutlierOptions `json:"outlier_options"`
}

func NewDefaultOptions() *Options {
	return &Options{
		LearningRates:   []float64{models.DefaultLearningRate},
		Epochs:          models.DefaultEpochs,
		Tolerance:       models.DefaultTolerance,
		Parallelization: 1,
	}
}

func (o *Options) newGradientDescentAutoOptions(init *linearunit.LinearUnit) *models.GradientDescentAutoOptions {
	return &models.GradientDescentAutoOptions{
		LearningRates:   o.LearningRates,
		Epochs:          o.Epochs,
		Tolerance:       o.Tolerance,
		Init:            init,
		Parallelization: o.Parallelization,
	}
}
