package models

import (
	"errors"
)

var (
	ErrNoOptions               = errors.New("no initialized model options")
	ErrNoLinearUnit            = errors.New("no linear unit")
	ErrNoTrainingData          = errors.New("no training dataset")
	ErrPredictionLenMismatch   = errors.New("predictions do not have the same length as the training dataset")
	ErrUntrainedModel          = errors.New("model has not been fit")
	ErrNegativeEpochs          = errors.New("negative epochs")
	ErrNonPositiveLearningRate = errors.New("learning rate must be positive")
	ErrNegativeTolerance       = errors.New("negative tolerance")
	ErrNoLearningRates         = errors.New("no learning rates provided to fit with")
	ErrNoConvergedFit          = errors.New("no learning rate produced a finite fit")
)
