// Package linearunit holds the two-parameter linear unit trained by gradient descent.
package linearunit

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	ErrNonFiniteWeight = errors.New("weight is not a finite number")
	ErrNonFiniteBias   = errors.New("bias is not a finite number")
)

// LinearUnit stores a single scalar weight and bias predicting one scalar output from
// one scalar input. The unit is mutated in place once per epoch while training.
type LinearUnit struct {
	W float64 `json:"weight"`
	B float64 `json:"bias"`
}

// New returns a linear unit initialized with the given weight and bias. Both must be
// finite numbers.
func New(w, b float64) (*LinearUnit, error) {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return nil, ErrNonFiniteWeight
	}
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return nil, ErrNonFiniteBias
	}
	return &LinearUnit{W: w, B: b}, nil
}

// NewRand returns a linear unit with weight and bias drawn uniformly from [0, 1) using
// the provided random source. The source is an explicit parameter so training runs stay
// reproducible.
func NewRand(rnd *rand.Rand) *LinearUnit {
	return &LinearUnit{
		W: rnd.Float64(),
		B: rnd.Float64(),
	}
}

// Predict evaluates the unit at the given input as x*w + b. Pure function of the
// current parameters. Non-finite inputs propagate IEEE semantics and are not caught.
func (u *LinearUnit) Predict(x float64) float64 {
	return x*u.W + u.B
}

func (u *LinearUnit) Copy() *LinearUnit {
	c := *u
	return &c
}

// String returns the unit represented as y ~ b + w*x
func (u *LinearUnit) String() string {
	return fmt.Sprintf("y ~ %.2f + %.2f*x", u.B, u.W)
}
