package models

import (
	"math"

	"github.com/aouyang1/go-linreg/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type OLSOptions struct {
	FitIntercept bool
}

func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// OLSRegression computes the exact univariate least squares solution using QR
// factorization. Serves as the closed-form reference for the iterative gradient
// descent fit.
type OLSRegression struct {
	opt *OLSOptions

	weight    float64
	intercept float64
	trained   bool
}

func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	if opt == nil {
		opt = NewDefaultOLSOptions()
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data
func (o *OLSRegression) Fit(d *dataset.Dataset) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if d == nil || d.Len() == 0 {
		return ErrNoTrainingData
	}

	m := d.Len()

	xData := make([]float64, m)
	yData := make([]float64, m)
	copy(xData, d.X)
	copy(yData, d.Y)

	x := mat.NewDense(m, 1, xData)
	y := mat.NewDense(m, 1, yData)

	var design mat.Matrix = x
	n := 1
	if o.opt.FitIntercept {
		ones := make([]float64, m)
		floats.AddConst(1.0, ones)
		onesMx := mat.NewDense(1, m, ones)

		var xWithOnes mat.Dense
		xWithOnes.Stack(onesMx, x.T())
		design = xWithOnes.T()
		_, n = design.Dims()
	}

	qr := new(mat.QR)
	qr.Factorize(design)

	q := new(mat.Dense)
	r := new(mat.Dense)

	qr.QTo(q)
	qr.RTo(r)
	yq := new(mat.Dense)
	yq.Mul(y.T(), q)

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}

	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.weight = c[1]
	} else {
		o.weight = c[0]
	}
	o.trained = true

	return nil
}

// Predict using the least squares solution
func (o *OLSRegression) Predict(x []float64) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if !o.trained {
		return nil, ErrUntrainedModel
	}

	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = v*o.weight + o.intercept
	}
	return res, nil
}

// Score computes the coefficient of determination of the prediction
func (o *OLSRegression) Score(d *dataset.Dataset) (float64, error) {
	if d == nil || d.Len() == 0 {
		return 0.0, ErrNoTrainingData
	}

	predicted, err := o.Predict(d.X)
	if err != nil {
		return 0.0, err
	}

	score := stat.RSquaredFrom(predicted, d.Y, nil)
	if math.IsNaN(score) {
		score = 1.0
	}
	return score, nil
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to
// 0.0 if not set.
func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

// Weight returns the computed slope coefficient
func (o *OLSRegression) Weight() float64 {
	return o.weight
}
