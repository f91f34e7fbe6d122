package sim

import (
	"fmt"

	wls "github.com/milosgajdos/go-wls"
	"github.com/milosgajdos/go-wls/noise"
	"github.com/milosgajdos/go-wls/rnd"
	"github.com/milosgajdos/matrix"
	"gonum.org/v1/gonum/mat"
)

// Linear is a static linear measurement model: every measurement is the
// inner product of its Jacobian with the truth parameters plus a sample of
// scalar measurement noise.
type Linear struct {
	// x is the truth parameter vector
	x *mat.VecDense
	// n is scalar measurement noise
	n wls.Noise
}

// NewLinear creates new Linear model with truth parameters params and
// measurement noise n and returns it. A nil noise makes the model
// noiseless. It returns error if params is empty or if the noise is not
// scalar.
func NewLinear(params mat.Vector, n wls.Noise) (*Linear, error) {
	if params == nil || params.Len() == 0 {
		return nil, fmt.Errorf("invalid parameter vector: %v", params)
	}

	if n == nil {
		n, _ = noise.NewNone()
	}

	if c := n.Cov(); c.SymmetricDim() > 1 {
		return nil, fmt.Errorf("invalid measurement noise dimension: %d", c.SymmetricDim())
	}

	x := &mat.VecDense{}
	x.CloneFromVec(params)

	return &Linear{
		x: x,
		n: n,
	}, nil
}

// Dim returns the number of model parameters.
func (l *Linear) Dim() int {
	return l.x.Len()
}

// Params returns a copy of the truth parameter vector.
func (l *Linear) Params() mat.Vector {
	x := mat.NewVecDense(l.x.Len(), nil)
	x.CopyVec(l.x)

	return x
}

// Noise returns the measurement noise of the model.
func (l *Linear) Noise() wls.Noise {
	return l.n
}

// Measure generates a single scalar measurement with Jacobian j.
// It returns error if the length of j does not match the model dimension.
func (l *Linear) Measure(j mat.Vector) (float64, error) {
	if j.Len() != l.x.Len() {
		return 0, fmt.Errorf("invalid jacobian length: %d != %d", j.Len(), l.x.Len())
	}

	m := mat.Dot(j, l.x)
	if s := l.n.Sample(); s.Len() > 0 {
		m += s.AtVec(0)
	}

	return m, nil
}

// MeasureBatch generates one measurement per column of the Jacobian
// matrix j and returns them as a vector. Noise samples are drawn
// independently per measurement.
// It returns error if the row count of j does not match the model
// dimension.
func (l *Linear) MeasureBatch(j mat.Matrix) (*mat.VecDense, error) {
	r, c := j.Dims()
	if r != l.x.Len() {
		return nil, fmt.Errorf("invalid jacobian dimensions: [%d x %d]", r, c)
	}

	m := mat.NewVecDense(c, nil)
	m.MulVec(j.T(), l.x)

	for i := 0; i < c; i++ {
		if s := l.n.Sample(); s.Len() > 0 {
			m.SetVec(i, m.AtVec(i)+s.AtVec(0))
		}
	}

	return m, nil
}

// MeasureBatchWithCov generates one measurement per column of the
// Jacobian matrix j with jointly correlated noise drawn from a zero-mean
// Gaussian with covariance cov. The model's own scalar noise is not used.
// It returns error if the row count of j does not match the model
// dimension, if cov is sized differently from the column count of j or if
// the noise fails to be sampled.
func (l *Linear) MeasureBatchWithCov(j mat.Matrix, cov mat.Symmetric) (*mat.VecDense, error) {
	r, c := j.Dims()
	if r != l.x.Len() {
		return nil, fmt.Errorf("invalid jacobian dimensions: [%d x %d]", r, c)
	}

	if cov.SymmetricDim() != c {
		return nil, fmt.Errorf("invalid noise covariance dimension: %d != %d", cov.SymmetricDim(), c)
	}

	e, err := rnd.WithCovN(cov, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to sample measurement noise: %v", err)
	}

	m := mat.NewVecDense(c, nil)
	m.MulVec(j.T(), l.x)
	m.AddVec(m, e.ColView(0))

	return m, nil
}

// UniformInvCov returns the n×n inverse covariance matrix of n
// independent measurements which all have weight w.
// It returns error if the matrix fails to be created.
func UniformInvCov(n int, w float64) (*mat.Dense, error) {
	return matrix.NewDenseValIdentity(n, w)
}
