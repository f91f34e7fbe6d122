package wls

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch is returned when the dimensions of a supplied
	// vector, matrix or estimator disagree with the estimator dimension.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNotPositiveDefinite is returned when the information matrix can not
	// be factorized because it is not positive definite.
	ErrNotPositiveDefinite = errors.New("matrix not positive definite")
)

// Decomposition factorizes a symmetric positive definite matrix and
// solves linear systems against the stored factorization.
type Decomposition interface {
	// Factorize factorizes matrix a
	Factorize(a mat.Symmetric) error
	// Solve solves the system A*x = b against the last factorization
	Solve(b mat.Vector) (mat.Vector, error)
	// Dim returns the dimension of the factorized system
	Dim() int
}

// Inverser is a decomposition which can invert the factorized matrix.
// The inverse of an information matrix is the covariance of the estimate.
type Inverser interface {
	// InverseTo stores the inverse of the factorized matrix in dst
	InverseTo(dst *mat.SymDense) error
}

// Estimate is a Gaussian parameter estimate
type Estimate interface {
	// Val returns estimate value
	Val() mat.Vector
	// Cov returns estimate covariance
	Cov() mat.Symmetric
}

// Noise is measurement noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
	// Reset resets the noise
	Reset() error
}
