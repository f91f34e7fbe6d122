package chol

import (
	"fmt"

	wls "github.com/milosgajdos/go-wls"
	"gonum.org/v1/gonum/mat"
)

// Chol solves symmetric positive definite systems via Cholesky
// factorization. It is the default decomposition for WLS estimators.
type Chol struct {
	// dim is the dimension of the factorized system
	dim int
	// chol is the Cholesky factorization of the last factorized matrix
	chol mat.Cholesky
	// ok indicates whether chol holds a valid factorization
	ok bool
}

// New creates new Cholesky decomposition for systems of dimension dim and
// returns it. It returns error if dim is not a positive integer.
func New(dim int) (*Chol, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension: %d", dim)
	}

	return &Chol{dim: dim}, nil
}

// Dim returns the dimension of the factorized system.
func (c *Chol) Dim() int {
	return c.dim
}

// Factorize computes the Cholesky factorization of a, overwriting any
// previous factorization. It returns error if the dimension of a does not
// match the decomposition or if a is not positive definite.
func (c *Chol) Factorize(a mat.Symmetric) error {
	if a.SymmetricDim() != c.dim {
		return fmt.Errorf("invalid matrix dimension: %d != %d: %w", a.SymmetricDim(), c.dim, wls.ErrDimensionMismatch)
	}

	if ok := c.chol.Factorize(a); !ok {
		c.ok = false
		return fmt.Errorf("cholesky factorization failed: %w", wls.ErrNotPositiveDefinite)
	}
	c.ok = true

	return nil
}

// Solve solves A*x = b against the last factorization and returns x.
// It returns error if there is no valid factorization or if the length of
// b does not match the decomposition.
func (c *Chol) Solve(b mat.Vector) (mat.Vector, error) {
	if !c.ok {
		return nil, fmt.Errorf("no valid factorization: %w", wls.ErrNotPositiveDefinite)
	}

	if b.Len() != c.dim {
		return nil, fmt.Errorf("invalid vector length: %d != %d: %w", b.Len(), c.dim, wls.ErrDimensionMismatch)
	}

	x := mat.NewVecDense(c.dim, nil)
	if err := c.chol.SolveVecTo(x, b); err != nil {
		return nil, err
	}

	return x, nil
}

// InverseTo stores the inverse of the last factorized matrix in dst.
// It returns error if there is no valid factorization or if the dimension
// of dst does not match the decomposition.
func (c *Chol) InverseTo(dst *mat.SymDense) error {
	if !c.ok {
		return fmt.Errorf("no valid factorization: %w", wls.ErrNotPositiveDefinite)
	}

	if dst.SymmetricDim() != c.dim {
		return fmt.Errorf("invalid matrix dimension: %d != %d: %w", dst.SymmetricDim(), c.dim, wls.ErrDimensionMismatch)
	}

	return c.chol.InverseTo(dst)
}
