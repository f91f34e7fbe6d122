package svd

import (
	"fmt"

	wls "github.com/milosgajdos/go-wls"
	"github.com/milosgajdos/go-wls/matrix"
	"gonum.org/v1/gonum/mat"
)

// defaultRcond is the smallest acceptable ratio of the smallest to the
// largest singular value of the factorized matrix.
const defaultRcond = 1e-12

// SVD solves symmetric positive definite systems via singular value
// decomposition. It is slower than Cholesky but numerically more robust
// when the information matrix is poorly conditioned.
type SVD struct {
	// dim is the dimension of the factorized system
	dim int
	// svd is the factorization of the last factorized matrix
	svd mat.SVD
	// rcond is the reciprocal condition number cutoff
	rcond float64
	// ok indicates whether svd holds a valid factorization
	ok bool
}

// New creates new SVD decomposition for systems of dimension dim and
// returns it. It returns error if dim is not a positive integer.
func New(dim int) (*SVD, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension: %d", dim)
	}

	return &SVD{dim: dim, rcond: defaultRcond}, nil
}

// Dim returns the dimension of the factorized system.
func (s *SVD) Dim() int {
	return s.dim
}

// SetRcond sets the reciprocal condition number below which the
// factorized matrix is rejected as not positive definite.
func (s *SVD) SetRcond(rcond float64) {
	s.rcond = rcond
}

// Factorize computes the full singular value decomposition of a,
// overwriting any previous factorization. It returns error if the
// dimension of a does not match the decomposition or if a is singular to
// working precision and hence not positive definite.
func (s *SVD) Factorize(a mat.Symmetric) error {
	if a.SymmetricDim() != s.dim {
		return fmt.Errorf("invalid matrix dimension: %d != %d: %w", a.SymmetricDim(), s.dim, wls.ErrDimensionMismatch)
	}

	if ok := s.svd.Factorize(a, mat.SVDFull); !ok {
		s.ok = false
		return fmt.Errorf("svd factorization failed: %w", wls.ErrNotPositiveDefinite)
	}

	// singular values are sorted in descending order
	vals := s.svd.Values(nil)
	if vals[0] <= 0 || vals[s.dim-1] <= s.rcond*vals[0] {
		s.ok = false
		return fmt.Errorf("singular matrix: %w", wls.ErrNotPositiveDefinite)
	}
	s.ok = true

	return nil
}

// Solve solves A*x = b against the last factorization and returns x.
// It returns error if there is no valid factorization or if the length of
// b does not match the decomposition.
func (s *SVD) Solve(b mat.Vector) (mat.Vector, error) {
	if !s.ok {
		return nil, fmt.Errorf("no valid factorization: %w", wls.ErrNotPositiveDefinite)
	}

	if b.Len() != s.dim {
		return nil, fmt.Errorf("invalid vector length: %d != %d: %w", b.Len(), s.dim, wls.ErrDimensionMismatch)
	}

	x := mat.NewVecDense(s.dim, nil)
	// SolveVecTo returns the reciprocal condition number; the rcond gate in
	// Factorize has already rejected singular matrices
	s.svd.SolveVecTo(x, b, s.dim)

	return x, nil
}

// InverseTo stores the inverse of the last factorized matrix in dst,
// reconstructed as V * diag(1/σ) * U'.
// It returns error if there is no valid factorization or if the dimension
// of dst does not match the decomposition.
func (s *SVD) InverseTo(dst *mat.SymDense) error {
	if !s.ok {
		return fmt.Errorf("no valid factorization: %w", wls.ErrNotPositiveDefinite)
	}

	if dst.SymmetricDim() != s.dim {
		return fmt.Errorf("invalid matrix dimension: %d != %d: %w", dst.SymmetricDim(), s.dim, wls.ErrDimensionMismatch)
	}

	u := new(mat.Dense)
	s.svd.UTo(u)
	v := new(mat.Dense)
	s.svd.VTo(v)

	vals := s.svd.Values(nil)
	for i := range vals {
		vals[i] = 1 / vals[i]
	}

	vs := new(mat.Dense)
	vs.Mul(v, mat.NewDiagDense(s.dim, vals))
	inv := new(mat.Dense)
	inv.Mul(vs, u.T())

	dst.Zero()

	return matrix.SymAddDense(dst, inv)
}
