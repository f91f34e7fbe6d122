package wls

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/milosgajdos/go-wls/estimate"
	"github.com/milosgajdos/go-wls/matrix"
)

// WLS is an incremental weighted least squares estimator.
// It accumulates linear measurements and priors into information form
// (information matrix and information vector) so the state stays O(d^2)
// no matter how many measurements have been added. Compute solves the
// accumulated normal equations for the maximum likelihood estimate.
//
// WLS must not be copied after first use; estimators are passed by pointer.
// A single instance must not be mutated concurrently: for parallel
// accumulation give each worker its own estimator and Merge them.
type WLS struct {
	noCopy noCopy
	// dim is the number of estimated parameters
	dim int
	// cInv is the information (inverse covariance) matrix
	cInv *mat.SymDense
	// vec is the information vector
	vec *mat.VecDense
	// mu is the parameter estimate computed by Compute
	mu *mat.VecDense
	// dec factorizes the information matrix
	dec Decomposition
}

// New creates a new WLS estimator with dim parameters which solves its
// normal equations with decomposition dec and returns it.
// It returns error if dim is not a positive integer or if dec is either
// nil or sized differently from dim.
func New(dim int, dec Decomposition) (*WLS, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension: %d", dim)
	}

	if dec == nil {
		return nil, fmt.Errorf("invalid decomposition: %v", dec)
	}

	if dec.Dim() != dim {
		return nil, fmt.Errorf("invalid decomposition dimension: %d != %d: %w", dec.Dim(), dim, ErrDimensionMismatch)
	}

	return &WLS{
		dim:  dim,
		cInv: mat.NewSymDense(dim, nil),
		vec:  mat.NewVecDense(dim, nil),
		mu:   mat.NewVecDense(dim, nil),
		dec:  dec,
	}, nil
}

// Dim returns the number of estimated parameters.
func (w *WLS) Dim() int {
	return w.dim
}

// Clear resets the information matrix and the information vector to zero.
// The dimension and the decomposition are kept.
func (w *WLS) Clear() {
	w.cInv.Zero()
	w.vec.Zero()
}

// AddPrior adds val to every diagonal element of the information matrix.
// It equates to an independent prior saying every parameter is zero
// with variance 1/val.
func (w *WLS) AddPrior(val float64) {
	for i := 0; i < w.dim; i++ {
		w.cInv.SetSym(i, i, w.cInv.At(i, i)+val)
	}
}

// AddPriorDiag adds v[i] to the i-th diagonal element of the information
// matrix: a prior saying parameter i is zero with variance 1/v[i].
// It returns error without mutating any state if the length of v does not
// match the estimator dimension.
func (w *WLS) AddPriorDiag(v mat.Vector) error {
	if v.Len() != w.dim {
		return fmt.Errorf("invalid prior vector length: %d != %d: %w", v.Len(), w.dim, ErrDimensionMismatch)
	}

	for i := 0; i < w.dim; i++ {
		w.cInv.SetSym(i, i, w.cInv.At(i, i)+v.AtVec(i))
	}

	return nil
}

// AddPriorSym adds the full matrix prior m elementwise to the information
// matrix. The caller is responsible for m being positive semi-definite.
// It returns error without mutating any state if m is sized differently
// from the estimator.
func (w *WLS) AddPriorSym(m mat.Symmetric) error {
	if m.SymmetricDim() != w.dim {
		return fmt.Errorf("invalid prior matrix dimension: %d != %d: %w", m.SymmetricDim(), w.dim, ErrDimensionMismatch)
	}

	w.cInv.AddSym(w.cInv, m)

	return nil
}

// AddMeasurement adds a single scalar measurement m with Jacobian j and
// weight (inverse variance) weight. It updates the information matrix
// with weight*(j ⊗ j) and the information vector with weight*m*j.
// It returns error without mutating any state if the length of j does not
// match the estimator dimension.
func (w *WLS) AddMeasurement(m float64, j mat.Vector, weight float64) error {
	if j.Len() != w.dim {
		return fmt.Errorf("invalid jacobian length: %d != %d: %w", j.Len(), w.dim, ErrDimensionMismatch)
	}

	w.cInv.SymRankOne(w.cInv, weight, j)
	w.vec.AddScaledVec(w.vec, weight*m, j)

	return nil
}

// AddMeasurements adds n jointly correlated scalar measurements m at once.
// j is the d×n Jacobian matrix whose i-th column is the Jacobian of the
// i-th measurement and invcov is the n×n inverse covariance of the
// measurements. The caller is responsible for invcov being symmetric.
// For a diagonal invcov this is equivalent to n AddMeasurement calls using
// the diagonal entries as weights, but is performed as dense products.
// It returns error without mutating any state if either dimension of j,
// invcov or m disagrees.
func (w *WLS) AddMeasurements(m mat.Vector, j mat.Matrix, invcov mat.Matrix) error {
	jr, jc := j.Dims()
	if jr != w.dim {
		return fmt.Errorf("invalid jacobian dimensions: [%d x %d]: %w", jr, jc, ErrDimensionMismatch)
	}

	cr, cc := invcov.Dims()
	if cr != jc || cc != jc {
		return fmt.Errorf("invalid inverse covariance dimensions: [%d x %d]: %w", cr, cc, ErrDimensionMismatch)
	}

	if m.Len() != jc {
		return fmt.Errorf("invalid measurement vector length: %d != %d: %w", m.Len(), jc, ErrDimensionMismatch)
	}

	// temp = J * invcov
	temp := new(mat.Dense)
	temp.Mul(j, invcov)

	// cInv += temp * J'
	upd := new(mat.Dense)
	upd.Mul(temp, j.T())
	if err := matrix.SymAddDense(w.cInv, upd); err != nil {
		return err
	}

	// vec += temp * m
	v := new(mat.VecDense)
	v.MulVec(temp, m)
	w.vec.AddVec(w.vec, v)

	return nil
}

// Combine merges the measurements accumulated in other into w by adding
// both information matrices and information vectors elementwise.
// Combine is commutative and associative: merging per-shard estimators in
// any order yields the same statistics as accumulating all measurements
// into a single estimator.
// It returns error without mutating any state if the estimator dimensions
// disagree.
func (w *WLS) Combine(other *WLS) error {
	if other == nil {
		return fmt.Errorf("invalid estimator: %v", other)
	}

	if other.dim != w.dim {
		return fmt.Errorf("invalid estimator dimension: %d != %d: %w", other.dim, w.dim, ErrDimensionMismatch)
	}

	w.cInv.AddSym(w.cInv, other.cInv)
	w.vec.AddVec(w.vec, other.vec)

	return nil
}

// Merge folds the statistics of all the remaining estimators into the
// first one and returns it. This is the reduction step of the supported
// parallel pattern: one estimator per worker, merged before Compute.
// It returns error if no estimator is given or if any dimensions disagree.
func Merge(ests ...*WLS) (*WLS, error) {
	if len(ests) == 0 {
		return nil, fmt.Errorf("no estimators to merge")
	}

	out := ests[0]
	for _, e := range ests[1:] {
		if err := out.Combine(e); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Compute solves the accumulated normal equations for the weighted least
// squares parameter estimate: it factorizes the current information matrix
// and back-substitutes the information vector through the factorization.
// The result can be read with Estimate. Compute must be called again after
// further accumulation; the estimate is not updated incrementally.
// It returns error if the factorization fails because the information
// matrix is not positive definite; the previously computed estimate is
// left untouched in that case.
func (w *WLS) Compute() error {
	if err := w.dec.Factorize(w.cInv); err != nil {
		return err
	}

	x, err := w.dec.Solve(w.vec)
	if err != nil {
		return err
	}
	w.mu.CopyVec(x)

	return nil
}

// GaussianEstimate returns the last computed estimate together with its
// covariance, the inverse of the factorized information matrix.
// It returns error if the decomposition can not invert its matrix or if
// there is no valid factorization.
func (w *WLS) GaussianEstimate() (Estimate, error) {
	inv, ok := w.dec.(Inverser)
	if !ok {
		return nil, fmt.Errorf("decomposition %T can not produce a covariance", w.dec)
	}

	cov := mat.NewSymDense(w.dim, nil)
	if err := inv.InverseTo(cov); err != nil {
		return nil, err
	}

	return estimate.NewBaseWithCov(w.mu, cov)
}

// InfoMatrix returns a copy of the information matrix.
func (w *WLS) InfoMatrix() mat.Symmetric {
	cInv := mat.NewSymDense(w.dim, nil)
	cInv.CopySym(w.cInv)

	return cInv
}

// InfoVector returns a copy of the information vector.
func (w *WLS) InfoVector() mat.Vector {
	vec := mat.NewVecDense(w.dim, nil)
	vec.CopyVec(w.vec)

	return vec
}

// Estimate returns a copy of the parameter estimate computed by the most
// recent successful Compute, or the zero vector if Compute has not been
// called yet.
func (w *WLS) Estimate() mat.Vector {
	mu := mat.NewVecDense(w.dim, nil)
	mu.CopyVec(w.mu)

	return mu
}

// RawInfoMatrix returns the information matrix itself, not a copy.
func (w *WLS) RawInfoMatrix() *mat.SymDense {
	return w.cInv
}

// RawInfoVector returns the information vector itself, not a copy.
func (w *WLS) RawInfoVector() *mat.VecDense {
	return w.vec
}

// Decomposition returns the decomposition used to solve the normal
// equations. Its factorization state reflects the last Compute call.
func (w *WLS) Decomposition() Decomposition {
	return w.dec
}

// noCopy makes go vet flag estimators copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
