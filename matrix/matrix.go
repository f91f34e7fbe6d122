package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// symTol is the tolerance used when verifying matrix symmetry.
const symTol = 1e-12

// AsSymDense converts m to SymDense and returns it.
// It returns error if m is not square or not symmetric within tolerance.
func AsSymDense(m mat.Matrix) (*mat.SymDense, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("not a square matrix: [%d x %d]", r, c)
	}

	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			if !scalar.EqualWithinAbsOrRel(m.At(i, j), m.At(j, i), symTol, symTol) {
				return nil, fmt.Errorf("not a symmetric matrix: m[%d,%d] != m[%d,%d]", i, j, j, i)
			}
		}
	}

	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			s.SetSym(i, j, m.At(i, j))
		}
	}

	return s, nil
}

// SymAddDense adds the upper triangle of src elementwise to dst.
// src is assumed symmetric up to roundoff; its lower triangle is ignored.
// It returns error if the dimensions of src and dst disagree.
func SymAddDense(dst *mat.SymDense, src mat.Matrix) error {
	n := dst.SymmetricDim()
	r, c := src.Dims()
	if r != n || c != n {
		return fmt.Errorf("invalid matrix dimensions: [%d x %d] != [%d x %d]", r, c, n, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dst.SetSym(i, j, dst.At(i, j)+src.At(i, j))
		}
	}

	return nil
}
