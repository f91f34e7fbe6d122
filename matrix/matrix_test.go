package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestAsSymDense(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(2, 2, []float64{4.0, 1.0, 1.0, 3.0})
	s, err := AsSymDense(m)
	assert.NotNil(s)
	assert.NoError(err)
	assert.True(mat.EqualApprox(m, s, 1e-12))

	// not square
	s, err = AsSymDense(mat.NewDense(2, 3, nil))
	assert.Nil(s)
	assert.Error(err)

	// not symmetric
	s, err = AsSymDense(mat.NewDense(2, 2, []float64{4.0, 1.0, 2.0, 3.0}))
	assert.Nil(s)
	assert.Error(err)
}

func TestSymAddDense(t *testing.T) {
	assert := assert.New(t)

	dst := mat.NewSymDense(2, []float64{1.0, 0.0, 0.0, 1.0})
	src := mat.NewDense(2, 2, []float64{4.0, 1.0, 1.0, 3.0})

	err := SymAddDense(dst, src)
	assert.NoError(err)

	want := mat.NewSymDense(2, []float64{5.0, 1.0, 1.0, 4.0})
	assert.True(mat.EqualApprox(want, dst, 1e-12))

	// the lower triangle of src is ignored
	skew := mat.NewDense(2, 2, []float64{0.0, 2.0, -100.0, 0.0})
	err = SymAddDense(dst, skew)
	assert.NoError(err)
	assert.Equal(3.0, dst.At(0, 1))
	assert.Equal(3.0, dst.At(1, 0))

	// mismatched dimensions
	err = SymAddDense(dst, mat.NewDense(3, 3, nil))
	assert.Error(err)
}
