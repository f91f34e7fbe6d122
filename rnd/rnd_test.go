package rnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestWithCovN(t *testing.T) {
	assert := assert.New(t)

	cov := mat.NewSymDense(2, []float64{1, 0.5, 0.5, 2})

	samples, err := WithCovN(cov, 10)
	assert.NotNil(samples)
	assert.NoError(err)

	r, c := samples.Dims()
	assert.Equal(2, r)
	assert.Equal(10, c)

	// invalid sample count
	samples, err = WithCovN(cov, 0)
	assert.Nil(samples)
	assert.Error(err)

	// zero covariance yields zero samples
	samples, err = WithCovN(mat.NewSymDense(2, nil), 5)
	assert.NoError(err)
	assert.True(mat.Equal(mat.NewDense(2, 5, nil), samples))
}
