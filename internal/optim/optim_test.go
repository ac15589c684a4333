package optim_test

import (
	"testing"

	"github.com/born-ml/namenet/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSGD_SimpleUpdate(t *testing.T) {
	x := []float64{2.0}
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	err := optimizer.Step([]optim.Param{{Name: "x", Value: x, Grad: []float64{1.0}}})
	require.NoError(t, err)

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	assert.InDelta(t, 1.9, x[0], 1e-12)
}

func TestSGD_MultipleParams(t *testing.T) {
	w := []float64{1, 2, 3, 4}
	b := []float64{0.5, -0.5}
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.5})

	err := optimizer.Step([]optim.Param{
		{Name: "w", Value: w, Grad: []float64{1, 1, -1, 0}},
		{Name: "b", Value: b, Grad: []float64{2, -2}},
	})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0.5, 1.5, 3.5, 4}, w, 1e-12)
	assert.InDeltaSlice(t, []float64{-0.5, 0.5}, b, 1e-12)
}

func TestSGD_MismatchLeavesParamsUntouched(t *testing.T) {
	w := []float64{1, 2}
	b := []float64{3}
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 1})

	err := optimizer.Step([]optim.Param{
		{Name: "w", Value: w, Grad: []float64{1, 1}},
		{Name: "b", Value: b, Grad: []float64{1, 1}},
	})
	require.ErrorIs(t, err, optim.ErrShapeMismatch)

	assert.Equal(t, []float64{1, 2}, w)
	assert.Equal(t, []float64{3}, b)
}

func TestSGD_DefaultAndSetLR(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{})
	assert.InDelta(t, 0.01, optimizer.GetLR(), 1e-12)

	optimizer.SetLR(0.2)
	assert.InDelta(t, 0.2, optimizer.GetLR(), 1e-12)
}
