package optim_test

import (
	"testing"

	"github.com/born-ml/namenet/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSGD_PublicAPI(t *testing.T) {
	w := []float64{0.5, -0.25}
	var opt optim.Optimizer = optim.NewSGD(optim.SGDConfig{LR: 0.1})

	require.NoError(t, opt.Step([]optim.Param{{Name: "w", Value: w, Grad: []float64{0.1, 0.2}}}))
	assert.InDeltaSlice(t, []float64{0.49, -0.27}, w, 1e-12)

	err := opt.Step([]optim.Param{{Name: "w", Value: w, Grad: []float64{1}}})
	require.ErrorIs(t, err, optim.ErrShapeMismatch)
}
