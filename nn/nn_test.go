package nn_test

import (
	"bytes"
	"testing"

	"github.com/born-ml/namenet/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI_TrainAndPersist(t *testing.T) {
	net, err := nn.NewNetworkBuilder().
		LearningRate(0.1).
		InputSize(4).
		OutputSize(2).
		Hidden(nn.NewLayerBuilder().Neurons(3)).
		Initializer(nn.He()).
		Seed(42).
		Build()
	require.NoError(t, err)

	input, target := []float64{1, 0, 0, 0}, []float64{1, 0}
	for range 1000 {
		_, err := net.Train(input, target)
		require.NoError(t, err)
	}

	probs, err := net.Eval(input)
	require.NoError(t, err)
	assert.Greater(t, probs[0], 0.9)
	assert.Equal(t, 0, nn.Argmax(probs))

	var buf bytes.Buffer
	require.NoError(t, net.Save(&buf, nn.Meta{}))
	loaded, _, err := nn.Load(&buf)
	require.NoError(t, err)

	again, err := loaded.Eval(input)
	require.NoError(t, err)
	assert.Equal(t, probs, again)
}

func TestPublicAPI_Errors(t *testing.T) {
	_, err := nn.NewNetworkBuilder().Build()
	require.ErrorIs(t, err, nn.ErrConfig)

	net, err := nn.NewNetworkBuilder().
		LearningRate(0.1).
		InputSize(2).
		OutputSize(2).
		Hidden(nn.NewLayerBuilder().Neurons(2)).
		Build()
	require.NoError(t, err)

	_, err = net.Eval([]float64{1})
	require.ErrorIs(t, err, nn.ErrDimension)
}
