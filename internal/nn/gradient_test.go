package nn

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
)

// paramViews returns the live parameter buffers in backprop order.
func paramViews(n *Network) [][]float64 {
	var views [][]float64
	for _, l := range n.layers {
		views = append(views, l.weights.RawMatrix().Data, l.biases.RawVector().Data)
	}
	return views
}

func flatten(parts [][]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func scatter(parts [][]float64, flat []float64) {
	off := 0
	for _, p := range parts {
		off += copy(p, flat[off:])
	}
}

func TestBackpropMatchesFiniteDifferences(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		net, err := NewNetworkBuilder().
			LearningRate(0.1).
			InputSize(5).
			OutputSize(3).
			Hidden(NewLayerBuilder().Neurons(4)).
			Hidden(NewLayerBuilder().Neurons(3)).
			Seed(seed).
			Build()
		require.NoError(t, err)

		r := rand.New(rand.NewPCG(seed, 99))
		input := make([]float64, 5)
		for i := range input {
			input[i] = r.Float64()*2 - 1
		}
		target := []float64{0, 0, 0}
		target[r.IntN(3)] = 1

		grads, _, err := net.Gradients(input, target)
		require.NoError(t, err)
		var analytic []float64
		for _, g := range grads {
			analytic = append(analytic, g.Weights...)
			analytic = append(analytic, g.Biases...)
		}

		probe := net.Clone()
		views := paramViews(probe)
		x := flatten(views)
		loss := func(p []float64) float64 {
			scatter(views, p)
			l, err := probe.Loss(input, target)
			if err != nil {
				panic(err)
			}
			return l
		}

		numeric := fd.Gradient(nil, loss, x, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		require.Len(t, analytic, len(numeric))
		assert.InDeltaSlice(t, numeric, analytic, 1e-4, "seed %d", seed)
	}
}

func TestZeroInputWithZeroBiasesSilencesHiddenLayers(t *testing.T) {
	net, err := NewNetworkBuilder().
		LearningRate(0.1).
		InputSize(6).
		OutputSize(3).
		Hidden(NewLayerBuilder().Neurons(5)).
		Hidden(NewLayerBuilder().Neurons(4)).
		Seed(11).
		Build()
	require.NoError(t, err)
	for _, l := range net.layers {
		l.biases.Zero()
	}

	results, err := net.Forward(make([]float64, 6))
	require.NoError(t, err)
	for _, res := range results[:len(results)-1] {
		for _, v := range res.PostActivation {
			assert.Zero(t, v)
		}
	}
	for _, p := range results[len(results)-1].PostActivation {
		assert.InDelta(t, 1.0/3, p, 1e-12)
	}
}

func TestClipByGlobalNorm(t *testing.T) {
	grads := []Gradient{
		{Weights: []float64{3, 0}, Biases: []float64{0}},
		{Weights: []float64{0}, Biases: []float64{4}},
	}
	clipByGlobalNorm(grads, 1)
	assert.InDeltaSlice(t, []float64{0.6, 0}, grads[0].Weights, 1e-12)
	assert.InDeltaSlice(t, []float64{0.8}, grads[1].Biases, 1e-12)

	small := []Gradient{{Weights: []float64{0.1}, Biases: []float64{0.1}}}
	clipByGlobalNorm(small, 1)
	assert.Equal(t, []float64{0.1}, small[0].Weights)
}
