package nn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Layer is one dense transformation of the network.
//
// Computes: pre = W · x + b, post = activation(pre)
// where:
//   - W is the weight matrix with shape [neurons, inputs]
//   - b is the bias vector with shape [neurons]
//   - activation is ReLU for hidden layers and softmax for the output layer
//
// Layer dimensions are derived from the stored matrices, so they can never
// disagree with the parameters themselves.
type Layer struct {
	weights *mat.Dense    // [neurons, inputs]
	biases  *mat.VecDense // [neurons]
	output  bool
}

// LayerEvalResult is one layer's contribution to a forward pass.
type LayerEvalResult struct {
	PreActivation  []float64 // W · x + b
	PostActivation []float64 // activation(PreActivation)
}

// newLayer creates a layer and draws its weights and biases from init.
func newLayer(inputs, neurons int, output bool, init Initializer, r *rand.Rand) *Layer {
	w := make([]float64, neurons*inputs)
	b := make([]float64, neurons)
	init.Init(w, inputs, neurons, r)
	init.Init(b, inputs, neurons, r)

	return &Layer{
		weights: mat.NewDense(neurons, inputs, w),
		biases:  mat.NewVecDense(neurons, b),
		output:  output,
	}
}

// Neurons returns the number of neurons (outputs) of the layer.
func (l *Layer) Neurons() int {
	return l.biases.Len()
}

// Inputs returns the number of inputs each neuron receives.
func (l *Layer) Inputs() int {
	_, c := l.weights.Dims()
	return c
}

// IsOutput reports whether this is the softmax output layer.
func (l *Layer) IsOutput() bool {
	return l.output
}

// Weights returns a row-major copy of the weight matrix.
func (l *Layer) Weights() []float64 {
	return append([]float64(nil), l.weights.RawMatrix().Data...)
}

// Biases returns a copy of the bias vector.
func (l *Layer) Biases() []float64 {
	return append([]float64(nil), l.biases.RawVector().Data...)
}

// forward computes this layer's pre- and post-activation for input x.
func (l *Layer) forward(x mat.Vector) LayerEvalResult {
	pre := mat.NewVecDense(l.Neurons(), nil)
	pre.MulVec(l.weights, x)
	pre.AddVec(pre, l.biases)

	preData := pre.RawVector().Data
	post := make([]float64, len(preData))
	if l.output {
		softmax(post, preData)
	} else {
		relu(post, preData)
	}

	return LayerEvalResult{PreActivation: preData, PostActivation: post}
}

// clone returns a deep copy of the layer.
func (l *Layer) clone() *Layer {
	return &Layer{
		weights: mat.DenseCopyOf(l.weights),
		biases:  mat.VecDenseCopyOf(l.biases),
		output:  l.output,
	}
}

// activationName is used when describing a network.
func (l *Layer) activationName() string {
	if l.output {
		return "softmax"
	}
	return "relu"
}
