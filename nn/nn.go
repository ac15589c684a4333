// Copyright 2025 Namenet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"

	"github.com/born-ml/namenet/internal/nn"
)

// Network is a feedforward classifier with ReLU hidden layers and a softmax output.
type Network = nn.Network

// Layer is one dense layer of a Network.
type Layer = nn.Layer

// LayerEvalResult holds one layer's pre- and post-activation values.
type LayerEvalResult = nn.LayerEvalResult

// Example is one input/target training pair.
type Example = nn.Example

// Gradient is the loss gradient for one layer's parameters.
type Gradient = nn.Gradient

// Metrics summarizes loss and accuracy over a set of examples.
type Metrics = nn.Metrics

// Builders

// NetworkBuilder accumulates a network configuration.
type NetworkBuilder = nn.NetworkBuilder

// LayerBuilder configures one hidden layer.
type LayerBuilder = nn.LayerBuilder

// NewNetworkBuilder returns an empty network configuration.
//
// Example:
//
//	net, err := nn.NewNetworkBuilder().
//	    LearningRate(0.05).
//	    InputSize(34).
//	    OutputSize(4).
//	    Hidden(nn.NewLayerBuilder().Neurons(10)).
//	    Build()
func NewNetworkBuilder() NetworkBuilder {
	return nn.NewNetworkBuilder()
}

// NewLayerBuilder returns an empty hidden-layer configuration.
func NewLayerBuilder() LayerBuilder {
	return nn.NewLayerBuilder()
}

// Initialization

// Initializer fills a layer's parameter buffer.
type Initializer = nn.Initializer

// InitializerFunc adapts a function to Initializer.
type InitializerFunc = nn.InitializerFunc

// Uniform draws parameters from U[lo, hi).
func Uniform(lo, hi float64) Initializer {
	return nn.Uniform(lo, hi)
}

// DefaultInitializer draws parameters from U[-0.5, 0.5).
func DefaultInitializer() Initializer {
	return nn.DefaultInitializer()
}

// Xavier returns Glorot uniform initialization.
func Xavier() Initializer {
	return nn.Xavier()
}

// He returns He normal initialization.
func He() Initializer {
	return nn.He()
}

// Constant sets every parameter to v.
func Constant(v float64) Initializer {
	return nn.Constant(v)
}

// Loss and evaluation

// CrossEntropy computes -Σ target_i * log(probs_i).
func CrossEntropy(probs, target []float64) float64 {
	return nn.CrossEntropy(probs, target)
}

// Argmax returns the index of the largest value.
func Argmax(v []float64) int {
	return nn.Argmax(v)
}

// Evaluate computes mean loss and accuracy without training.
func Evaluate(n *Network, examples []Example) (Metrics, error) {
	return nn.Evaluate(n, examples)
}

// Accuracy returns the fraction of correctly classified examples.
func Accuracy(n *Network, examples []Example) (float64, error) {
	return nn.Accuracy(n, examples)
}

// Persistence

// Meta is the non-parameter information stored with a saved network.
type Meta = nn.Meta

// Checkpoint records the training position of a saved network.
type Checkpoint = nn.Checkpoint

// Load reads a network written by Network.Save.
func Load(r io.Reader) (*Network, Meta, error) {
	return nn.Load(r)
}

// LoadFile reads a network from a .nnet file.
func LoadFile(path string) (*Network, Meta, error) {
	return nn.LoadFile(path)
}

// Errors

var (
	// ErrConfig is returned by Build for incomplete or invalid configurations.
	ErrConfig = nn.ErrConfig
	// ErrDimension is returned when a vector has the wrong length.
	ErrDimension = nn.ErrDimension
	// ErrNumeric is returned when a training step produces non-finite gradients.
	ErrNumeric = nn.ErrNumeric
	// ErrInvalidModel is returned when a saved network is inconsistent.
	ErrInvalidModel = nn.ErrInvalidModel
)
