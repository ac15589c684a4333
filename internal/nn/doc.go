// Package nn implements the namenet network engine.
//
// This package provides:
//   - Layer: one dense transformation (weights [neurons, inputs], biases [neurons])
//   - Network: an ordered stack of layers with forward propagation and training
//   - NetworkBuilder / LayerBuilder: validated, fail-fast construction
//   - Initializers: Uniform, Xavier, He, Constant
//   - Persistence: Save/Load of weights in the .nnet format
//
// Hidden layers use ReLU. The output layer is always a numerically stable
// softmax paired with cross-entropy loss, so the output error signal is
// simply probabilities minus target.
//
// Example:
//
//	net, err := nn.NewNetworkBuilder().
//	    LearningRate(0.05).
//	    InputSize(34).
//	    OutputSize(4).
//	    Hidden(nn.NewLayerBuilder().Neurons(10)).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loss, err := net.Train(input, target)
package nn
