package nn

import (
	"fmt"
	"strings"
	"sync"

	"github.com/born-ml/namenet/internal/optim"
	"github.com/born-ml/namenet/internal/parallel"
	"gonum.org/v1/gonum/mat"
)

// Example is one training pair: an input vector of length InputSize and a
// target vector of length OutputSize (usually one-hot).
type Example struct {
	Input  []float64
	Target []float64
}

// Network is an ordered stack of dense layers trained with gradient descent.
//
// The topology is fixed at build time; only weights and biases change.
// Reads (Eval, Forward, Loss, Predict, Gradients, Save) may run concurrently.
// Train and TrainBatch take exclusive access for the whole step.
type Network struct {
	mu        sync.RWMutex
	inputSize int
	layers    []*Layer // last one is the output layer
	opt       optim.Optimizer
	clip      float64 // global gradient-norm limit, 0 disables clipping
	par       parallel.Config
}

// InputSize returns the expected input vector length.
func (n *Network) InputSize() int {
	return n.inputSize
}

// OutputSize returns the number of classes.
func (n *Network) OutputSize() int {
	return n.layers[len(n.layers)-1].Neurons()
}

// LearningRate returns the gradient-descent step size.
func (n *Network) LearningRate() float64 {
	return n.opt.GetLR()
}

// NumLayers returns the number of layers including the output layer.
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// Layer returns the i-th layer. The returned layer must not be used while the
// network is training.
func (n *Network) Layer(i int) *Layer {
	return n.layers[i]
}

// NumParams returns the total number of weights and biases.
func (n *Network) NumParams() int {
	total := 0
	for _, l := range n.layers {
		total += l.Neurons()*l.Inputs() + l.Neurons()
	}
	return total
}

// String describes the topology, e.g. "Network(34 -> 10 relu -> 4 softmax, lr=0.05)".
func (n *Network) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Network(%d", n.inputSize)
	for _, l := range n.layers {
		fmt.Fprintf(&sb, " -> %d %s", l.Neurons(), l.activationName())
	}
	fmt.Fprintf(&sb, ", lr=%g)", n.LearningRate())
	return sb.String()
}

// Eval runs forward propagation and returns the output probabilities.
func (n *Network) Eval(input []float64) ([]float64, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	results := n.forward(input)
	return results[len(results)-1].PostActivation, nil
}

// Forward runs forward propagation and returns every layer's activations.
func (n *Network) Forward(input []float64) ([]LayerEvalResult, error) {
	if err := n.checkInput(input); err != nil {
		return nil, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.forward(input), nil
}

// Predict returns the most likely class together with all probabilities.
func (n *Network) Predict(input []float64) (int, []float64, error) {
	probs, err := n.Eval(input)
	if err != nil {
		return 0, nil, err
	}
	return Argmax(probs), probs, nil
}

// Loss returns the cross-entropy loss for one example without training.
func (n *Network) Loss(input, target []float64) (float64, error) {
	if err := n.checkExample(input, target); err != nil {
		return 0, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	results := n.forward(input)
	return CrossEntropy(results[len(results)-1].PostActivation, target), nil
}

// Clone returns an independent replica with the same parameters and settings.
func (n *Network) Clone() *Network {
	n.mu.RLock()
	defer n.mu.RUnlock()

	layers := make([]*Layer, len(n.layers))
	for i, l := range n.layers {
		layers[i] = l.clone()
	}

	return &Network{
		inputSize: n.inputSize,
		layers:    layers,
		opt:       optim.NewSGD(optim.SGDConfig{LR: n.LearningRate()}),
		clip:      n.clip,
		par:       n.par,
	}
}

// forward pushes input through every layer. Callers hold at least a read lock.
func (n *Network) forward(input []float64) []LayerEvalResult {
	results := make([]LayerEvalResult, len(n.layers))

	var x mat.Vector = mat.NewVecDense(len(input), input)
	for i, l := range n.layers {
		results[i] = l.forward(x)
		post := results[i].PostActivation
		x = mat.NewVecDense(len(post), post)
	}

	return results
}

func (n *Network) checkInput(input []float64) error {
	if len(input) != n.inputSize {
		return fmt.Errorf("%w: input has %d values, network expects %d", ErrDimension, len(input), n.inputSize)
	}
	return nil
}

func (n *Network) checkExample(input, target []float64) error {
	if err := n.checkInput(input); err != nil {
		return err
	}
	if len(target) != n.OutputSize() {
		return fmt.Errorf("%w: target has %d values, network outputs %d", ErrDimension, len(target), n.OutputSize())
	}
	return nil
}
