package nn

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/born-ml/namenet/internal/optim"
	"github.com/born-ml/namenet/internal/parallel"
)

// LayerBuilder configures one hidden layer.
type LayerBuilder struct {
	neurons int
	set     bool
}

// NewLayerBuilder returns an empty hidden-layer configuration.
func NewLayerBuilder() LayerBuilder {
	return LayerBuilder{}
}

// Neurons sets the neuron count of the hidden layer.
func (b LayerBuilder) Neurons(n int) LayerBuilder {
	b.neurons = n
	b.set = true
	return b
}

// NetworkBuilder accumulates a network configuration.
//
// Every method returns an updated copy, so a partially configured builder can
// be reused as a template. Nothing is validated until Build.
//
// Example:
//
//	net, err := nn.NewNetworkBuilder().
//	    LearningRate(0.1).
//	    InputSize(4).
//	    OutputSize(2).
//	    Hidden(nn.NewLayerBuilder().Neurons(3)).
//	    Seed(42).
//	    Build()
type NetworkBuilder struct {
	learningRate *float64
	inputSize    *int
	outputSize   *int
	hidden       []LayerBuilder
	init         Initializer
	rng          *rand.Rand
	clip         float64
	workers      int
}

// NewNetworkBuilder returns an empty network configuration.
func NewNetworkBuilder() NetworkBuilder {
	return NetworkBuilder{}
}

// LearningRate sets the gradient-descent step size. Required.
func (b NetworkBuilder) LearningRate(lr float64) NetworkBuilder {
	b.learningRate = &lr
	return b
}

// InputSize sets the input vector length. Required.
func (b NetworkBuilder) InputSize(n int) NetworkBuilder {
	b.inputSize = &n
	return b
}

// OutputSize sets the number of output classes. Required.
func (b NetworkBuilder) OutputSize(n int) NetworkBuilder {
	b.outputSize = &n
	return b
}

// Hidden appends a hidden layer. At least one is required.
func (b NetworkBuilder) Hidden(layer LayerBuilder) NetworkBuilder {
	b.hidden = append(slices.Clip(b.hidden), layer)
	return b
}

// Initializer overrides the default U[-0.5, 0.5) parameter initializer.
func (b NetworkBuilder) Initializer(init Initializer) NetworkBuilder {
	b.init = init
	return b
}

// Rand sets the randomness source used for initialization.
func (b NetworkBuilder) Rand(r *rand.Rand) NetworkBuilder {
	b.rng = r
	return b
}

// Seed makes initialization deterministic.
func (b NetworkBuilder) Seed(seed uint64) NetworkBuilder {
	return b.Rand(rand.New(rand.NewPCG(seed, seed)))
}

// GradientClip limits the global L2 norm of each update's gradient.
// Zero disables clipping.
func (b NetworkBuilder) GradientClip(maxNorm float64) NetworkBuilder {
	b.clip = maxNorm
	return b
}

// Workers bounds the goroutines used by TrainBatch. Zero uses every CPU.
func (b NetworkBuilder) Workers(n int) NetworkBuilder {
	b.workers = n
	return b
}

// Build validates the configuration and constructs the network.
//
// All errors wrap ErrConfig.
func (b NetworkBuilder) Build() (*Network, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	init := b.init
	if init == nil {
		init = DefaultInitializer()
	}
	r := b.rng
	if r == nil {
		//nolint:gosec // G115: weight initialization is not security-critical
		seed := uint64(time.Now().UnixNano())
		r = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	layers := make([]*Layer, 0, len(b.hidden)+1)
	inputs := *b.inputSize
	for _, h := range b.hidden {
		layers = append(layers, newLayer(inputs, h.neurons, false, init, r))
		inputs = h.neurons
	}
	layers = append(layers, newLayer(inputs, *b.outputSize, true, init, r))

	return &Network{
		inputSize: *b.inputSize,
		layers:    layers,
		opt:       optim.NewSGD(optim.SGDConfig{LR: *b.learningRate}),
		clip:      b.clip,
		par:       parallel.WithWorkers(b.workers),
	}, nil
}

func (b NetworkBuilder) validate() error {
	switch {
	case b.learningRate == nil:
		return fmt.Errorf("%w: learning rate was not set", ErrConfig)
	case b.inputSize == nil:
		return fmt.Errorf("%w: input size was not set", ErrConfig)
	case b.outputSize == nil:
		return fmt.Errorf("%w: output size was not set", ErrConfig)
	}

	lr := *b.learningRate
	if lr <= 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return fmt.Errorf("%w: learning rate must be a positive number, got %v", ErrConfig, lr)
	}
	if *b.inputSize <= 0 {
		return fmt.Errorf("%w: input size must be positive, got %d", ErrConfig, *b.inputSize)
	}
	if *b.outputSize <= 0 {
		return fmt.Errorf("%w: output size must be positive, got %d", ErrConfig, *b.outputSize)
	}
	if len(b.hidden) == 0 {
		return fmt.Errorf("%w: at least one hidden layer is required", ErrConfig)
	}
	for i, h := range b.hidden {
		if !h.set {
			return fmt.Errorf("%w: hidden layer %d has no neuron count", ErrConfig, i)
		}
		if h.neurons <= 0 {
			return fmt.Errorf("%w: hidden layer %d must have a positive neuron count, got %d", ErrConfig, i, h.neurons)
		}
	}
	if b.clip < 0 {
		return fmt.Errorf("%w: gradient clip must not be negative, got %v", ErrConfig, b.clip)
	}
	return nil
}
