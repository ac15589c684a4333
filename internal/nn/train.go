package nn

import (
	"fmt"
	"math"

	"github.com/born-ml/namenet/internal/optim"
	"github.com/born-ml/namenet/internal/parallel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Gradient holds the loss gradient for one layer's parameters.
type Gradient struct {
	Weights []float64 // row-major, shape [neurons, inputs]
	Biases  []float64 // shape [neurons]
}

// Train performs one gradient-descent step on a single example and returns
// the cross-entropy loss measured before the update.
//
// Lengths are validated before anything is touched, and every layer's
// gradient is computed from the old parameters before any of them change.
func (n *Network) Train(input, target []float64) (float64, error) {
	if err := n.checkExample(input, target); err != nil {
		return 0, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	grads, loss := n.backprop(input, target)
	if err := n.apply(grads); err != nil {
		return 0, err
	}
	return loss, nil
}

// TrainBatch performs one gradient-descent step on the mean gradient of a
// mini-batch and returns the mean loss.
//
// Per-example gradients are computed concurrently; they only read the
// parameters, which stay fixed until the merged update is applied.
func (n *Network) TrainBatch(batch []Example) (float64, error) {
	if len(batch) == 0 {
		return 0, fmt.Errorf("%w: empty batch", ErrDimension)
	}
	for i, ex := range batch {
		if err := n.checkExample(ex.Input, ex.Target); err != nil {
			return 0, fmt.Errorf("example %d: %w", i, err)
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	perExample := make([][]Gradient, len(batch))
	losses := make([]float64, len(batch))
	parallel.For(len(batch), func(i int) {
		perExample[i], losses[i] = n.backprop(batch[i].Input, batch[i].Target)
	}, n.par)

	merged := perExample[0]
	scale := 1 / float64(len(batch))
	for _, g := range merged {
		floats.Scale(scale, g.Weights)
		floats.Scale(scale, g.Biases)
	}
	for _, grads := range perExample[1:] {
		for li, g := range grads {
			floats.AddScaled(merged[li].Weights, scale, g.Weights)
			floats.AddScaled(merged[li].Biases, scale, g.Biases)
		}
	}

	if err := n.apply(merged); err != nil {
		return 0, err
	}
	return floats.Sum(losses) * scale, nil
}

// Gradients returns the per-layer loss gradients for one example without
// applying them, together with the loss.
func (n *Network) Gradients(input, target []float64) ([]Gradient, float64, error) {
	if err := n.checkExample(input, target); err != nil {
		return nil, 0, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	grads, loss := n.backprop(input, target)
	return grads, loss, nil
}

// backprop runs a forward pass and propagates the error signal back through
// every layer. Callers hold at least a read lock.
func (n *Network) backprop(input, target []float64) ([]Gradient, float64) {
	results := n.forward(input)
	last := len(n.layers) - 1
	loss := CrossEntropy(results[last].PostActivation, target)

	grads := make([]Gradient, len(n.layers))
	delta := make([]float64, len(target))
	outputDelta(delta, results[last].PostActivation, target)

	for i := last; i >= 0; i-- {
		in := input
		if i > 0 {
			in = results[i-1].PostActivation
		}

		deltaVec := mat.NewVecDense(len(delta), delta)
		var gw mat.Dense
		gw.Outer(1, deltaVec, mat.NewVecDense(len(in), in))
		grads[i] = Gradient{
			Weights: gw.RawMatrix().Data,
			Biases:  append([]float64(nil), delta...),
		}

		if i == 0 {
			break
		}

		// delta_prev = (W^T · delta) ⊙ relu'(pre_prev)
		var back mat.VecDense
		back.MulVec(n.layers[i].weights.T(), deltaVec)
		pre := results[i-1].PreActivation
		prev := make([]float64, len(pre))
		for j := range prev {
			prev[j] = back.AtVec(j) * reluPrime(pre[j])
		}
		delta = prev
	}

	return grads, loss
}

// apply clips, checks and applies gradients. Callers hold the write lock.
func (n *Network) apply(grads []Gradient) error {
	if n.clip > 0 {
		clipByGlobalNorm(grads, n.clip)
	}

	params := make([]optim.Param, 0, 2*len(grads))
	for i, g := range grads {
		if !allFinite(g.Weights) || !allFinite(g.Biases) {
			return fmt.Errorf("%w: layer %d", ErrNumeric, i)
		}

		l := n.layers[i]
		params = append(params,
			optim.Param{Name: weightsName(i), Value: l.weights.RawMatrix().Data, Grad: g.Weights},
			optim.Param{Name: biasesName(i), Value: l.biases.RawVector().Data, Grad: g.Biases},
		)
	}

	return n.opt.Step(params)
}

// clipByGlobalNorm rescales grads in place so their joint L2 norm is at most maxNorm.
func clipByGlobalNorm(grads []Gradient, maxNorm float64) {
	var sq float64
	for _, g := range grads {
		sq += floats.Dot(g.Weights, g.Weights) + floats.Dot(g.Biases, g.Biases)
	}

	norm := math.Sqrt(sq)
	if norm <= maxNorm || norm == 0 {
		return
	}

	scale := maxNorm / norm
	for _, g := range grads {
		floats.Scale(scale, g.Weights)
		floats.Scale(scale, g.Biases)
	}
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
