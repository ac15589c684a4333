// Package optim implements optimization algorithms for training neural networks.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: plain gradient descent
//
// Optimizers work on Param pairs: a parameter's backing storage and the
// gradient computed for it by a backward pass. Storage is updated in place,
// so a Param built from a gonum matrix's raw data updates that matrix.
//
// Example usage:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.05})
//
//	params := []optim.Param{{Name: "w", Value: w, Grad: dw}}
//	if err := optimizer.Step(params); err != nil {
//	    return err
//	}
package optim

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned by Step when a gradient does not match its parameter.
var ErrShapeMismatch = errors.New("gradient length does not match parameter")

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies gradient updates to all parameters.
	//
	// Step validates every pair before touching any storage: either all
	// parameters are updated or none are.
	Step(params []Param) error

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float64 // Learning rate
}

// Param pairs a parameter's storage with its gradient.
type Param struct {
	Name  string    // e.g. "layer.0.weights"
	Value []float64 // parameter storage, updated in place
	Grad  []float64 // gradient, same length as Value
}

// validate checks that every gradient matches its parameter.
func validate(params []Param) error {
	for _, p := range params {
		if len(p.Value) != len(p.Grad) {
			return fmt.Errorf("%w: %s has %d values, gradient has %d",
				ErrShapeMismatch, p.Name, len(p.Value), len(p.Grad))
		}
	}
	return nil
}
