package optim

import (
	"gonum.org/v1/gonum/floats"
)

// SGD implements plain gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.01})
//	if err := optimizer.Step(params); err != nil {
//	    return err
//	}
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD{lr: config.LR}
}

// Step performs a single optimization step: param -= lr * grad for every pair.
func (s *SGD) Step(params []Param) error {
	if err := validate(params); err != nil {
		return err
	}

	for _, p := range params {
		floats.AddScaled(p.Value, -s.lr, p.Grad)
	}

	return nil
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float64 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float64) {
	s.lr = lr
}
