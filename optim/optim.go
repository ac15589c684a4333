// Copyright 2025 Namenet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/namenet/internal/optim"
)

// Optimizer is the interface for optimization algorithms.
type Optimizer = optim.Optimizer

// Param pairs a parameter buffer with its gradient.
type Param = optim.Param

// Config contains common optimizer configuration.
type Config = optim.Config

// SGD implements plain gradient descent.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD.
type SGDConfig = optim.SGDConfig

// ErrShapeMismatch is returned when a gradient does not match its parameter.
var ErrShapeMismatch = optim.ErrShapeMismatch

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.05})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
