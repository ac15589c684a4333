// Copyright 2025 Namenet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the gradient-descent optimizer used by namenet.
//
// # Overview
//
// This package contains:
//   - SGD: plain gradient descent, param -= lr * grad
//   - Optimizer interface for custom optimizers
//   - Param: a parameter buffer paired with its gradient
//
// # Basic Usage
//
//	import "github.com/born-ml/namenet/optim"
//
//	func main() {
//	    w := []float64{0.5, -0.25}
//	    dw := []float64{0.1, 0.2}
//
//	    optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})
//	    if err := optimizer.Step([]optim.Param{{Name: "w", Value: w, Grad: dw}}); err != nil {
//	        log.Fatal(err)
//	    }
//	    // w = [0.49 -0.27]
//	}
//
// Step validates every pair before updating anything, so a mismatched
// gradient leaves all parameters untouched.
package optim
