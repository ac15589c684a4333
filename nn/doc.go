// Copyright 2025 Namenet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the feedforward classifier used by namenet.
//
// # Overview
//
// A Network is a stack of dense layers: ReLU hidden layers followed by a
// softmax output layer. It is trained with plain gradient descent on
// categorical cross-entropy, one example (Train) or one mini-batch
// (TrainBatch) at a time.
//
// # Basic Usage
//
//	import "github.com/born-ml/namenet/nn"
//
//	func main() {
//	    net, err := nn.NewNetworkBuilder().
//	        LearningRate(0.1).
//	        InputSize(4).
//	        OutputSize(2).
//	        Hidden(nn.NewLayerBuilder().Neurons(3)).
//	        Seed(42).
//	        Build()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    for range 1000 {
//	        net.Train([]float64{1, 0, 0, 0}, []float64{1, 0})
//	    }
//
//	    probs, _ := net.Eval([]float64{1, 0, 0, 0})
//	    fmt.Println(probs) // [0.9... 0.0...]
//	}
//
// # Errors
//
// Configuration problems wrap ErrConfig and are reported by Build.
// Vectors of the wrong length wrap ErrDimension; a failed call never
// modifies the network.
//
// # Persistence
//
// Save and Load store weights and biases, in layer order, in the .nnet
// format together with the learning rate and an optional checkpoint record.
package nn
