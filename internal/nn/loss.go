package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// probFloor keeps log() finite when a predicted probability underflows to zero.
const probFloor = 1e-12

// CrossEntropy computes categorical cross-entropy -Σ target_i * log(probs_i).
//
// probs is expected to be a softmax output; target is usually one-hot.
func CrossEntropy(probs, target []float64) float64 {
	var loss float64
	for i, t := range target {
		if t == 0 {
			continue
		}
		loss -= t * math.Log(math.Max(probs[i], probFloor))
	}
	return loss
}

// outputDelta writes the gradient of softmax + cross-entropy with respect to
// the output pre-activation into dst: probs - target.
func outputDelta(dst, probs, target []float64) {
	floats.SubTo(dst, probs, target)
}

// Argmax returns the index of the largest value.
func Argmax(v []float64) int {
	return floats.MaxIdx(v)
}
