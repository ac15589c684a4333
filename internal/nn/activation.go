package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// relu writes max(0, x) element-wise into dst.
func relu(dst, src []float64) {
	for i, v := range src {
		dst[i] = math.Max(0, v)
	}
}

// reluPrime is the ReLU derivative at x: 1 where x > 0, else 0.
func reluPrime(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

// softmax writes the normalized exponentials of src into dst.
//
// The maximum is subtracted before exponentiating, so large logits cannot
// overflow and the largest term is always exp(0) = 1.
func softmax(dst, src []float64) {
	maxV := floats.Max(src)
	for i, v := range src {
		dst[i] = math.Exp(v - maxV)
	}
	floats.Scale(1/floats.Sum(dst), dst)
}
