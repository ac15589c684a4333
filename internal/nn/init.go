package nn

import (
	"math"
	"math/rand/v2"
)

// Initializer fills a parameter buffer for a layer with the given fan-in and fan-out.
type Initializer interface {
	Init(dst []float64, fanIn, fanOut int, r *rand.Rand)
}

// InitializerFunc adapts a function to the Initializer interface.
type InitializerFunc func(dst []float64, fanIn, fanOut int, r *rand.Rand)

// Init calls f.
func (f InitializerFunc) Init(dst []float64, fanIn, fanOut int, r *rand.Rand) {
	f(dst, fanIn, fanOut, r)
}

// Uniform draws every value independently from U[lo, hi).
func Uniform(lo, hi float64) Initializer {
	return InitializerFunc(func(dst []float64, _, _ int, r *rand.Rand) {
		for i := range dst {
			dst[i] = lo + (hi-lo)*r.Float64()
		}
	})
}

// DefaultInitializer is U[-0.5, 0.5), applied to weights and biases alike.
func DefaultInitializer() Initializer {
	return Uniform(-0.5, 0.5)
}

// Xavier (Glorot) initialization.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
func Xavier() Initializer {
	return InitializerFunc(func(dst []float64, fanIn, fanOut int, r *rand.Rand) {
		bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
		Uniform(-bound, bound).Init(dst, fanIn, fanOut, r)
	})
}

// He initialization for ReLU networks.
//
// Values are drawn from N(0, 2/fan_in).
func He() Initializer {
	return InitializerFunc(func(dst []float64, fanIn, _ int, r *rand.Rand) {
		std := math.Sqrt(2.0 / float64(fanIn))
		for i := range dst {
			dst[i] = r.NormFloat64() * std
		}
	})
}

// Constant sets every value to v. Mostly useful in tests.
func Constant(v float64) Initializer {
	return InitializerFunc(func(dst []float64, _, _ int, _ *rand.Rand) {
		for i := range dst {
			dst[i] = v
		}
	})
}
