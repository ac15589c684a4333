package nn

import "fmt"

// Metrics summarizes a network's performance on a set of examples.
type Metrics struct {
	Loss     float64 // mean cross-entropy
	Accuracy float64 // fraction of examples whose argmax matches the target's
	Count    int
}

// Evaluate computes mean loss and argmax accuracy over examples without training.
func Evaluate(n *Network, examples []Example) (Metrics, error) {
	var m Metrics
	if len(examples) == 0 {
		return m, nil
	}

	correct := 0
	for i, ex := range examples {
		if err := n.checkExample(ex.Input, ex.Target); err != nil {
			return Metrics{}, fmt.Errorf("example %d: %w", i, err)
		}

		probs, err := n.Eval(ex.Input)
		if err != nil {
			return Metrics{}, err
		}
		m.Loss += CrossEntropy(probs, ex.Target)
		if Argmax(probs) == Argmax(ex.Target) {
			correct++
		}
	}

	m.Count = len(examples)
	m.Loss /= float64(m.Count)
	m.Accuracy = float64(correct) / float64(m.Count)
	return m, nil
}

// Accuracy returns the fraction of examples whose predicted class matches the target's.
func Accuracy(n *Network, examples []Example) (float64, error) {
	m, err := Evaluate(n, examples)
	if err != nil {
		return 0, err
	}
	return m.Accuracy, nil
}
