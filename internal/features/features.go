// Package features turns dataset entries into network input and target vectors.
package features

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/namenet/internal/dataset"
	"github.com/born-ml/namenet/internal/nn"
	"github.com/born-ml/namenet/internal/tokenizer"
)

// Class is an output category of the classifier.
type Class int

const (
	Male Class = iota
	Female
	HumanNotName // human text that is not a first name
	NotHuman     // machine-generated or otherwise non-human text
)

// NumClasses is the classifier's output size.
const NumClasses = 4

var classNames = [NumClasses]string{"male", "female", "human-not-name", "not-human"}

// String returns the lowercase class label.
func (c Class) String() string {
	if c < 0 || int(c) >= NumClasses {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classNames[c]
}

// ClassOf maps a dataset gender to its class.
func ClassOf(g dataset.Gender) Class {
	if g == dataset.Male {
		return Male
	}
	return Female
}

const (
	// DefaultMaxTokens fits every name in the SSA data with the char tokenizer.
	DefaultMaxTokens = 32

	baseYear   = 1880
	yearSpan   = 200
	popularity = 20 // log1p(count) divisor
)

// ErrEncode is returned when a name cannot be tokenized.
var ErrEncode = errors.New("feature encoding failed")

// Encoder builds fixed-length input vectors.
//
// Layout: maxTokens token slots (id / vocab, zero padded or truncated),
// then the normalized year, then the normalized popularity.
type Encoder struct {
	tok       tokenizer.Tokenizer
	maxTokens int
}

// NewEncoder creates an encoder. maxTokens <= 0 uses DefaultMaxTokens.
func NewEncoder(tok tokenizer.Tokenizer, maxTokens int) *Encoder {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Encoder{tok: tok, maxTokens: maxTokens}
}

// InputSize returns the length of every encoded vector.
func (e *Encoder) InputSize() int {
	return e.maxTokens + 2
}

// MaxTokens returns the number of token slots.
func (e *Encoder) MaxTokens() int {
	return e.maxTokens
}

// Tokenizer returns the underlying tokenizer.
func (e *Encoder) Tokenizer() tokenizer.Tokenizer {
	return e.tok
}

// Encode returns the input vector for a name observed in year with the
// given birth count.
func (e *Encoder) Encode(name string, year, count int) ([]float64, error) {
	ids, err := e.tok.Encode(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrEncode, name, err)
	}

	x := make([]float64, e.InputSize())
	vocab := float64(e.tok.VocabSize())
	for i := 0; i < len(ids) && i < e.maxTokens; i++ {
		x[i] = float64(ids[i]) / vocab
	}
	x[e.maxTokens] = float64(year-baseYear) / yearSpan
	x[e.maxTokens+1] = math.Log1p(float64(max(count, 0))) / popularity
	return x, nil
}

// Target returns the one-hot target vector for c.
func Target(c Class) []float64 {
	t := make([]float64, NumClasses)
	t[c] = 1
	return t
}

// Examples encodes entries into training examples.
func (e *Encoder) Examples(entries []dataset.Entry) ([]nn.Example, error) {
	examples := make([]nn.Example, len(entries))
	for i, entry := range entries {
		x, err := e.Encode(entry.Name, entry.Year, entry.Popularity)
		if err != nil {
			return nil, err
		}
		examples[i] = nn.Example{Input: x, Target: Target(ClassOf(entry.Gender))}
	}
	return examples, nil
}
