package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTokenizer is returned by New for unsupported tokenizer names.
var ErrUnknownTokenizer = errors.New("unknown tokenizer")

// Tokenizer is the core interface for name tokenization.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the number of distinct token IDs, padding included.
	VocabSize() int

	// Name returns the tokenizer name as accepted by New.
	Name() string
}

// New returns the tokenizer registered under name: "char" or a tiktoken
// encoding name such as "cl100k_base".
func New(name string) (Tokenizer, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", CharName:
		return NewChar(), nil
	case encodingCL100kBase, encodingP50kBase, encodingR50kBase:
		tok, err := NewTikToken(n)
		if err != nil {
			return nil, err
		}
		return tok, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizer, name)
	}
}
