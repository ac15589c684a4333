package tokenizer

import (
	"fmt"
	"strings"
)

// CharName is the registered name of the character tokenizer.
const CharName = "char"

const (
	charPad     int32 = 0
	charUnknown int32 = 27
	charVocab         = 28
)

// Char maps each letter of a name to its own token.
//
// Letters are case-insensitive: 'a' and 'A' both become 1, 'z' becomes 26.
// Any other rune becomes 27. ID 0 is reserved for padding.
type Char struct{}

// NewChar creates a character tokenizer.
func NewChar() *Char {
	return &Char{}
}

// Encode converts text to one token per rune.
func (c *Char) Encode(text string) ([]int32, error) {
	tokens := make([]int32, 0, len(text))
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			tokens = append(tokens, r-'a'+1)
			continue
		}
		tokens = append(tokens, charUnknown)
	}
	return tokens, nil
}

// Decode converts tokens back to lowercase text. Unknown tokens become '?'
// and padding is dropped.
func (c *Char) Decode(tokens []int32) (string, error) {
	var sb strings.Builder
	for _, tok := range tokens {
		switch {
		case tok == charPad:
		case tok >= 1 && tok <= 26:
			sb.WriteRune('a' + tok - 1)
		case tok == charUnknown:
			sb.WriteByte('?')
		default:
			return "", fmt.Errorf("char tokenizer: token %d out of range", tok)
		}
	}
	return sb.String(), nil
}

// VocabSize returns 28: padding, 26 letters and the unknown token.
func (c *Char) VocabSize() int {
	return charVocab
}

// Name returns "char".
func (c *Char) Name() string {
	return CharName
}
