// Copyright 2025 Namenet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokenizer exposes the name tokenizers used by namenet.
//
// Supported tokenizers:
//   - char: one token per letter
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//
// Example usage:
//
//	import "github.com/born-ml/namenet/tokenizer"
//
//	tok, err := tokenizer.New("cl100k_base")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tokens, err := tok.Encode("Olivia")
package tokenizer

import (
	"github.com/born-ml/namenet/internal/tokenizer"
)

// Tokenizer is the core interface for name tokenization.
type Tokenizer = tokenizer.Tokenizer

// ErrUnknownTokenizer is returned by New for unsupported names.
var ErrUnknownTokenizer = tokenizer.ErrUnknownTokenizer

// New returns the tokenizer registered under name ("char" or a tiktoken encoding).
func New(name string) (Tokenizer, error) {
	return tokenizer.New(name)
}

// NewChar creates the character tokenizer.
func NewChar() Tokenizer {
	return tokenizer.NewChar()
}

// NewTikToken creates a TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" (GPT-3).
func NewTikToken(encodingName string) (Tokenizer, error) {
	tok, err := tokenizer.NewTikToken(encodingName)
	if err != nil {
		return nil, err
	}
	return tok, nil
}
