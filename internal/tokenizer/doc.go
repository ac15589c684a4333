// Package tokenizer turns names into token IDs for the feature encoder.
//
// Two strategies are available:
//   - char: one token per letter, a-z map to 1..26, anything else to 27
//   - tiktoken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//
// Token ID 0 is never produced by Encode; the feature encoder uses it
// for padding.
//
// Example usage:
//
//	tok, err := tokenizer.New("char")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ids, err := tok.Encode("Mary")
//	// ids = [13 1 18 25]
package tokenizer
