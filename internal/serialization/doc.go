// Package serialization provides the native .nnet format for saving and loading namenet weights.
//
// The .nnet format is a small binary format holding named float64 tensors:
//
//	Format Structure:
//	  [4 bytes: Magic "NNET"]
//	  [4 bytes: Version (uint32 LE)]
//	  [4 bytes: Flags (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [32 bytes: SHA-256 of the data section]
//	  [Header: JSON metadata]
//	  [Padding to 64-byte alignment]
//	  [Tensor data: float64 little-endian, in header order]
//
// Example usage:
//
//	// Save
//	err := serialization.WriteFile("model.nnet", header, tensors)
//
//	// Load
//	file, err := serialization.ReadFile("model.nnet", serialization.ReaderOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	weights, ok := file.Tensor("layer.0.weights")
package serialization
