package serialization

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "NNET"
	FormatVersion   = 1
	HeaderAlignment = 64                 // Align tensor data to 64 bytes
	ChecksumSize    = 32                 // SHA-256 checksum size
	FixedHeaderSize = 4 + 4 + 4 + 8 + 32 // magic + version + flags + header size + checksum
	DTypeFloat64    = "float64"
	float64Size     = 8
)

// Flags for the .nnet format.
const (
	FlagHasMetadata uint32 = 1 << 0 // bit 0: custom metadata included
	FlagCheckpoint  uint32 = 1 << 1 // bit 1: training checkpoint block included
)

// Header represents the JSON header in a .nnet file.
type Header struct {
	FormatVersion  int               `json:"format_version"`       // Version of the .nnet format
	NamenetVersion string            `json:"namenet_version"`      // Version of namenet that wrote the file
	ModelType      string            `json:"model_type"`           // Type of model (e.g., "Network")
	RunID          string            `json:"run_id,omitempty"`     // Identifier of the training run
	CreatedAt      time.Time         `json:"created_at"`           // When the file was created
	Tensors        []TensorMeta      `json:"tensors"`              // Tensor metadata, in data order
	Metadata       map[string]string `json:"metadata"`             // Custom metadata
	Checkpoint     *CheckpointMeta   `json:"checkpoint,omitempty"` // Training state (optional)
}

// CheckpointMeta contains training state information for checkpoints.
type CheckpointMeta struct {
	Epoch       int     `json:"epoch"`        // Training epoch number
	Step        int64   `json:"step"`         // Training step number
	Loss        float64 `json:"loss"`         // Training loss at checkpoint
	DevLoss     float64 `json:"dev_loss"`     // Dev set loss at checkpoint
	DevAccuracy float64 `json:"dev_accuracy"` // Dev set accuracy at checkpoint
}

// TensorMeta describes a tensor in the .nnet file.
type TensorMeta struct {
	Name   string `json:"name"`   // Tensor name (e.g., "layer.0.weights")
	DType  string `json:"dtype"`  // Data type, always "float64"
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Offset in the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// Tensor is a named, shaped float64 buffer.
type Tensor struct {
	Name  string
	Shape []int
	Data  []float64
}

// NumElements returns the product of the shape dimensions.
func (t Tensor) NumElements() int {
	n := 1
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

// alignedPadding returns the zero bytes needed after pos to reach HeaderAlignment.
func alignedPadding(pos int64) int64 {
	return (HeaderAlignment - (pos % HeaderAlignment)) % HeaderAlignment
}
