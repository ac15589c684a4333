package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"
)

// Version is the namenet version recorded in written headers.
const Version = "0.1.0"

// Writer writes tensors in .nnet format.
type Writer struct {
	w      io.Writer
	closed bool
}

// NewWriter creates a .nnet writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes header and tensors as a complete .nnet stream.
//
// Tensor metadata in the header is rebuilt from tensors; any Tensors already
// present in header are ignored. FormatVersion, NamenetVersion and CreatedAt
// are filled in when zero.
func (w *Writer) Write(header Header, tensors []Tensor) error {
	if w.closed {
		return ErrWriterClosed
	}

	data, metas, err := encodeTensors(tensors)
	if err != nil {
		return err
	}

	header.Tensors = metas
	if header.FormatVersion == 0 {
		header.FormatVersion = FormatVersion
	}
	if header.NamenetVersion == "" {
		header.NamenetVersion = Version
	}
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if len(headerJSON) > MaxHeaderSize {
		return ErrHeaderTooLarge
	}

	flags := uint32(0)
	if len(header.Metadata) > 0 {
		flags |= FlagHasMetadata
	}
	if header.Checkpoint != nil {
		flags |= FlagCheckpoint
	}

	var fixed bytes.Buffer
	fixed.WriteString(MagicBytes)
	_ = binary.Write(&fixed, binary.LittleEndian, uint32(FormatVersion))
	_ = binary.Write(&fixed, binary.LittleEndian, flags)
	_ = binary.Write(&fixed, binary.LittleEndian, uint64(len(headerJSON)))
	checksum := ComputeChecksum(data)
	fixed.Write(checksum[:])

	if _, err := w.w.Write(fixed.Bytes()); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}

	if _, err := w.w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	padding := alignedPadding(int64(FixedHeaderSize + len(headerJSON)))
	if padding > 0 {
		if _, err := w.w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}

	return nil
}

// Close marks the writer as finished. It closes the underlying writer if it
// implements io.Closer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// WriteFile writes header and tensors to path.
//
// The file is written under a temporary name in the same directory and
// renamed over path once complete, so an existing file at path is either
// fully replaced or left untouched.
func WriteFile(path string, header Header, tensors []Tensor) (err error) {
	file, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmpName := file.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	writer := NewWriter(file)
	if err := writer.Write(header, tensors); err != nil {
		_ = writer.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// encodeTensors lays tensors out back to back and returns the data section
// together with the matching metadata.
func encodeTensors(tensors []Tensor) ([]byte, []TensorMeta, error) {
	metas := make([]TensorMeta, 0, len(tensors))
	seen := make(map[string]struct{}, len(tensors))

	var total int
	for _, t := range tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return nil, nil, err
		}
		if _, dup := seen[t.Name]; dup {
			return nil, nil, &ValidationError{Type: "duplicate_name", Tensor: t.Name, Details: "tensor written twice"}
		}
		seen[t.Name] = struct{}{}

		if t.NumElements() != len(t.Data) || len(t.Shape) == 0 {
			return nil, nil, &ValidationError{
				Type:    "size_mismatch",
				Tensor:  t.Name,
				Details: fmt.Sprintf("shape %v does not hold %d values", t.Shape, len(t.Data)),
			}
		}
		total += len(t.Data)
	}

	data := make([]byte, total*float64Size)
	var offset int64
	for _, t := range tensors {
		size := int64(len(t.Data) * float64Size)
		for i, v := range t.Data {
			binary.LittleEndian.PutUint64(data[offset+int64(i*float64Size):], math.Float64bits(v))
		}

		metas = append(metas, TensorMeta{
			Name:   t.Name,
			DType:  DTypeFloat64,
			Shape:  append([]int(nil), t.Shape...),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}

	return data, metas, nil
}
