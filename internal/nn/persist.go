package nn

import (
	"fmt"
	"io"
	"strconv"

	"github.com/born-ml/namenet/internal/optim"
	"github.com/born-ml/namenet/internal/parallel"
	"github.com/born-ml/namenet/internal/serialization"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

const (
	modelType       = "Network"
	metaInputSize   = "input_size"
	metaLearnRate   = "learning_rate"
	metaNumLayers   = "layers"
	metaGradientClp = "gradient_clip"
)

// Checkpoint records where in training a saved network came from.
type Checkpoint struct {
	Epoch       int
	Step        int64
	Loss        float64
	DevLoss     float64
	DevAccuracy float64
}

// Meta is the non-parameter information stored next to the weights.
type Meta struct {
	RunID      string            // generated when empty
	Checkpoint *Checkpoint       // optional training position
	Extra      map[string]string // free-form, e.g. tokenizer settings
}

func weightsName(i int) string { return fmt.Sprintf("layer.%d.weights", i) }
func biasesName(i int) string  { return fmt.Sprintf("layer.%d.biases", i) }

// Save writes the network's weights and biases, in layer order, to w.
func (n *Network) Save(w io.Writer, meta Meta) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	header, tensors := n.encode(meta)
	if err := serialization.NewWriter(w).Write(header, tensors); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}

// SaveFile writes the network to path.
func (n *Network) SaveFile(path string, meta Meta) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	header, tensors := n.encode(meta)
	if err := serialization.WriteFile(path, header, tensors); err != nil {
		return fmt.Errorf("save network: %w", err)
	}
	return nil
}

// Load reads a network written by Save.
func Load(r io.Reader) (*Network, Meta, error) {
	file, err := serialization.Read(r, serialization.ReaderOptions{})
	if err != nil {
		return nil, Meta{}, fmt.Errorf("load network: %w", err)
	}
	return decode(file)
}

// LoadFile reads a network from path.
func LoadFile(path string) (*Network, Meta, error) {
	file, err := serialization.ReadFile(path, serialization.ReaderOptions{})
	if err != nil {
		return nil, Meta{}, fmt.Errorf("load network: %w", err)
	}
	return decode(file)
}

func (n *Network) encode(meta Meta) (serialization.Header, []serialization.Tensor) {
	runID := meta.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	md := make(map[string]string, len(meta.Extra)+4)
	for k, v := range meta.Extra {
		md[k] = v
	}
	md[metaInputSize] = strconv.Itoa(n.inputSize)
	md[metaLearnRate] = strconv.FormatFloat(n.LearningRate(), 'g', -1, 64)
	md[metaNumLayers] = strconv.Itoa(len(n.layers))
	if n.clip > 0 {
		md[metaGradientClp] = strconv.FormatFloat(n.clip, 'g', -1, 64)
	}

	header := serialization.Header{
		ModelType: modelType,
		RunID:     runID,
		Metadata:  md,
	}
	if c := meta.Checkpoint; c != nil {
		header.Checkpoint = &serialization.CheckpointMeta{
			Epoch:       c.Epoch,
			Step:        c.Step,
			Loss:        c.Loss,
			DevLoss:     c.DevLoss,
			DevAccuracy: c.DevAccuracy,
		}
	}

	tensors := make([]serialization.Tensor, 0, 2*len(n.layers))
	for i, l := range n.layers {
		tensors = append(tensors,
			serialization.Tensor{Name: weightsName(i), Shape: []int{l.Neurons(), l.Inputs()}, Data: l.Weights()},
			serialization.Tensor{Name: biasesName(i), Shape: []int{l.Neurons()}, Data: l.Biases()},
		)
	}

	return header, tensors
}

//nolint:gocyclo // Sequential validation of a decoded file.
func decode(file *serialization.File) (*Network, Meta, error) {
	h := file.Header
	if h.ModelType != modelType {
		return nil, Meta{}, fmt.Errorf("%w: model type %q", ErrInvalidModel, h.ModelType)
	}

	inputSize, err := strconv.Atoi(h.Metadata[metaInputSize])
	if err != nil || inputSize <= 0 {
		return nil, Meta{}, fmt.Errorf("%w: bad %s %q", ErrInvalidModel, metaInputSize, h.Metadata[metaInputSize])
	}
	lr, err := strconv.ParseFloat(h.Metadata[metaLearnRate], 64)
	if err != nil || lr <= 0 {
		return nil, Meta{}, fmt.Errorf("%w: bad %s %q", ErrInvalidModel, metaLearnRate, h.Metadata[metaLearnRate])
	}
	numLayers, err := strconv.Atoi(h.Metadata[metaNumLayers])
	if err != nil || numLayers < 2 {
		return nil, Meta{}, fmt.Errorf("%w: bad %s %q", ErrInvalidModel, metaNumLayers, h.Metadata[metaNumLayers])
	}
	var clip float64
	if s, ok := h.Metadata[metaGradientClp]; ok {
		if clip, err = strconv.ParseFloat(s, 64); err != nil || clip < 0 {
			return nil, Meta{}, fmt.Errorf("%w: bad %s %q", ErrInvalidModel, metaGradientClp, s)
		}
	}

	if len(file.Tensors) != 2*numLayers {
		return nil, Meta{}, fmt.Errorf("%w: %d tensors stored for %d layers", ErrInvalidModel, len(file.Tensors), numLayers)
	}

	layers := make([]*Layer, numLayers)
	inputs := inputSize
	for i := range layers {
		w, ok := file.Tensor(weightsName(i))
		if !ok {
			return nil, Meta{}, fmt.Errorf("%w: missing %s", ErrInvalidModel, weightsName(i))
		}
		b, ok := file.Tensor(biasesName(i))
		if !ok {
			return nil, Meta{}, fmt.Errorf("%w: missing %s", ErrInvalidModel, biasesName(i))
		}
		if len(w.Shape) != 2 || w.Shape[1] != inputs || len(b.Shape) != 1 || b.Shape[0] != w.Shape[0] {
			return nil, Meta{}, fmt.Errorf("%w: layer %d has weights %v and biases %v, expected %d inputs",
				ErrInvalidModel, i, w.Shape, b.Shape, inputs)
		}

		layers[i] = &Layer{
			weights: mat.NewDense(w.Shape[0], w.Shape[1], w.Data),
			biases:  mat.NewVecDense(b.Shape[0], b.Data),
			output:  i == numLayers-1,
		}
		inputs = w.Shape[0]
	}

	meta := Meta{RunID: h.RunID, Extra: make(map[string]string)}
	for k, v := range h.Metadata {
		switch k {
		case metaInputSize, metaLearnRate, metaNumLayers, metaGradientClp:
		default:
			meta.Extra[k] = v
		}
	}
	if c := h.Checkpoint; c != nil {
		meta.Checkpoint = &Checkpoint{
			Epoch:       c.Epoch,
			Step:        c.Step,
			Loss:        c.Loss,
			DevLoss:     c.DevLoss,
			DevAccuracy: c.DevAccuracy,
		}
	}

	return &Network{
		inputSize: inputSize,
		layers:    layers,
		opt:       optim.NewSGD(optim.SGDConfig{LR: lr}),
		clip:      clip,
		par:       parallel.DefaultConfig(),
	}, meta, nil
}
