package trainer

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"testing"

	"github.com/born-ml/namenet/internal/nn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toyProblem() []nn.Example {
	return []nn.Example{
		{Input: []float64{1, 0, 0, 0}, Target: []float64{1, 0}},
		{Input: []float64{0, 1, 0, 0}, Target: []float64{0, 1}},
		{Input: []float64{0, 0, 1, 0}, Target: []float64{1, 0}},
		{Input: []float64{0, 0, 0, 1}, Target: []float64{0, 1}},
	}
}

func newToyNet(t *testing.T) *nn.Network {
	t.Helper()
	net, err := nn.NewNetworkBuilder().
		LearningRate(0.5).
		InputSize(4).
		OutputSize(2).
		Hidden(nn.NewLayerBuilder().Neurons(8)).
		Initializer(nn.Xavier()).
		Seed(1).
		Build()
	require.NoError(t, err)
	return net
}

func TestRun(t *testing.T) {
	net := newToyNet(t)
	data := toyProblem()
	ckpt := filepath.Join(t.TempDir(), "ckpt.nnet")
	var logs bytes.Buffer

	summary, err := Run(context.Background(), RunConfig{
		Epochs:         200,
		BatchSize:      2,
		LogEvery:       50,
		Seed:           7,
		CheckpointPath: ckpt,
		Meta:           map[string]string{"tokenizer": "char"},
		Logger:         log.New(&logs, "", 0),
	}, net, data, data)
	require.NoError(t, err)

	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, int64(400), summary.Steps)
	require.Len(t, summary.Epochs, 200)
	first, last := summary.Epochs[0], summary.Epochs[199]
	assert.Less(t, last.TrainLoss, first.TrainLoss)
	assert.InDelta(t, 1.0, last.Dev.Accuracy, 1e-12)
	assert.Contains(t, logs.String(), "step=50")

	loaded, meta, err := nn.LoadFile(ckpt)
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, meta.RunID)
	require.NotNil(t, meta.Checkpoint)
	assert.Equal(t, 200, meta.Checkpoint.Epoch)
	assert.Equal(t, int64(400), meta.Checkpoint.Step)
	assert.Equal(t, "char", meta.Extra["tokenizer"])

	want, err := net.Eval(data[0].Input)
	require.NoError(t, err)
	got, err := loaded.Eval(data[0].Input)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRun_SingleExampleBatches(t *testing.T) {
	summary, err := Run(context.Background(), RunConfig{
		Epochs:    2,
		BatchSize: 1,
		Logger:    log.New(&bytes.Buffer{}, "", 0),
	}, newToyNet(t), toyProblem(), nil)
	require.NoError(t, err)

	assert.Equal(t, int64(8), summary.Steps)
	assert.Zero(t, summary.Epochs[1].Dev.Count)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := Run(ctx, RunConfig{
		Epochs:    5,
		BatchSize: 2,
		Logger:    log.New(&bytes.Buffer{}, "", 0),
	}, newToyNet(t), toyProblem(), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Steps)
}

func TestRun_InvalidConfig(t *testing.T) {
	net := newToyNet(t)

	_, err := Run(context.Background(), RunConfig{Epochs: 0, BatchSize: 1}, net, toyProblem(), nil)
	assert.Error(t, err)

	_, err = Run(context.Background(), RunConfig{Epochs: 1, BatchSize: 0}, net, toyProblem(), nil)
	assert.Error(t, err)

	_, err = Run(context.Background(), RunConfig{Epochs: 1, BatchSize: 1}, net, nil, nil)
	assert.Error(t, err)
}

func TestRun_DimensionError(t *testing.T) {
	bad := []nn.Example{{Input: []float64{1, 2}, Target: []float64{1, 0}}}

	_, err := Run(context.Background(), RunConfig{
		Epochs:    1,
		BatchSize: 1,
		Logger:    log.New(&bytes.Buffer{}, "", 0),
	}, newToyNet(t), bad, nil)
	require.ErrorIs(t, err, nn.ErrDimension)
}
