// Package trainer runs the epoch loop for a name classifier.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/born-ml/namenet/internal/nn"
	"github.com/google/uuid"
)

// RunConfig captures the knobs required by the training loop.
type RunConfig struct {
	Epochs    int
	BatchSize int
	LogEvery  int
	Seed      uint64

	// CheckpointPath, when set, receives the network after every epoch.
	CheckpointPath string
	// Meta is stored with every checkpoint (tokenizer settings and so on).
	Meta map[string]string

	Logger *log.Logger
}

// EpochStats summarizes one pass over the training set.
type EpochStats struct {
	Epoch     int
	TrainLoss float64 // mean step loss
	Dev       nn.Metrics
	Duration  time.Duration
}

// Summary is returned by Run, also when training stops early.
type Summary struct {
	RunID  string
	Steps  int64
	Epochs []EpochStats
}

// Run trains net on train for cfg.Epochs epochs, shuffling every epoch and
// stepping once per mini-batch. dev may be empty.
//
// Cancelling ctx stops training between steps; the partial Summary is
// returned together with ctx.Err().
func Run(ctx context.Context, cfg RunConfig, net *nn.Network, train, dev []nn.Example) (Summary, error) {
	if cfg.Epochs <= 0 {
		return Summary{}, errors.New("trainer: epochs must be > 0")
	}
	if cfg.BatchSize <= 0 {
		return Summary{}, errors.New("trainer: batch size must be > 0")
	}
	if len(train) == 0 {
		return Summary{}, errors.New("trainer: no training examples")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 100
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	summary := Summary{RunID: uuid.NewString()}
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5bd1e995))
	order := make([]int, len(train))
	for i := range order {
		order[i] = i
	}
	batch := make([]nn.Example, 0, cfg.BatchSize)

	logger.Printf("run=%s %s train=%d dev=%d epochs=%d batch=%d",
		summary.RunID, net, len(train), len(dev), cfg.Epochs, cfg.BatchSize)

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		epochStart := time.Now()
		r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		var window Window
		var lossSum float64
		var steps int
		for start := 0; start < len(order); start += cfg.BatchSize {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			batch = batch[:0]
			for _, idx := range order[start:min(start+cfg.BatchSize, len(order))] {
				batch = append(batch, train[idx])
			}

			stepStart := time.Now()
			loss, err := step(net, batch)
			if err != nil {
				return summary, fmt.Errorf("epoch %d step %d: %w", epoch, summary.Steps+1, err)
			}
			window.Record(len(batch), time.Since(stepStart), loss)
			lossSum += loss
			steps++
			summary.Steps++

			if summary.Steps%int64(cfg.LogEvery) == 0 {
				snap := window.Snapshot()
				logger.Printf("epoch=%d step=%d examples_per_sec=%.1f step_ms=%.3f loss=%.4f",
					epoch, summary.Steps, snap.ExamplesPerSec, snap.AvgStepMS, snap.AvgLoss)
			}
		}

		stats := EpochStats{Epoch: epoch, TrainLoss: lossSum / float64(steps)}
		if len(dev) > 0 {
			m, err := nn.Evaluate(net, dev)
			if err != nil {
				return summary, fmt.Errorf("epoch %d dev evaluation: %w", epoch, err)
			}
			stats.Dev = m
		}
		stats.Duration = time.Since(epochStart)
		summary.Epochs = append(summary.Epochs, stats)

		logger.Printf("epoch=%d train_loss=%.4f dev_loss=%.4f dev_acc=%.3f took=%s",
			epoch, stats.TrainLoss, stats.Dev.Loss, stats.Dev.Accuracy, stats.Duration.Round(time.Millisecond))

		if cfg.CheckpointPath != "" {
			if err := checkpoint(cfg, net, summary, stats); err != nil {
				return summary, err
			}
		}
	}

	return summary, nil
}

func step(net *nn.Network, batch []nn.Example) (float64, error) {
	if len(batch) == 1 {
		return net.Train(batch[0].Input, batch[0].Target)
	}
	return net.TrainBatch(batch)
}

func checkpoint(cfg RunConfig, net *nn.Network, summary Summary, stats EpochStats) error {
	meta := nn.Meta{
		RunID: summary.RunID,
		Checkpoint: &nn.Checkpoint{
			Epoch:       stats.Epoch,
			Step:        summary.Steps,
			Loss:        stats.TrainLoss,
			DevLoss:     stats.Dev.Loss,
			DevAccuracy: stats.Dev.Accuracy,
		},
		Extra: cfg.Meta,
	}
	if err := net.SaveFile(cfg.CheckpointPath, meta); err != nil {
		return fmt.Errorf("epoch %d checkpoint: %w", stats.Epoch, err)
	}
	return nil
}
