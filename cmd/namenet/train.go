package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/born-ml/namenet/internal/config"
	"github.com/born-ml/namenet/internal/dataset"
	"github.com/born-ml/namenet/internal/features"
	"github.com/born-ml/namenet/internal/nn"
	"github.com/born-ml/namenet/internal/tokenizer"
	"github.com/born-ml/namenet/internal/trainer"
)

const (
	metaTokenizer = "tokenizer"
	metaMaxTokens = "max_tokens"
)

// intList parses "16,8" style flag values.
type intList []int

func (l *intList) String() string {
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	*l = nil
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("parse %q: %w", part, err)
		}
		*l = append(*l, v)
	}
	return nil
}

func runTrain(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (defaults are used when empty)")
	var hidden intList
	fs.Var(&hidden, "hidden", "Comma-separated hidden layer sizes")
	lr := fs.Float64("lr", 0, "Learning rate")
	epochs := fs.Int("epochs", 0, "Number of epochs")
	batchSize := fs.Int("batch-size", 0, "Mini-batch size")
	workers := fs.Int("workers", 0, "Goroutines per mini-batch")
	seed := fs.Uint64("seed", 0, "PRNG seed")
	devPercent := fs.Int("dev-percent", 0, "Share of entries held out for the dev split")
	namesDir := fs.String("names", "", "Directory with yobYYYY.txt files")
	cacheDir := fs.String("cache", "", "Directory for the cached split")
	modelPath := fs.String("model", "", "Output model path")
	tok := fs.String("tokenizer", "", "Tokenizer: char or a tiktoken encoding")
	maxTokens := fs.Int("max-tokens", 0, "Token slots per name")
	logEvery := fs.Int("log-every", 0, "Log every N steps")
	clip := fs.Float64("clip", 0, "Global gradient-norm clip")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	cfg.ApplyOverrides(config.Overrides{
		LearningRate: *lr,
		Hidden:       hidden,
		Epochs:       *epochs,
		BatchSize:    *batchSize,
		Workers:      *workers,
		Seed:         *seed,
		DevPercent:   *devPercent,
		NamesDir:     *namesDir,
		CacheDir:     *cacheDir,
		ModelPath:    *modelPath,
		Tokenizer:    *tok,
		MaxTokens:    *maxTokens,
		LogEvery:     *logEvery,
		GradientClip: *clip,
	})
	// Zero is a meaningful dev share, so an explicit flag always wins.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "dev-percent" {
			cfg.DevPercent = *devPercent
		}
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	trainEntries, devEntries, err := dataset.Prepare(cfg.NamesDir, cfg.CacheDir, cfg.DevPercent, r, logger)
	if err != nil {
		return err
	}

	tk, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		return err
	}
	enc := features.NewEncoder(tk, cfg.MaxTokens)
	trainSet, err := enc.Examples(trainEntries)
	if err != nil {
		return err
	}
	devSet, err := enc.Examples(devEntries)
	if err != nil {
		return err
	}

	b := nn.NewNetworkBuilder().
		LearningRate(cfg.LearningRate).
		InputSize(enc.InputSize()).
		OutputSize(features.NumClasses).
		GradientClip(cfg.GradientClip).
		Workers(cfg.Workers).
		Rand(r)
	for _, n := range cfg.Hidden {
		b = b.Hidden(nn.NewLayerBuilder().Neurons(n))
	}
	net, err := b.Build()
	if err != nil {
		return err
	}

	summary, err := trainer.Run(ctx, trainer.RunConfig{
		Epochs:         cfg.Epochs,
		BatchSize:      cfg.BatchSize,
		LogEvery:       cfg.LogEvery,
		Seed:           cfg.Seed,
		CheckpointPath: cfg.ModelPath,
		Meta:           encoderMeta(enc),
		Logger:         logger,
	}, net, trainSet, devSet)
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	if n := len(summary.Epochs); n > 0 {
		last := summary.Epochs[n-1]
		fmt.Fprintf(stdout, "run %s: %d steps, dev loss %.4f, dev accuracy %.2f%%, saved to %s\n",
			summary.RunID, summary.Steps, last.Dev.Loss, 100*last.Dev.Accuracy, cfg.ModelPath)
	}
	return nil
}

func encoderMeta(enc *features.Encoder) map[string]string {
	return map[string]string{
		metaTokenizer: enc.Tokenizer().Name(),
		metaMaxTokens: strconv.Itoa(enc.MaxTokens()),
	}
}

// encoderFor rebuilds the feature encoder a saved network was trained with.
func encoderFor(meta nn.Meta) (*features.Encoder, error) {
	name := meta.Extra[metaTokenizer]
	maxTokens, err := strconv.Atoi(meta.Extra[metaMaxTokens])
	if err != nil {
		return nil, fmt.Errorf("model has no usable %s: %w", metaMaxTokens, err)
	}
	tk, err := tokenizer.New(name)
	if err != nil {
		return nil, err
	}
	return features.NewEncoder(tk, maxTokens), nil
}

// loadModel reads a network and checks it matches its feature encoder.
func loadModel(path string) (*nn.Network, *features.Encoder, error) {
	net, meta, err := nn.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	enc, err := encoderFor(meta)
	if err != nil {
		return nil, nil, err
	}
	if net.InputSize() != enc.InputSize() || net.OutputSize() != features.NumClasses {
		return nil, nil, fmt.Errorf("%w: %s does not match its feature encoder", nn.ErrInvalidModel, path)
	}
	return net, enc, nil
}
