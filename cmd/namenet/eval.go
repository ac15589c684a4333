package main

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/born-ml/namenet/internal/dataset"
	"github.com/born-ml/namenet/internal/nn"
)

func runEval(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	modelPath := fs.String("model", "./namenet.nnet", "Trained model path")
	cacheDir := fs.String("cache", "./cache", "Directory with the cached split")
	training := fs.Bool("training", false, "Evaluate on the training split instead of dev")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	net, enc, err := loadModel(*modelPath)
	if err != nil {
		return err
	}

	mode := dataset.Dev
	if *training {
		mode = dataset.Training
	}
	entries, err := dataset.ReadCache(*cacheDir, mode)
	if err != nil {
		return fmt.Errorf("read %s split: %w", mode, err)
	}
	logger.Printf("evaluating %s on %d %s entries", net, len(entries), mode)

	examples, err := enc.Examples(entries)
	if err != nil {
		return err
	}
	m, err := nn.Evaluate(net, examples)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: n=%d loss=%.4f accuracy=%.2f%%\n", mode, m.Count, m.Loss, 100*m.Accuracy)
	return nil
}
