package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/namenet/internal/features"
)

func runPredict(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	modelPath := fs.String("model", "./namenet.nnet", "Trained model path")
	year := fs.Int("year", 2000, "Birth year used as a feature")
	count := fs.Int("count", 0, "Birth count used as a feature")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stdout, "usage: namenet predict [-model path] [-year y] [-count n] name...")
		return errUsage
	}

	net, enc, err := loadModel(*modelPath)
	if err != nil {
		return err
	}

	for _, name := range fs.Args() {
		x, err := enc.Encode(name, *year, *count)
		if err != nil {
			return err
		}
		class, probs, err := net.Predict(x)
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "%s: %s", name, features.Class(class))
		for c, p := range probs {
			fmt.Fprintf(stdout, " %s=%.3f", features.Class(c), p)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}
