// Package main provides the namenet CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/born-ml/namenet/internal/serialization"
)

const version = "v" + serialization.Version

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "namenet: ", log.LstdFlags)
	if err := run(ctx, os.Args[1:], os.Stdout, logger); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		logger.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	if len(args) == 0 {
		printUsage(stdout)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "train":
		return runTrain(ctx, rest, stdout, logger)
	case "predict":
		return runPredict(rest, stdout)
	case "eval":
		return runEval(rest, stdout, logger)
	case "metadata":
		return runMetadata(rest, stdout, logger)
	case "clean":
		return runClean(rest, stdout, logger)
	case "version":
		fmt.Fprintf(stdout, "namenet %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stdout, "unknown command %q\n\n", cmd)
		printUsage(stdout)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "namenet %s - first-name classifier\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train a network on the names data")
	fmt.Fprintln(w, "  predict    Classify one or more names with a trained network")
	fmt.Fprintln(w, "  eval       Report loss and accuracy on the cached dev split")
	fmt.Fprintln(w, "  metadata   Print statistics about the names data")
	fmt.Fprintln(w, "  clean      Drop malformed lines from the names files")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'namenet <command> -h' for command flags.")
}
