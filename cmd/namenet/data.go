package main

import (
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/born-ml/namenet/internal/dataset"
)

func runMetadata(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("metadata", flag.ContinueOnError)
	namesDir := fs.String("names", "./names", "Directory with yobYYYY.txt files")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	entries, err := dataset.LoadDir(*namesDir, logger)
	if err != nil {
		return fmt.Errorf("the data to be traversed couldn't be read: %w", err)
	}

	minYear, maxYear := 0, 0
	for i, e := range entries {
		if i == 0 || e.Year < minYear {
			minYear = e.Year
		}
		if i == 0 || e.Year > maxYear {
			maxYear = e.Year
		}
	}

	fmt.Fprintf(stdout, "Entries: %d\n", len(entries))
	fmt.Fprintf(stdout, "Years: %d-%d\n", minYear, maxYear)
	fmt.Fprintf(stdout, "Longest name: %d\n", dataset.LongestName(entries))
	return nil
}

func runClean(args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	namesDir := fs.String("names", "./names", "Directory with yobYYYY.txt files")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	dropped, err := dataset.CleanDir(*namesDir, logger)
	if err != nil {
		return fmt.Errorf("the data to be curated couldn't be cleaned: %w", err)
	}

	fmt.Fprintf(stdout, "Dropped %d invalid lines\n", dropped)
	return nil
}
