package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
)

const (
	// TrainingFile is the cached training split.
	TrainingFile = "training.json"
	// DevFile is the cached dev split.
	DevFile = "dev.json"
)

// WriteCache stores both halves of a split as JSON in dir, creating dir if
// needed. A complete cache is never overwritten (ErrCacheExists); files left
// by an interrupted write are replaced.
//
// Each file is renamed into place only when fully written, and dev.json goes
// last, so ReadCache never sees a complete but half-written cache.
func WriteCache(dir string, train, dev []Entry) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	complete, err := cacheComplete(dir)
	if err != nil {
		return err
	}
	if complete {
		return fmt.Errorf("%w: %s", ErrCacheExists, dir)
	}

	if err := writeJSON(filepath.Join(dir, TrainingFile), train); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, DevFile), dev)
}

// ReadCache loads one half of a cached split. It returns ErrNoCache unless
// both cache files exist.
func ReadCache(dir string, mode Mode) ([]Entry, error) {
	complete, err := cacheComplete(dir)
	if err != nil {
		return nil, err
	}
	if !complete {
		return nil, ErrNoCache
	}

	trainPath := filepath.Join(dir, TrainingFile)
	devPath := filepath.Join(dir, DevFile)
	path := trainPath
	if mode == Dev {
		path = devPath
	}

	raw, err := os.ReadFile(path) //nolint:gosec // G304: cache path comes from the configured cache dir
	if err != nil {
		return nil, fmt.Errorf("read %s cache: %w", mode, err)
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s cache: %w", mode, err)
	}
	return entries, nil
}

func cacheComplete(dir string) (bool, error) {
	for _, name := range []string{TrainingFile, DevFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("stat cache: %w", err)
		}
	}
	return true, nil
}

func writeJSON(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeAtomic(path, raw, 0o640)
}

// Prepare returns the cached split from cacheDir, or builds one from the
// names files in namesDir and caches it.
func Prepare(namesDir, cacheDir string, devPercent int, r *rand.Rand, logger *log.Logger) (train, dev []Entry, err error) {
	logger = orDefault(logger)

	train, err = ReadCache(cacheDir, Training)
	if err == nil {
		dev, err = ReadCache(cacheDir, Dev)
	}
	switch {
	case err == nil:
		logger.Printf("using cached split: train=%d dev=%d", len(train), len(dev))
		return train, dev, nil
	case !errors.Is(err, ErrNoCache):
		return nil, nil, err
	}

	entries, err := LoadDir(namesDir, logger)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("%w: no entries in %s", ErrMalformed, namesDir)
	}

	train, dev = Split(entries, devPercent, r)
	if err := WriteCache(cacheDir, train, dev); err != nil {
		return nil, nil, err
	}
	logger.Printf("wrote split cache to %s: train=%d dev=%d", cacheDir, len(train), len(dev))
	return train, dev, nil
}
