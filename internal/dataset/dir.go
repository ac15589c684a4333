package dataset

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NameFiles returns the paths of all *.txt files (any case) directly in dir, sorted.
func NameFiles(dir string) ([]string, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list names dir: %w", err)
	}

	var files []string
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !strings.EqualFold(filepath.Ext(de.Name()), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, de.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// LoadDir parses every names file in dir. Malformed lines are logged and skipped.
func LoadDir(dir string, logger *log.Logger) ([]Entry, error) {
	logger = orDefault(logger)

	files, err := NameFiles(dir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, path := range files {
		year, err := YearFromFilename(path)
		if err != nil {
			return nil, err
		}

		parsed, err := parseFile(path, year, logger)
		if err != nil {
			return nil, err
		}
		entries = append(entries, parsed...)
	}

	logger.Printf("loaded %d entries from %d files in %s", len(entries), len(files), dir)
	return entries, nil
}

func parseFile(path string, year int, logger *log.Logger) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // G304: names files come from the configured data dir
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ParseNames(f, year, func(line string) {
		logger.Printf("WARNING: invalid line %q in file %q", line, path)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// CleanDir rewrites every names file in dir, dropping lines CleanLine rejects.
// It returns the number of dropped lines.
func CleanDir(dir string, logger *log.Logger) (int, error) {
	logger = orDefault(logger)

	files, err := NameFiles(dir)
	if err != nil {
		return 0, err
	}

	dropped := 0
	for _, path := range files {
		n, err := cleanFile(path, logger)
		if err != nil {
			return dropped, err
		}
		dropped += n
	}
	return dropped, nil
}

func cleanFile(path string, logger *log.Logger) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	raw, err := os.ReadFile(path) //nolint:gosec // G304: names files come from the configured data dir
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	logger.Printf("cleaning %s", path)
	kept := make([]string, 0, strings.Count(string(raw), "\n")+1)
	dropped := 0
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimRight(line, "\r") == "" {
			continue
		}
		clean, ok := CleanLine(line)
		if !ok {
			logger.Printf("WARNING: dropping invalid line %q in file %q", line, path)
			dropped++
			continue
		}
		kept = append(kept, clean)
	}

	if err := writeAtomic(path, []byte(strings.Join(kept, "\n")), info.Mode().Perm()); err != nil {
		return dropped, err
	}
	return dropped, nil
}

// writeAtomic replaces path through a temp file in the same directory.
func writeAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func orDefault(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
