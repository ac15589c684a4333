package dataset

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// ParseNames reads "Name,G,Count" lines from r.
//
// Blank lines are skipped. Lines without exactly two commas are passed to
// warn (when non-nil) and skipped. Any gender other than "M" is Female.
// A non-numeric count is an error.
func ParseNames(r io.Reader, year int, warn func(line string)) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.Count(line, ",") != 2 {
			if warn != nil {
				warn(line)
			}
			continue
		}

		parts := strings.Split(line, ",")
		gender := Female
		if parts[1] == "M" {
			gender = Male
		}
		count, err := strconv.Atoi(parts[2])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: line %d: count %q", ErrMalformed, lineNo, parts[2])
		}

		entries = append(entries, Entry{
			Name:       parts[0],
			Year:       year,
			Gender:     gender,
			Popularity: count,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read names: %w", err)
	}

	return entries, nil
}

// CleanLine checks one names line. It returns the line without carriage
// returns and true when the name and gender fields are ASCII letters and the
// count field is all digits.
func CleanLine(line string) (string, bool) {
	line = strings.ReplaceAll(line, "\r", "")
	if strings.Count(line, ",") != 2 {
		return "", false
	}

	parts := strings.Split(line, ",")
	if !isAlpha(parts[0]) || !isAlpha(parts[1]) || !isDigits(parts[2]) {
		return "", false
	}
	return line, true
}

// YearFromFilename extracts the year from names like "yob1990.txt".
func YearFromFilename(name string) (int, error) {
	stem, _, _ := strings.Cut(filepath.Base(name), ".")
	if len(stem) <= 3 {
		return 0, fmt.Errorf("%w: file name %q has no year", ErrMalformed, name)
	}

	year, err := strconv.Atoi(stem[3:])
	if err != nil {
		return 0, fmt.Errorf("%w: file name %q: %w", ErrMalformed, name, err)
	}
	return year, nil
}

// LongestName returns the length in bytes of the longest name.
func LongestName(entries []Entry) int {
	longest := 0
	for _, e := range entries {
		longest = max(longest, len(e.Name))
	}
	return longest
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
