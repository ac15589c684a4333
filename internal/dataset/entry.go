// Package dataset loads the yearly baby-name files (yobYYYY.txt) and
// manages the cached train/dev split.
//
// Each line of a names file has the form "Name,G,Count" where G is "M" or
// "F" and Count is the number of births that year.
package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when a names line or file name cannot be parsed.
	ErrMalformed = errors.New("malformed names data")
	// ErrNoCache is returned by ReadCache when no complete cache exists.
	ErrNoCache = errors.New("no dataset cache")
	// ErrCacheExists is returned by WriteCache when a complete cache is already present.
	ErrCacheExists = errors.New("dataset cache already exists")
)

// Gender is the recorded sex of a name entry.
type Gender uint8

const (
	Male Gender = iota
	Female
)

// String returns "Male" or "Female".
func (g Gender) String() string {
	if g == Male {
		return "Male"
	}
	return "Female"
}

// MarshalText implements encoding.TextMarshaler.
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gender) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Male":
		*g = Male
	case "Female":
		*g = Female
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrMalformed, text)
	}
	return nil
}

// Entry is one name/year/gender record.
type Entry struct {
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Gender     Gender `json:"gender"`
	Popularity int    `json:"popularity"`
}

// Mode selects which half of the cached split to read.
type Mode int

const (
	Training Mode = iota
	Dev
)

// String returns "training" or "dev".
func (m Mode) String() string {
	if m == Dev {
		return "dev"
	}
	return "training"
}
