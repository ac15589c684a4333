package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNames(t *testing.T) {
	input := "Mary,F,7065\r\nJohn,M,9655\n\nbroken line\nAnna,X,2604\nToo,many,commas,1\n"

	var warnings []string
	entries, err := ParseNames(strings.NewReader(input), 1880, func(line string) {
		warnings = append(warnings, line)
	})
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "Mary", Year: 1880, Gender: Female, Popularity: 7065},
		{Name: "John", Year: 1880, Gender: Male, Popularity: 9655},
		{Name: "Anna", Year: 1880, Gender: Female, Popularity: 2604},
	}, entries)
	assert.Equal(t, []string{"broken line", "Too,many,commas,1"}, warnings)
}

func TestParseNames_BadCount(t *testing.T) {
	_, err := ParseNames(strings.NewReader("Mary,F,lots\n"), 1900, nil)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "line 1")
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{line: "Mary,F,7065", want: "Mary,F,7065", ok: true},
		{line: "Mary,F,7065\r", want: "Mary,F,7065", ok: true},
		{line: "Mary2,F,7065"},
		{line: "Mary,F,70x5"},
		{line: "Ma-ry,F,7065"},
		{line: ",F,7065"},
		{line: "Mary,F"},
		{line: "Mary,F,1,2"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := CleanLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearFromFilename(t *testing.T) {
	year, err := YearFromFilename("/data/names/yob1990.txt")
	require.NoError(t, err)
	assert.Equal(t, 1990, year)

	year, err = YearFromFilename("yob2023.TXT")
	require.NoError(t, err)
	assert.Equal(t, 2023, year)

	for _, bad := range []string{"yob.txt", "names.txt", "x.txt"} {
		_, err := YearFromFilename(bad)
		assert.ErrorIs(t, err, ErrMalformed, bad)
	}
}

func TestLongestName(t *testing.T) {
	assert.Zero(t, LongestName(nil))
	assert.Equal(t, 11, LongestName([]Entry{{Name: "Ann"}, {Name: "Christopher"}, {Name: "Bo"}}))
}
