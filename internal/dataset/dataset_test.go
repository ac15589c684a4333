package dataset

import (
	"bytes"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNames(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func makeEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{Name: string(rune('A' + i%26)), Year: 1880 + i, Popularity: i}
	}
	return entries
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeNames(t, dir, "yob1880.txt", "Mary,F,7065\nJohn,M,9655\n")
	writeNames(t, dir, "yob1881.TXT", "Anna,F,2604\nbad\n")
	writeNames(t, dir, "README.md", "not,a,names file")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o750))

	var logs bytes.Buffer
	entries, err := LoadDir(dir, log.New(&logs, "", 0))
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, 1880, entries[0].Year)
	assert.Equal(t, Entry{Name: "Anna", Year: 1881, Gender: Female, Popularity: 2604}, entries[2])
	assert.Contains(t, logs.String(), `invalid line "bad"`)
}

func TestLoadDir_BadFilename(t *testing.T) {
	dir := t.TempDir()
	writeNames(t, dir, "names.txt", "Mary,F,1\n")

	_, err := LoadDir(dir, log.New(&bytes.Buffer{}, "", 0))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestCleanDir(t *testing.T) {
	dir := t.TempDir()
	path := writeNames(t, dir, "yob1900.txt", "Mary,F,10\r\nJo3,M,5\nAnna,F,x\n\nEve,F,3\n")

	dropped, err := CleanDir(dir, log.New(&bytes.Buffer{}, "", 0))
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Mary,F,10\nEve,F,3", string(raw))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSplit(t *testing.T) {
	entries := makeEntries(250)
	original := append([]Entry(nil), entries...)

	train, dev := Split(entries, 1, rand.New(rand.NewPCG(1, 2)))
	assert.Len(t, dev, 250/100+1)
	assert.Len(t, train, 250-len(dev))
	assert.Equal(t, original, entries, "input must not be reordered")

	assert.ElementsMatch(t, original, append(append([]Entry(nil), train...), dev...))
}

func TestSplit_EdgeCases(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))

	train, dev := Split(nil, 10, r)
	assert.Nil(t, train)
	assert.Nil(t, dev)

	train, dev = Split(makeEntries(1), 0, r)
	assert.Empty(t, train)
	assert.Len(t, dev, 1)

	train, dev = Split(makeEntries(10), 100, r)
	assert.Empty(t, train)
	assert.Len(t, dev, 10)
}

func TestSplit_Deterministic(t *testing.T) {
	entries := makeEntries(50)
	a, _ := Split(entries, 10, rand.New(rand.NewPCG(9, 9)))
	b, _ := Split(entries, 10, rand.New(rand.NewPCG(9, 9)))
	assert.Equal(t, a, b)
}

func TestCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")

	_, err := ReadCache(dir, Training)
	require.ErrorIs(t, err, ErrNoCache)

	train := []Entry{{Name: "Mary", Year: 1880, Gender: Female, Popularity: 7065}}
	dev := []Entry{{Name: "John", Year: 1881, Gender: Male, Popularity: 9655}}
	require.NoError(t, WriteCache(dir, train, dev))

	got, err := ReadCache(dir, Training)
	require.NoError(t, err)
	assert.Equal(t, train, got)

	got, err = ReadCache(dir, Dev)
	require.NoError(t, err)
	assert.Equal(t, dev, got)

	raw, err := os.ReadFile(filepath.Join(dir, DevFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"gender":"Male"`)

	require.ErrorIs(t, WriteCache(dir, train, dev), ErrCacheExists)
}

func TestCache_PartialIsMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TrainingFile), []byte("[]"), 0o600))

	_, err := ReadCache(dir, Training)
	require.ErrorIs(t, err, ErrNoCache)
}

func TestWriteCache_ReplacesPartialCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TrainingFile), []byte(`[{"name":"Stale"`), 0o600))

	train := []Entry{{Name: "Mary", Year: 1880, Gender: Female, Popularity: 7065}}
	dev := []Entry{{Name: "John", Year: 1881, Gender: Male, Popularity: 9655}}
	require.NoError(t, WriteCache(dir, train, dev))

	got, err := ReadCache(dir, Training)
	require.NoError(t, err)
	assert.Equal(t, train, got)

	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestPrepare_RecoversFromPartialCache(t *testing.T) {
	namesDir := t.TempDir()
	cacheDir := t.TempDir()
	writeNames(t, namesDir, "yob1950.txt", "Mary,F,10\nJohn,M,8\nAnna,F,6\nPaul,M,4\n")
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, TrainingFile), []byte("[]"), 0o600))
	logger := log.New(&bytes.Buffer{}, "", 0)

	train, dev, err := Prepare(namesDir, cacheDir, 25, rand.New(rand.NewPCG(1, 1)), logger)
	require.NoError(t, err)
	assert.Len(t, train, 2)
	assert.Len(t, dev, 2)

	cached, err := ReadCache(cacheDir, Dev)
	require.NoError(t, err)
	assert.Equal(t, dev, cached)
}

func TestPrepare(t *testing.T) {
	namesDir := t.TempDir()
	cacheDir := filepath.Join(t.TempDir(), "cache")
	writeNames(t, namesDir, "yob1950.txt", "Mary,F,10\nJohn,M,8\nAnna,F,6\nPaul,M,4\n")
	logger := log.New(&bytes.Buffer{}, "", 0)

	train, dev, err := Prepare(namesDir, cacheDir, 25, rand.New(rand.NewPCG(1, 1)), logger)
	require.NoError(t, err)
	assert.Len(t, dev, 2)
	assert.Len(t, train, 2)

	// Second call reads the cache even when the names are gone.
	require.NoError(t, os.Remove(filepath.Join(namesDir, "yob1950.txt")))
	train2, dev2, err := Prepare(namesDir, cacheDir, 25, rand.New(rand.NewPCG(2, 2)), logger)
	require.NoError(t, err)
	assert.Equal(t, train, train2)
	assert.Equal(t, dev, dev2)
}
