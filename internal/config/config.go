// Package config loads namenet run configuration from YAML and applies
// command-line overrides.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// Config captures the runtime knobs for a training run.
type Config struct {
	LearningRate float64 `yaml:"learning_rate"`
	Hidden       []int   `yaml:"hidden"`
	Epochs       int     `yaml:"epochs"`
	BatchSize    int     `yaml:"batch_size"`
	Workers      int     `yaml:"workers"`
	Seed         uint64  `yaml:"seed"`
	DevPercent   int     `yaml:"dev_percent"`
	NamesDir     string  `yaml:"names_dir"`
	CacheDir     string  `yaml:"cache_dir"`
	ModelPath    string  `yaml:"model_path"`
	Tokenizer    string  `yaml:"tokenizer"`
	MaxTokens    int     `yaml:"max_tokens"`
	LogEvery     int     `yaml:"log_every"`
	GradientClip float64 `yaml:"gradient_clip"`
}

// Overrides captures CLI supplied values. Zero values leave the config
// untouched; callers that need to force a zero (dev_percent) set the field
// on Config directly.
type Overrides struct {
	LearningRate float64
	Hidden       []int
	Epochs       int
	BatchSize    int
	Workers      int
	Seed         uint64
	DevPercent   int
	NamesDir     string
	CacheDir     string
	ModelPath    string
	Tokenizer    string
	MaxTokens    int
	LogEvery     int
	GradientClip float64
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LearningRate: 0.05,
		Hidden:       []int{10},
		Epochs:       10,
		BatchSize:    32,
		DevPercent:   1,
		NamesDir:     "./names",
		CacheDir:     "./cache",
		ModelPath:    "./namenet.nnet",
		Tokenizer:    "char",
		MaxTokens:    32,
		LogEvery:     100,
	}
}

// Load reads a Config from YAML on top of Default and validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // G304: config path is user-provided by design
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyOverrides updates c using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.LearningRate > 0 {
		c.LearningRate = o.LearningRate
	}
	if len(o.Hidden) > 0 {
		c.Hidden = append([]int(nil), o.Hidden...)
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.BatchSize > 0 {
		c.BatchSize = o.BatchSize
	}
	if o.Workers > 0 {
		c.Workers = o.Workers
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.DevPercent > 0 {
		c.DevPercent = o.DevPercent
	}
	if o.NamesDir != "" {
		c.NamesDir = o.NamesDir
	}
	if o.CacheDir != "" {
		c.CacheDir = o.CacheDir
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.Tokenizer != "" {
		c.Tokenizer = o.Tokenizer
	}
	if o.MaxTokens > 0 {
		c.MaxTokens = o.MaxTokens
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
	if o.GradientClip > 0 {
		c.GradientClip = o.GradientClip
	}
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalid)
	}
	if c.LearningRate <= 0 || math.IsInf(c.LearningRate, 0) || math.IsNaN(c.LearningRate) {
		return fmt.Errorf("%w: learning_rate must be > 0 (got %v)", ErrInvalid, c.LearningRate)
	}
	if len(c.Hidden) == 0 {
		return fmt.Errorf("%w: hidden must list at least one layer", ErrInvalid)
	}
	for i, n := range c.Hidden {
		if n <= 0 {
			return fmt.Errorf("%w: hidden[%d] must be > 0 (got %d)", ErrInvalid, i, n)
		}
	}
	if c.Epochs <= 0 {
		return fmt.Errorf("%w: epochs must be > 0 (got %d)", ErrInvalid, c.Epochs)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be > 0 (got %d)", ErrInvalid, c.BatchSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0 (got %d)", ErrInvalid, c.Workers)
	}
	if c.DevPercent < 0 || c.DevPercent > 100 {
		return fmt.Errorf("%w: dev_percent must be within [0, 100] (got %d)", ErrInvalid, c.DevPercent)
	}
	if c.NamesDir == "" && c.CacheDir == "" {
		return fmt.Errorf("%w: names_dir or cache_dir must be set", ErrInvalid)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("%w: model_path must be set", ErrInvalid)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens must be > 0 (got %d)", ErrInvalid, c.MaxTokens)
	}
	if c.GradientClip < 0 {
		return fmt.Errorf("%w: gradient_clip must be >= 0 (got %v)", ErrInvalid, c.GradientClip)
	}
	if c.Tokenizer == "" {
		c.Tokenizer = "char"
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 100
	}
	return nil
}
