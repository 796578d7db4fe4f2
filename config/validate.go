package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/revelaction/tagset/feature"
)

var (
	logLevels     = []string{"debug", "info", "warn", "error"}
	logFormats    = []string{"json", "text"}
	outputFormats = []string{"csv", "json", "sparse"}
)

// Validate checks the loaded values. Load calls it.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of %v (got %q)", logLevels, c.Log.Level)
	}

	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if c.Corpus.Path == "" {
		return fmt.Errorf("corpus.path is empty")
	}

	if c.Vocab.Path == "" {
		return fmt.Errorf("vocab.path is empty")
	}

	if err := c.Encode.validate(); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v (got %q)", outputFormats, c.Output.Format)
	}

	return nil
}

func (e *EncodeConfig) validate() error {
	if e.Workers < 1 {
		return fmt.Errorf("workers must be >= 1 (got %d)", e.Workers)
	}

	if e.MaxDenseBytes < 0 {
		return fmt.Errorf("max_dense_bytes must be >= 0 (got %d)", e.MaxDenseBytes)
	}

	if _, err := feature.ParsePolicy(e.Unknown); err != nil {
		return fmt.Errorf("unknown: %w", err)
	}

	return nil
}

// Policy returns the parsed unknown word policy. It is valid after Validate.
func (e EncodeConfig) Policy() feature.Policy {
	p, _ := feature.ParsePolicy(e.Unknown)
	return p
}
