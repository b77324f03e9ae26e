package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/davral/wordforge/internal/space"
)

// Config holds the optional file-based settings. Every field can be
// overridden from the command line; the file exists so long-running jobs can
// keep their output target, rendering and checkpoint settings in one place.
type Config struct {
	Output             string            `toml:"output"`              // output file path
	Prefix             string            `toml:"prefix"`              // prepended to every word
	Suffix             string            `toml:"suffix"`              // appended to every word
	CheckpointInterval int               `toml:"checkpoint_interval"` // persist progress every N words
	Throttle           int               `toml:"throttle"`            // words per second, 0 = unlimited
	Workers            int               `toml:"workers"`             // shard workers, 1 = single writer
	Classes            map[string]string `toml:"classes"`             // extra pattern classes, key = single rune
}

const (
	// DefaultOutput is the output path used when none is configured.
	DefaultOutput = "wordlist.txt"
	// DefaultCheckpointInterval is how often progress is persisted.
	DefaultCheckpointInterval = 10000
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output:             DefaultOutput,
		CheckpointInterval: DefaultCheckpointInterval,
		Workers:            1,
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.CheckpointInterval < 1 {
		return fmt.Errorf("checkpoint_interval must be at least 1 (got %d)", c.CheckpointInterval)
	}
	if c.Throttle < 0 {
		return fmt.Errorf("throttle must not be negative (got %d)", c.Throttle)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	for key, charset := range c.Classes {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("pattern class %q must be a single character", key)
		}
		if charset == "" {
			return fmt.Errorf("pattern class %q must not map to an empty charset", key)
		}
	}
	return nil
}

// PatternClasses returns the built-in class table with the configured
// classes merged on top. A configured class may override a built-in one.
func (c *Config) PatternClasses() map[rune]string {
	classes := space.DefaultClasses()
	for key, charset := range c.Classes {
		r, _ := utf8.DecodeRuneInString(key)
		classes[r] = charset
	}
	return classes
}
