// Package config loads the settings for the ctrlpool command.
//
// Settings come from an optional YAML file; anything the file leaves out keeps
// its value from Default. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full command configuration.
type Config struct {
	Log    Log    `yaml:"log"`
	Queue  Queue  `yaml:"queue"`
	Buffer Buffer `yaml:"buffer"`
	Pool   Pool   `yaml:"pool"`
}

// Log selects the logger output.
type Log struct {
	// Level is a zerolog level name: trace, debug, info, warn, error, disabled.
	Level string `yaml:"level"`
	// Format is "console" for human-readable output or "json".
	Format string `yaml:"format"`
}

// Queue configures the unbounded queue run: Producers goroutines each push
// Items values to one consumer.
type Queue struct {
	Producers int `yaml:"producers"`
	Items     int `yaml:"items"`
}

// Buffer configures the bounded buffer run: a producer loop at Frequency Hz
// feeding a Capacity-sized buffer whose consumer takes ConsumerDelay per item.
type Buffer struct {
	Capacity      int           `yaml:"capacity"`
	Frequency     float64       `yaml:"frequency"`
	Duration      time.Duration `yaml:"duration"`
	ConsumerDelay time.Duration `yaml:"consumer_delay"`
}

// Pool configures the thread pool run. Workers == 0 means one per CPU.
// TerminateAfter > 0 terminates the pool that long after submission starts.
type Pool struct {
	Workers        int           `yaml:"workers"`
	Jobs           int           `yaml:"jobs"`
	JobDuration    time.Duration `yaml:"job_duration"`
	TerminateAfter time.Duration `yaml:"terminate_after"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Queue: Queue{
			Producers: 4,
			Items:     100_000,
		},
		Buffer: Buffer{
			Capacity:      8,
			Frequency:     1000,
			Duration:      2 * time.Second,
			ConsumerDelay: 5 * time.Millisecond,
		},
		Pool: Pool{
			Workers:     0,
			Jobs:        100,
			JobDuration: time.Millisecond,
		},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}
	if c.Queue.Producers < 1 {
		errs = append(errs, errors.New("queue.producers must be at least 1"))
	}
	if c.Queue.Items < 0 {
		errs = append(errs, errors.New("queue.items must not be negative"))
	}
	if c.Buffer.Capacity < 1 {
		errs = append(errs, errors.New("buffer.capacity must be at least 1"))
	}
	if c.Buffer.Frequency <= 0 {
		errs = append(errs, errors.New("buffer.frequency must be positive"))
	}
	if c.Buffer.Duration <= 0 {
		errs = append(errs, errors.New("buffer.duration must be positive"))
	}
	if c.Buffer.ConsumerDelay < 0 {
		errs = append(errs, errors.New("buffer.consumer_delay must not be negative"))
	}
	if c.Pool.Workers < 0 {
		errs = append(errs, errors.New("pool.workers must not be negative"))
	}
	if c.Pool.Jobs < 0 {
		errs = append(errs, errors.New("pool.jobs must not be negative"))
	}
	if c.Pool.JobDuration < 0 || c.Pool.TerminateAfter < 0 {
		errs = append(errs, errors.New("pool durations must not be negative"))
	}
	return errors.Join(errs...)
}
