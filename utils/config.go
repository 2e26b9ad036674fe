package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the simulator
type Config struct {
	Rows           int           `json:"rows"`
	Cols           int           `json:"cols"`
	FrameRate      time.Duration `json:"frame_rate"`
	Seed           int64         `json:"seed"`
	UseMemoryPool  bool          `json:"use_memory_pool"`
	MaxGenerations int           `json:"max_generations"`
	HistorySize    int           `json:"history_size"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Rows:           50,
		Cols:           50,
		FrameRate:      16 * time.Millisecond, // roughly one animation frame
		Seed:           0,                     // 0 seeds from the clock
		UseMemoryPool:  true,
		MaxGenerations: 100,
		HistorySize:    5,
	}
}

// LoadConfig loads configuration from JSON file over the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid configuration in file: %+v", filename)
	}

	return config, nil
}

// Validate rejects configurations the simulator cannot run with
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("[Config.Validate] grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.FrameRate <= 0 {
		return errors.Errorf("[Config.Validate] frame_rate must be positive, got %v", c.FrameRate)
	}
	if c.MaxGenerations < 0 {
		return errors.Errorf("[Config.Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	}
	if c.HistorySize < 0 {
		return errors.Errorf("[Config.Validate] history_size must not be negative, got %d", c.HistorySize)
	}
	return nil
}

// SeedOrNow returns the configured seed, or the current time when it is 0
func (c Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
