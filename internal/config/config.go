// Package config loads run configuration from a TOML file. Every tunable the
// pipeline has (model sampling, retry policy, delays, schema generation) lives
// here so a run can be reproduced from its config file alone.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

type ProjectConfig struct {
	ID            string `toml:"id"`
	Dataset       string `toml:"dataset"`
	MetadataTable string `toml:"metadata_table"`
	ResultsTable  string `toml:"results_table"`
	Timezone      string `toml:"timezone"`
}

type StorageConfig struct {
	Bucket     string `toml:"bucket"`
	BasePrefix string `toml:"base_prefix"`
}

type ModelConfig struct {
	Name            string  `toml:"name"`
	Location        string  `toml:"location"`
	Temperature     float32 `toml:"temperature"`
	TopP            float32 `toml:"top_p"`
	MaxOutputTokens int32   `toml:"max_output_tokens"`
	Seed            int32   `toml:"seed"`
}

type RetryConfig struct {
	MaxAttempts  int `toml:"max_attempts"`
	DelaySeconds int `toml:"delay_seconds"`
}

type BatchConfig struct {
	SchemaVersion    string `toml:"schema_version"`
	ItemDelaySeconds int    `toml:"item_delay_seconds"`
}

// Config is the full run configuration.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Storage StorageConfig `toml:"storage"`
	Model   ModelConfig   `toml:"model"`
	Retry   RetryConfig   `toml:"retry"`
	Batch   BatchConfig   `toml:"batch"`
}

// Default returns the configuration used when no file overrides it. The
// sampling values pin the model down for reproducibility: near-zero
// temperature, a fixed seed.
func Default() Config {
	return Config{
		Project: ProjectConfig{
			Dataset:       "tiktok_data",
			MetadataTable: "tiktok_videos_metadata",
			ResultsTable:  "ai_results",
			Timezone:      "Asia/Jerusalem",
		},
		Storage: StorageConfig{
			Bucket:     "main_il",
			BasePrefix: "TIKTOK_samples/",
		},
		Model: ModelConfig{
			Name:            "gemini-1.5-pro-002",
			Location:        "us-central1",
			Temperature:     0.01,
			TopP:            0.99,
			MaxOutputTokens: 8000,
			Seed:            1,
		},
		Retry: RetryConfig{
			MaxAttempts:  5,
			DelaySeconds: 15,
		},
		Batch: BatchConfig{
			SchemaVersion:    "v1",
			ItemDelaySeconds: 1,
		},
	}
}

// Load reads a TOML config file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("Load: decoding %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields no run can do without.
func (c Config) Validate() error {
	if c.Project.ID == "" {
		return fmt.Errorf("Validate: project.id is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("Validate: storage.bucket is required")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("Validate: retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	if c.Batch.SchemaVersion == "" {
		return fmt.Errorf("Validate: batch.schema_version is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("Validate: %w", err)
	}
	return nil
}

// Location resolves the configured project timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Project.Timezone)
	if err != nil {
		return nil, fmt.Errorf("Location: loading timezone %q: %w", c.Project.Timezone, err)
	}
	return loc, nil
}

// RetryDelay returns the pause between transient-failure attempts.
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Retry.DelaySeconds) * time.Second
}

// ItemDelay returns the politeness pause between work items.
func (c Config) ItemDelay() time.Duration {
	return time.Duration(c.Batch.ItemDelaySeconds) * time.Second
}
