// Package config provides configuration loading and merging for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Environment variable names read when the config file leaves a value unset.
const (
	EnvAPIKey      = "XAI_API_KEY"
	EnvQdrantAddr  = "QDRANT_ADDR"
	EnvDataDir     = "JOB_AGENT_DATA_DIR"
	DefaultDataDir = "data"
)

// Config is the CLI configuration, loadable from a JSON file. All fields are
// optional; missing values fall back to env vars or built-in defaults.
type Config struct {
	// Paths
	DataDir   string `json:"data_dir,omitempty"`   // Root of the record store (contains jobs/ and master/)
	MasterDir string `json:"master_dir,omitempty"` // Master profile directory; defaults to <data_dir>/master

	// LLM provider
	APIKey         string  `json:"api_key,omitempty"`         // Provider API key; env var wins when set
	BaseURL        string  `json:"base_url,omitempty"`        // OpenAI-compatible endpoint
	Model          string  `json:"model,omitempty"`           // Chat model
	EmbeddingModel string  `json:"embedding_model,omitempty"` // Embedding model for duplicate checks
	Temperature    float64 `json:"temperature,omitempty"`

	// Duplicate check
	QdrantAddr   string  `json:"qdrant_addr,omitempty"`
	Collection   string  `json:"collection,omitempty"`
	DupThreshold float64 `json:"dup_threshold,omitempty"`

	// Behavior
	LogLevel string `json:"log_level,omitempty"` // logrus level name; --verbose flag overrides
}

// Load reads a JSON config file. An empty path returns a zero Config so env
// and defaults still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.DupThreshold < 0 || c.DupThreshold > 1 {
		return fmt.Errorf("config error: 'dup_threshold' must be between 0 and 1")
	}
	if c.MasterDir != "" {
		if _, err := os.Stat(c.MasterDir); os.IsNotExist(err) {
			return fmt.Errorf("config error: master dir not found: %s", c.MasterDir)
		}
	}
	return nil
}

// Resolved fills unset fields from environment variables and defaults. File
// values win over env, env wins over defaults; the API key is the exception
// because keys belong in the environment, not on disk.
func (c *Config) Resolved() Config {
	result := *c

	if key := os.Getenv(EnvAPIKey); key != "" {
		result.APIKey = key
	}
	if result.DataDir == "" {
		result.DataDir = os.Getenv(EnvDataDir)
	}
	if result.DataDir == "" {
		result.DataDir = DefaultDataDir
	}
	if result.MasterDir == "" {
		result.MasterDir = filepath.Join(result.DataDir, "master")
	}
	if result.QdrantAddr == "" {
		result.QdrantAddr = os.Getenv(EnvQdrantAddr)
	}
	if result.QdrantAddr == "" {
		result.QdrantAddr = "localhost:6334"
	}
	if result.LogLevel == "" {
		result.LogLevel = "info"
	}

	return result
}

// JobsDir returns the directory holding the per-job record folders.
func (c *Config) JobsDir() string {
	return filepath.Join(c.DataDir, "jobs")
}
