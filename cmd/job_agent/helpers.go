package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/renameio/v2"

	"github.com/jonathan/job-pipeline/internal/llm"
	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/jonathan/job-pipeline/internal/store"
	"github.com/jonathan/job-pipeline/internal/tracker"
)

// artifactTimestamp is the layout for versioned artifact filenames.
const artifactTimestamp = "20060102_150405"

func openStore() *store.Store {
	return store.New(cfg.JobsDir())
}

func openTracker() *tracker.Tracker {
	return tracker.New(openStore())
}

func loadProfile() (*profile.Profile, error) {
	p, err := profile.Load(cfg.MasterDir)
	if err != nil {
		return nil, fmt.Errorf("loading master profile from %s: %w", cfg.MasterDir, err)
	}
	return p, nil
}

func newLLMClient() (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key: set %s or api_key in the config file", "XAI_API_KEY")
	}

	llmCfg := llm.DefaultConfig().WithModel(cfg.Model)
	if cfg.BaseURL != "" {
		llmCfg.BaseURL = cfg.BaseURL
	}
	if cfg.EmbeddingModel != "" {
		llmCfg.EmbeddingModel = cfg.EmbeddingModel
	}
	if cfg.Temperature > 0 {
		llmCfg = llmCfg.WithTemperature(float32(cfg.Temperature))
	}

	return llm.NewClient(llmCfg, cfg.APIKey)
}

// writeArtifact writes an artifact atomically, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeYAMLArtifact marshals v to YAML and writes it atomically.
func writeYAMLArtifact(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return writeArtifact(path, data)
}

func timestamp() string {
	return time.Now().Format(artifactTimestamp)
}

// defaultVersion returns the version string used when --version is omitted.
func defaultVersion() string {
	return "v" + time.Now().Format("20060102")
}
