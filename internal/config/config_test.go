package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidJSON(t *testing.T) {
	content := `{
		"data_dir": "/srv/jobs-data",
		"model": "grok-3",
		"temperature": 0.4,
		"dup_threshold": 0.9,
		"log_level": "debug"
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/srv/jobs-data", cfg.DataDir)
	assert.Equal(t, "grok-3", cfg.Model)
	assert.InDelta(t, 0.4, cfg.Temperature, 1e-9)
	assert.InDelta(t, 0.9, cfg.DupThreshold, 1e-9)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	_, err = Load(tmpFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_EmptyPathIsZeroConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero config", Config{}, ""},
		{"valid ranges", Config{Temperature: 0.7, DupThreshold: 0.82}, ""},
		{"temperature too high", Config{Temperature: 2.5}, "temperature"},
		{"negative threshold", Config{DupThreshold: -0.1}, "dup_threshold"},
		{"missing master dir", Config{MasterDir: "/does/not/exist"}, "master dir not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolvedDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvQdrantAddr, "")

	resolved := (&Config{}).Resolved()

	assert.Equal(t, DefaultDataDir, resolved.DataDir)
	assert.Equal(t, filepath.Join(DefaultDataDir, "master"), resolved.MasterDir)
	assert.Equal(t, "localhost:6334", resolved.QdrantAddr)
	assert.Equal(t, "info", resolved.LogLevel)
}

func TestResolvedEnvFallback(t *testing.T) {
	t.Setenv(EnvAPIKey, "test-key")
	t.Setenv(EnvDataDir, "/env/data")
	t.Setenv(EnvQdrantAddr, "qdrant.internal:6334")

	resolved := (&Config{}).Resolved()

	assert.Equal(t, "test-key", resolved.APIKey)
	assert.Equal(t, "/env/data", resolved.DataDir)
	assert.Equal(t, filepath.Join("/env/data", "master"), resolved.MasterDir)
	assert.Equal(t, "qdrant.internal:6334", resolved.QdrantAddr)
}

func TestResolvedEnvKeyWinsOverFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")

	resolved := (&Config{APIKey: "file-key"}).Resolved()
	assert.Equal(t, "env-key", resolved.APIKey)
}

func TestResolvedFileValuesWin(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvDataDir, "/env/data")

	resolved := (&Config{DataDir: "/file/data", LogLevel: "warn"}).Resolved()

	assert.Equal(t, "/file/data", resolved.DataDir)
	assert.Equal(t, "warn", resolved.LogLevel)
}

func TestJobsDir(t *testing.T) {
	cfg := Config{DataDir: "/srv/jobs-data"}
	assert.Equal(t, filepath.Join("/srv/jobs-data", "jobs"), cfg.JobsDir())
}
