package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRecord creates a record folder with minimal metadata under dataDir.
func seedRecord(t *testing.T, dataDir, folder, company, role string) {
	t.Helper()
	recordDir := filepath.Join(dataDir, "jobs", folder)
	require.NoError(t, os.MkdirAll(recordDir, 0o755))

	meta := "uuid: " + folder[6:] + "-0000-0000-0000-000000000000\n" +
		"job_id: " + folder + "\n" +
		"company: " + company + "\n" +
		"role: " + role + "\n" +
		"created: \"2026-08-01T12:00:00Z\"\n" +
		"status: PENDING\n"
	require.NoError(t, os.WriteFile(filepath.Join(recordDir, "metadata.yaml"), []byte(meta), 0o644))
}

func TestDecideCommand_FlagValidation(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	seedRecord(t, dataDir, "00001_deadbeef", "Acme", "Engineer")

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing decision flag",
			args:        []string{"decide", "--id", "00001_deadbeef"},
			errorString: "exactly one of",
		},
		{
			name:        "Conflicting decision flags",
			args:        []string{"decide", "--id", "00001_deadbeef", "--accept", "--reject"},
			errorString: "exactly one of",
		},
		{
			name:        "Missing --id",
			args:        []string{"decide", "--accept"},
			errorString: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, append(tt.args, "--data-dir", dataDir)...)
			output, err := cmd.CombinedOutput()
			require.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestDecideCommand_AcceptAndShow(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	seedRecord(t, dataDir, "00001_deadbeef", "Acme", "Engineer")

	cmd := exec.Command(binaryPath, "decide", "--id", "deadbeef", "--accept", "--reason", "good fit", "--data-dir", dataDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "ACCEPTED")

	cmd = exec.Command(binaryPath, "track", "show", "--id", "deadbeef", "--data-dir", dataDir)
	output, err = cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "Decision: ACCEPTED")
	assert.Contains(t, string(output), "good fit")
}

func TestSearchCommand_NoMatchesIsSuccess(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	seedRecord(t, dataDir, "00001_deadbeef", "Acme", "Engineer")

	cmd := exec.Command(binaryPath, "search", "nonexistent", "--data-dir", dataDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "No records match")
}

func TestSearchCommand_RankedOutput(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	seedRecord(t, dataDir, "00001_deadbeef", "Acme", "Engineer")
	seedRecord(t, dataDir, "00002_cafef00d", "Globex", "Engineer")

	cmd := exec.Command(binaryPath, "search", "acme", "--data-dir", dataDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "00001_deadbeef")
	assert.NotContains(t, string(output), "00002_cafef00d")
}

func TestUpdateCommand_AmbiguousWithoutTTYFails(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	seedRecord(t, dataDir, "00001_deadbeef", "Acme", "Engineer")
	seedRecord(t, dataDir, "00002_cafef00d", "Acme", "Designer")

	cmd := exec.Command(binaryPath, "update", "acme", "--status", "INTERVIEW", "--data-dir", dataDir)
	output, err := cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(output), "narrow the query")
}

func TestTrackCommand_ListPendingEmpty(t *testing.T) {
	binaryPath := getBinaryPath(t)
	dataDir := t.TempDir()
	seedRecord(t, dataDir, "00001_deadbeef", "Acme", "Engineer")

	cmd := exec.Command(binaryPath, "track", "list-pending", "--data-dir", dataDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), "No applied records")
}
