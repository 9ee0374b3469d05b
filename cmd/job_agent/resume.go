package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/generate"
	"github.com/jonathan/job-pipeline/internal/tailoring"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Generate the tailored resume intermediate",
	Long: "Generate generated/resume_intermediate_<version>.json from the master profile and\n" +
		"the record's tailored data. The LLM response is schema-validated before writing.",
	RunE: runResume,
}

var (
	resumeID      string
	resumeVersion string
	resumeForce   bool
)

func init() {
	resumeCmd.Flags().StringVar(&resumeID, "id", "", "Job record token (required)")
	resumeCmd.Flags().StringVar(&resumeVersion, "version", "", "Artifact version label (required)")
	resumeCmd.Flags().BoolVar(&resumeForce, "force", false, "Overwrite an existing intermediate")

	_ = resumeCmd.MarkFlagRequired("id")
	_ = resumeCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(resumeID)
	if err != nil {
		return err
	}

	outPath := filepath.Join(st.RecordDir(jobID), "generated",
		fmt.Sprintf("resume_intermediate_%s.json", resumeVersion))
	if !resumeForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", outPath)
		}
	}

	meta, err := st.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	p, err := loadProfile()
	if err != nil {
		return err
	}

	tailored, err := loadTailoredData(jobID, resumeVersion)
	if err != nil {
		return err
	}

	client, err := newLLMClient()
	if err != nil {
		return err
	}

	intermediate, err := generate.Resume(cmd.Context(), client, p, meta.Company, meta.Role, tailored)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(intermediate, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling resume intermediate: %w", err)
	}
	if err := writeArtifact(outPath, data); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Resume intermediate: %s\n", outPath)
	return nil
}

// loadTailoredData reads tailored data for a version, falling back to the
// latest tailored artifact, then to nil when the phase was skipped.
func loadTailoredData(jobID, version string) (*tailoring.Data, error) {
	st := openStore()
	path := filepath.Join(st.RecordDir(jobID), "tailored",
		fmt.Sprintf("tailored_data_%s.yaml", version))
	if _, err := os.Stat(path); err != nil {
		latest, err := st.LatestArtifact(jobID, "tailored", "tailored_data_*.yaml")
		if err != nil {
			return nil, err
		}
		if latest == "" {
			return nil, nil
		}
		path = latest
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tailored data: %w", err)
	}
	var data tailoring.Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing tailored data %s: %w", filepath.Base(path), err)
	}
	return &data, nil
}
