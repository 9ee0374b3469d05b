package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/tailoring"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Extract structured posting data for a record",
	Long: "Extract summary, responsibilities, requirements, preferred skills, benefits and\n" +
		"keywords from the raw posting into tailored/tailored_data_<version>.yaml.",
	RunE: runTailor,
}

var (
	tailorID      string
	tailorVersion string
	tailorNoLLM   bool
)

func init() {
	tailorCmd.Flags().StringVar(&tailorID, "id", "", "Job record token (required)")
	tailorCmd.Flags().StringVar(&tailorVersion, "version", "", "Artifact version label (default date-based)")
	tailorCmd.Flags().BoolVar(&tailorNoLLM, "no-llm", false, "Use regex section extraction instead of the LLM")

	_ = tailorCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(tailorID)
	if err != nil {
		return err
	}

	rawText, err := latestRawPosting(jobID)
	if err != nil {
		return err
	}

	version := tailorVersion
	if version == "" {
		version = defaultVersion()
	}

	var data *tailoring.Data
	if tailorNoLLM {
		data = tailoring.TailorNaive(rawText)
	} else {
		client, err := newLLMClient()
		if err != nil {
			return err
		}
		data, err = tailoring.Tailor(cmd.Context(), client, rawText)
		if err != nil {
			logrus.Warnf("LLM tailoring failed (%v), falling back to regex extraction", err)
			data = tailoring.TailorNaive(rawText)
		}
	}
	data.Version = version

	outPath := filepath.Join(st.RecordDir(jobID), "tailored", fmt.Sprintf("tailored_data_%s.yaml", version))
	if err := writeYAMLArtifact(outPath, data); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Tailored data (%s): %s\n", data.Method, outPath)
	fmt.Fprintf(os.Stdout, "Keywords: %d, requirements: %d\n", len(data.Keywords), len(data.Requirements))
	return nil
}

// latestRawPosting returns the text of the most recent file under raw/.
func latestRawPosting(jobID string) (string, error) {
	st := openStore()
	path, err := st.LatestArtifact(jobID, "raw", "*")
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("record %s has no raw posting; run score first", jobID)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading raw posting: %w", err)
	}
	return string(data), nil
}
