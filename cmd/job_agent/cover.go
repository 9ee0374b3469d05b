package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/generate"
	"github.com/jonathan/job-pipeline/internal/research"
)

var coverCmd = &cobra.Command{
	Use:   "cover",
	Short: "Generate the tailored cover letter intermediate",
	Long: "Generate generated/cover_intermediate_<version>.json. The agency and enterprise\n" +
		"variants use the latest company research when present.",
	RunE: runCover,
}

var (
	coverID      string
	coverVersion string
	coverForce   bool
)

func init() {
	coverCmd.Flags().StringVar(&coverID, "id", "", "Job record token (required)")
	coverCmd.Flags().StringVar(&coverVersion, "version", "", "Artifact version label (required)")
	coverCmd.Flags().BoolVar(&coverForce, "force", false, "Overwrite an existing intermediate")

	_ = coverCmd.MarkFlagRequired("id")
	_ = coverCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(coverCmd)
}

func runCover(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(coverID)
	if err != nil {
		return err
	}

	outPath := filepath.Join(st.RecordDir(jobID), "generated",
		fmt.Sprintf("cover_intermediate_%s.json", coverVersion))
	if !coverForce {
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

	tailored, err := loadTailoredData(jobID, coverVersion)
	if err != nil {
		return err
	}

	companyType, summary := latestResearch(jobID)
	if companyType == "" {
		logrus.Debug("no research artifact found, generating without company grounding")
	}

	client, err := newLLMClient()
	if err != nil {
		return err
	}

	intermediate, err := generate.Cover(cmd.Context(), client, p, meta.Company, meta.Role, companyType, summary, tailored)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(intermediate, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cover intermediate: %w", err)
	}
	if err := writeArtifact(outPath, data); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Cover intermediate (%s): %s\n", intermediate.CompanyType, outPath)
	return nil
}

// latestResearch returns the company type and summary from the most recent
// research artifact, or empty values when none exists.
func latestResearch(jobID string) (companyType, summary string) {
	st := openStore()
	path, err := st.LatestArtifact(jobID, "research", "company_research*.yaml")
	if err != nil || path == "" {
		return "", ""
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", ""
	}
	var report research.Report
	if err := yaml.Unmarshal(raw, &report); err != nil {
		return "", ""
	}
	return report.CompanyType, report.Summary
}
