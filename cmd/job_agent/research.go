package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Classify the company and write a research summary",
	Long: "Classify the record's company as agency or enterprise and, for enterprises, write a\n" +
		"short research summary grounded on the company website when one is known.",
	RunE: runResearch,
}

var (
	researchID      string
	researchVersion string
)

func init() {
	researchCmd.Flags().StringVar(&researchID, "id", "", "Job record token (required)")
	researchCmd.Flags().StringVar(&researchVersion, "version", "", "Optional version label for the artifact")

	_ = researchCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(researchID)
	if err != nil {
		return err
	}

	meta, err := st.ReadMetadata(jobID)
	if err != nil {
		return err
	}

	client, err := newLLMClient()
	if err != nil {
		return err
	}

	report, err := research.Run(cmd.Context(), client, meta.Company, meta.Website)
	if err != nil {
		return err
	}

	name := "company_research.yaml"
	if researchVersion != "" {
		name = fmt.Sprintf("company_research_%s.yaml", researchVersion)
	}
	outPath := filepath.Join(st.RecordDir(jobID), "research", name)
	if err := writeYAMLArtifact(outPath, report); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s classified as %s\n", meta.Company, report.CompanyType)
	if report.Summary != "" {
		fmt.Fprintf(os.Stdout, "Summary written to %s\n", outPath)
	} else {
		fmt.Fprintf(os.Stdout, "Research artifact: %s\n", outPath)
	}
	return nil
}
