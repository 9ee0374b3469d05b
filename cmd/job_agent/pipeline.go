package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/pipeline"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <intake-file>",
	Short: "Run an intake file through the full pipeline",
	Long: "Run score, accept, tailor, resume, render, research, cover, render and apply in one\n" +
		"pass. The run stops at the first failing phase; artifacts from completed phases stay.",
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

var (
	pipelineVersion     string
	pipelineMethod      string
	pipelineApplyMethod string
)

func init() {
	pipelineCmd.Flags().StringVar(&pipelineVersion, "version", "", "Artifact version label (default date-based)")
	pipelineCmd.Flags().StringVar(&pipelineMethod, "method", "llm", "Tailoring extraction method: llm or regex")
	pipelineCmd.Flags().StringVar(&pipelineApplyMethod, "apply-method", "company website", "How the application will be submitted")

	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if pipelineMethod != "llm" && pipelineMethod != "regex" {
		return fmt.Errorf("--method must be llm or regex")
	}

	p, err := loadProfile()
	if err != nil {
		return err
	}

	client, err := newLLMClient()
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.RunOptions{
		IntakePath:  args[0],
		Version:     pipelineVersion,
		Method:      pipelineMethod,
		ApplyMethod: pipelineApplyMethod,
		Store:       openStore(),
		Client:      client,
		Profile:     p,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\nPipeline complete: %s (match %d%%)\n", result.JobID, result.MatchScore)
	return nil
}
