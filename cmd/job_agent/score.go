package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/intake"
	"github.com/jonathan/job-pipeline/internal/scoring"
	"github.com/jonathan/job-pipeline/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score <intake-file>",
	Short: "Create a job record and score posting fit",
	Long: "Create a new job record folder from an intake file, copy the raw posting in, score\n" +
		"it against the master profile, and write the initial metadata with status PENDING.",
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	posting, err := intake.Load(args[0])
	if err != nil {
		return err
	}

	p, err := loadProfile()
	if err != nil {
		return err
	}

	client, err := newLLMClient()
	if err != nil {
		return err
	}

	st := openStore()
	jobID, err := st.NextJobID()
	if err != nil {
		return err
	}
	if err := st.CreateRecordDirs(jobID.ID); err != nil {
		return err
	}
	logrus.Debugf("allocated record %s", jobID.ID)

	rawPath := filepath.Join(st.RecordDir(jobID.ID), "raw", posting.SourceFile)
	if err := writeArtifact(rawPath, []byte(posting.Text)); err != nil {
		return err
	}

	report, err := scoring.Score(cmd.Context(), client, p, posting.Text)
	if err != nil {
		return err
	}

	reportFile := fmt.Sprintf("score_report_%s.md", timestamp())
	reportPath := filepath.Join(st.RecordDir(jobID.ID), "score", reportFile)
	if err := writeArtifact(reportPath, []byte(report.Markdown)); err != nil {
		return err
	}

	now := time.Now()
	meta := &store.Metadata{
		UUID:       jobID.UUID,
		JobID:      jobID.ID,
		Company:    posting.Company,
		Role:       posting.Role,
		Location:   posting.Location,
		Website:    posting.Website,
		SourceFile: posting.SourceFile,
		Created:    now.UTC().Format(time.RFC3339),
		Status:     store.StatusPending,
		Score: &store.ScoreResult{
			MatchScore:     report.MatchScore,
			Recommendation: report.Recommendation,
			ReportFile:     reportFile,
			ScoredAt:       now.UTC().Format(time.RFC3339),
		},
	}
	if err := st.WriteMetadata(jobID.ID, meta); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Created record %s\n", jobID.ID)
	fmt.Fprintf(os.Stdout, "Company: %s\nRole: %s\n", posting.Company, posting.Role)
	if report.MatchScore > 0 {
		fmt.Fprintf(os.Stdout, "Match score: %d%%\n", report.MatchScore)
	}
	if report.Recommendation != "" {
		fmt.Fprintf(os.Stdout, "Recommendation: %s\n", report.Recommendation)
	}
	fmt.Fprintf(os.Stdout, "Score report: %s\n", reportPath)

	return nil
}
