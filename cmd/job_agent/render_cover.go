package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/generate"
	"github.com/jonathan/job-pipeline/internal/render"
)

var renderCoverCmd = &cobra.Command{
	Use:   "render-cover",
	Short: "Render a cover letter intermediate to Markdown and DOCX",
	RunE:  runRenderCover,
}

var (
	renderCoverID      string
	renderCoverVersion string
)

func init() {
	renderCoverCmd.Flags().StringVar(&renderCoverID, "id", "", "Job record token (required)")
	renderCoverCmd.Flags().StringVar(&renderCoverVersion, "version", "", "Intermediate version label (required)")

	_ = renderCoverCmd.MarkFlagRequired("id")
	_ = renderCoverCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(renderCoverCmd)
}

func runRenderCover(cmd *cobra.Command, args []string) error {
	st := openStore()
	jobID, err := st.Resolve(renderCoverID)
	if err != nil {
		return err
	}

	srcPath := filepath.Join(st.RecordDir(jobID), "generated",
		fmt.Sprintf("cover_intermediate_%s.json", renderCoverVersion))
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading cover intermediate: %w", err)
	}
	var intermediate generate.CoverIntermediate
	if err := json.Unmarshal(raw, &intermediate); err != nil {
		return fmt.Errorf("parsing cover intermediate: %w", err)
	}

	p, err := loadProfile()
	if err != nil {
		return err
	}

	previewPath := filepath.Join(st.RecordDir(jobID), "generated",
		fmt.Sprintf("cover_preview_%s.md", renderCoverVersion))
	if err := writeArtifact(previewPath, []byte(render.CoverMarkdown(&intermediate))); err != nil {
		return err
	}

	docxPath := filepath.Join(st.RecordDir(jobID), "generated",
		fmt.Sprintf("cover_letter_%s.docx", renderCoverVersion))
	if err := render.CoverDocx(&intermediate, p.Personal, docxPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Preview: %s\n", previewPath)
	fmt.Fprintf(os.Stdout, "Document: %s\n", docxPath)
	return nil
}
