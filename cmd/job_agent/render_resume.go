package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-pipeline/internal/generate"
	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/jonathan/job-pipeline/internal/render"
)

var renderResumeCmd = &cobra.Command{
	Use:   "render-resume",
	Short: "Render a resume intermediate to Markdown and DOCX",
	RunE:  runRenderResume,
}

var (
	renderResumeID      string
	renderResumeVersion string
	renderResumeTrim    bool
	renderResumeAll     bool
)

func init() {
	renderResumeCmd.Flags().StringVar(&renderResumeID, "id", "", "Job record token (required)")
	renderResumeCmd.Flags().StringVar(&renderResumeVersion, "version", "", "Intermediate version label (required)")
	renderResumeCmd.Flags().BoolVar(&renderResumeTrim, "trim", false, "Render only the trimmed short variant")
	renderResumeCmd.Flags().BoolVar(&renderResumeAll, "all", false, "Render both full and trimmed variants")

	_ = renderResumeCmd.MarkFlagRequired("id")
	_ = renderResumeCmd.MarkFlagRequired("version")

	rootCmd.AddCommand(renderResumeCmd)
}

func runRenderResume(cmd *cobra.Command, args []string) error {
	if renderResumeTrim && renderResumeAll {
		return fmt.Errorf("--trim and --all are mutually exclusive")
	}

	st := openStore()
	jobID, err := st.Resolve(renderResumeID)
	if err != nil {
		return err
	}

	srcPath := filepath.Join(st.RecordDir(jobID), "generated",
		fmt.Sprintf("resume_intermediate_%s.json", renderResumeVersion))
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading resume intermediate: %w", err)
	}
	var intermediate generate.ResumeIntermediate
	if err := json.Unmarshal(raw, &intermediate); err != nil {
		return fmt.Errorf("parsing resume intermediate: %w", err)
	}

	p, err := loadProfile()
	if err != nil {
		return err
	}

	renderFull := !renderResumeTrim
	renderTrimmed := renderResumeTrim || renderResumeAll

	if renderFull {
		if err := renderResumeVariant(st.RecordDir(jobID), &intermediate, p.Personal, renderResumeVersion, ""); err != nil {
			return err
		}
	}
	if renderTrimmed {
		trimmed := render.TrimResume(&intermediate)
		if err := renderResumeVariant(st.RecordDir(jobID), trimmed, p.Personal, renderResumeVersion, "_trimmed"); err != nil {
			return err
		}
	}
	return nil
}

func renderResumeVariant(recordDir string, r *generate.ResumeIntermediate, person profile.Personal, version, suffix string) error {
	previewPath := filepath.Join(recordDir, "generated",
		fmt.Sprintf("resume_preview_%s%s.md", version, suffix))
	if err := writeArtifact(previewPath, []byte(render.ResumeMarkdown(r, person))); err != nil {
		return err
	}

	docxPath := filepath.Join(recordDir, "generated",
		fmt.Sprintf("resume_%s%s.docx", version, suffix))
	if err := render.ResumeDocx(r, person, docxPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Preview: %s\n", previewPath)
	fmt.Fprintf(os.Stdout, "Document: %s\n", docxPath)
	return nil
}
