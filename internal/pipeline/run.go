// Package pipeline provides the high-level orchestration for taking one
// intake file from scoring through a recorded application.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/job-pipeline/internal/generate"
	"github.com/jonathan/job-pipeline/internal/intake"
	"github.com/jonathan/job-pipeline/internal/llm"
	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/jonathan/job-pipeline/internal/render"
	"github.com/jonathan/job-pipeline/internal/research"
	"github.com/jonathan/job-pipeline/internal/scoring"
	"github.com/jonathan/job-pipeline/internal/store"
	"github.com/jonathan/job-pipeline/internal/tailoring"
	"github.com/jonathan/job-pipeline/internal/tracker"
)

const totalSteps = 9

// RunOptions holds everything one end-to-end run needs.
type RunOptions struct {
	IntakePath string
	Version    string
	// Method selects tailoring extraction, "llm" (default) or "regex".
	Method string
	// ApplyMethod is recorded on the final track-apply step.
	ApplyMethod string
	Store       *store.Store
	Client      llm.Client
	Profile     *profile.Profile
}

// Result reports what a completed run produced.
type Result struct {
	JobID      string
	MatchScore int
}

// Run executes score, accept, tailor, resume, render, research, cover,
// render and apply in order, stopping at the first failing phase. Artifacts
// written by completed phases stay on disk.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Version == "" {
		opts.Version = "v" + time.Now().Format("20060102")
	}
	if opts.ApplyMethod == "" {
		opts.ApplyMethod = "company website"
	}

	// Step 1: score
	fmt.Printf("Step 1/%d: Scoring %s...\n", totalSteps, opts.IntakePath)
	posting, err := intake.Load(opts.IntakePath)
	if err != nil {
		return nil, err
	}

	jobID, err := opts.Store.NextJobID()
	if err != nil {
		return nil, err
	}
	if err := opts.Store.CreateRecordDirs(jobID.ID); err != nil {
		return nil, err
	}
	recordDir := opts.Store.RecordDir(jobID.ID)

	if err := writeFile(filepath.Join(recordDir, "raw", posting.SourceFile), []byte(posting.Text)); err != nil {
		return nil, err
	}

	report, err := scoring.Score(ctx, opts.Client, opts.Profile, posting.Text)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	reportFile := "score_report_" + time.Now().Format("20060102_150405") + ".md"
	if err := writeFile(filepath.Join(recordDir, "score", reportFile), []byte(report.Markdown)); err != nil {
		return nil, err
	}
	meta := &store.Metadata{
		UUID:       jobID.UUID,
		JobID:      jobID.ID,
		Company:    posting.Company,
		Role:       posting.Role,
		Location:   posting.Location,
		Website:    posting.Website,
		SourceFile: posting.SourceFile,
		Created:    now,
		Status:     store.StatusPending,
		Score: &store.ScoreResult{
			MatchScore:     report.MatchScore,
			Recommendation: report.Recommendation,
			ReportFile:     reportFile,
			ScoredAt:       now,
		},
	}
	if err := opts.Store.WriteMetadata(jobID.ID, meta); err != nil {
		return nil, err
	}
	logrus.Debugf("created record %s (match %d%%)", jobID.ID, report.MatchScore)

	// Step 2: accept
	fmt.Printf("Step 2/%d: Accepting %s...\n", totalSteps, jobID.ID)
	track := tracker.New(opts.Store)
	if err := track.RecordDecision(jobID.ID, store.StatusAccepted, "pipeline run"); err != nil {
		return nil, err
	}

	// Step 3: tailor
	fmt.Printf("Step 3/%d: Tailoring posting data...\n", totalSteps)
	var tailored *tailoring.Data
	if opts.Method == "regex" {
		tailored = tailoring.TailorNaive(posting.Text)
	} else {
		tailored, err = tailoring.Tailor(ctx, opts.Client, posting.Text)
		if err != nil {
			return nil, fmt.Errorf("tailoring failed: %w", err)
		}
	}
	tailored.Version = opts.Version
	tailoredPath := filepath.Join(recordDir, "tailored", fmt.Sprintf("tailored_data_%s.yaml", opts.Version))
	if err := writeYAML(tailoredPath, tailored); err != nil {
		return nil, err
	}

	// Step 4: resume intermediate
	fmt.Printf("Step 4/%d: Generating resume intermediate...\n", totalSteps)
	resumeIntermediate, err := generate.Resume(ctx, opts.Client, opts.Profile, meta.Company, meta.Role, tailored)
	if err != nil {
		return nil, fmt.Errorf("resume generation failed: %w", err)
	}
	resumePath := filepath.Join(recordDir, "generated", fmt.Sprintf("resume_intermediate_%s.json", opts.Version))
	if err := writeJSON(resumePath, resumeIntermediate); err != nil {
		return nil, err
	}

	// Step 5: render resume
	fmt.Printf("Step 5/%d: Rendering resume...\n", totalSteps)
	previewPath := filepath.Join(recordDir, "generated", fmt.Sprintf("resume_preview_%s.md", opts.Version))
	if err := writeFile(previewPath, []byte(render.ResumeMarkdown(resumeIntermediate, opts.Profile.Personal))); err != nil {
		return nil, err
	}
	docxPath := filepath.Join(recordDir, "generated", fmt.Sprintf("resume_%s.docx", opts.Version))
	if err := render.ResumeDocx(resumeIntermediate, opts.Profile.Personal, docxPath); err != nil {
		return nil, err
	}

	// Step 6: research
	fmt.Printf("Step 6/%d: Researching %s...\n", totalSteps, meta.Company)
	researchReport, err := research.Run(ctx, opts.Client, meta.Company, meta.Website)
	if err != nil {
		return nil, fmt.Errorf("research failed: %w", err)
	}
	researchPath := filepath.Join(recordDir, "research", "company_research.yaml")
	if err := writeYAML(researchPath, researchReport); err != nil {
		return nil, err
	}

	// Step 7: cover intermediate
	fmt.Printf("Step 7/%d: Generating cover letter intermediate...\n", totalSteps)
	coverIntermediate, err := generate.Cover(ctx, opts.Client, opts.Profile, meta.Company, meta.Role,
		researchReport.CompanyType, researchReport.Summary, tailored)
	if err != nil {
		return nil, fmt.Errorf("cover generation failed: %w", err)
	}
	coverPath := filepath.Join(recordDir, "generated", fmt.Sprintf("cover_intermediate_%s.json", opts.Version))
	if err := writeJSON(coverPath, coverIntermediate); err != nil {
		return nil, err
	}

	// Step 8: render cover
	fmt.Printf("Step 8/%d: Rendering cover letter...\n", totalSteps)
	coverPreviewPath := filepath.Join(recordDir, "generated", fmt.Sprintf("cover_preview_%s.md", opts.Version))
	if err := writeFile(coverPreviewPath, []byte(render.CoverMarkdown(coverIntermediate))); err != nil {
		return nil, err
	}
	coverDocxPath := filepath.Join(recordDir, "generated", fmt.Sprintf("cover_letter_%s.docx", opts.Version))
	if err := render.CoverDocx(coverIntermediate, opts.Profile.Personal, coverDocxPath); err != nil {
		return nil, err
	}

	// Step 9: record the application
	fmt.Printf("Step 9/%d: Recording application...\n", totalSteps)
	err = track.RecordApplication(jobID.ID, tracker.ApplicationInput{
		Method: opts.ApplyMethod,
		Notes:  "Applied via pipeline run",
	})
	if err != nil {
		return nil, err
	}

	return &Result{JobID: jobID.ID, MatchScore: report.MatchScore}, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return writeFile(path, data)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return writeFile(path, data)
}
