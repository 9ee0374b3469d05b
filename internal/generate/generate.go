// Package generate produces the tailored resume and cover letter
// intermediate JSON artifacts, strictly bound to master career data.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jonathan/job-pipeline/internal/llm"
	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/jonathan/job-pipeline/internal/prompts"
	"github.com/jonathan/job-pipeline/internal/schemas"
	"github.com/jonathan/job-pipeline/internal/tailoring"
)

// ResumeIntermediate is the structured resume artifact,
// generated/resume_intermediate_<version>.json.
type ResumeIntermediate struct {
	Summary    string            `json:"summary"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Projects   []ProjectEntry    `json:"projects,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`
}

// ExperienceEntry mirrors a master experience entry with rewritten bullets.
type ExperienceEntry struct {
	Company  string   `json:"company"`
	Role     string   `json:"role"`
	Start    string   `json:"start"`
	End      string   `json:"end,omitempty"`
	Location string   `json:"location,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// ProjectEntry is a flagship project on the rendered resume.
type ProjectEntry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// EducationEntry is one degree on the rendered resume.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year,omitempty"`
}

// CoverIntermediate is the structured cover letter artifact,
// generated/cover_intermediate_<version>.json.
type CoverIntermediate struct {
	Greeting    string   `json:"greeting"`
	Opening     string   `json:"opening"`
	Body        []string `json:"body"`
	Closing     string   `json:"closing"`
	Signature   string   `json:"signature"`
	CompanyType string   `json:"company_type,omitempty"`
}

// Resume generates the tailored resume intermediate. The LLM response is
// schema-validated before it is parsed; an invalid response fails the phase
// rather than writing a broken artifact.
func Resume(ctx context.Context, client llm.Client, p *profile.Profile, company, role string, tailored *tailoring.Data) (*ResumeIntermediate, error) {
	master, err := masterDigest(p)
	if err != nil {
		return nil, err
	}

	system := prompts.MustGet("generation.json", "resume_system")
	user := prompts.Format(prompts.MustGet("generation.json", "resume_user"), map[string]string{
		"Company":      company,
		"Role":         role,
		"TailoredData": tailoredDigest(tailored),
		"MasterData":   master,
	})

	raw, err := client.ChatJSON(ctx, system, user)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateResumeIntermediate(raw); err != nil {
		return nil, fmt.Errorf("resume intermediate rejected: %w", err)
	}

	var resume ResumeIntermediate
	if err := json.Unmarshal([]byte(raw), &resume); err != nil {
		return nil, &llm.ParseError{Message: "resume intermediate is not valid JSON", Cause: err}
	}
	return &resume, nil
}

// Cover generates the tailored cover letter intermediate. companyType is
// "agency" or "enterprise"; research may be empty for agencies.
func Cover(ctx context.Context, client llm.Client, p *profile.Profile, company, role, companyType, research string, tailored *tailoring.Data) (*CoverIntermediate, error) {
	master, err := masterDigest(p)
	if err != nil {
		return nil, err
	}

	system := prompts.MustGet("generation.json", "cover_system")
	user := prompts.Format(prompts.MustGet("generation.json", "cover_user"), map[string]string{
		"Company":      company,
		"Role":         role,
		"CompanyType":  companyType,
		"Research":     research,
		"TailoredData": tailoredDigest(tailored),
		"MasterData":   master,
	})

	raw, err := client.ChatJSON(ctx, system, user)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateCoverIntermediate(raw); err != nil {
		return nil, fmt.Errorf("cover intermediate rejected: %w", err)
	}

	var cover CoverIntermediate
	if err := json.Unmarshal([]byte(raw), &cover); err != nil {
		return nil, &llm.ParseError{Message: "cover intermediate is not valid JSON", Cause: err}
	}
	if cover.CompanyType == "" {
		cover.CompanyType = companyType
	}
	return &cover, nil
}

// masterDigest renders the resume-relevant master data as YAML for the
// prompt, with excluded experience already filtered out.
func masterDigest(p *profile.Profile) (string, error) {
	digest := struct {
		Personal   profile.Personal     `yaml:"personal"`
		Summary    string               `yaml:"summary"`
		Experience []profile.Experience `yaml:"experience"`
		Projects   []profile.Project    `yaml:"projects,omitempty"`
		Education  []profile.Education  `yaml:"education,omitempty"`
		Skills     []string             `yaml:"skills"`
	}{
		Personal:   p.Personal,
		Summary:    p.SummaryText("long"),
		Experience: p.ResumeExperience(),
		Projects:   p.Projects,
		Education:  p.Education,
		Skills:     p.SkillNames(20),
	}

	data, err := yaml.Marshal(digest)
	if err != nil {
		return "", fmt.Errorf("failed to serialize master data for prompt: %w", err)
	}
	return string(data), nil
}

// tailoredDigest renders tailored job data as YAML for the prompt. A nil
// tailored payload degrades to an empty string so generation can run from
// the raw posting alone.
func tailoredDigest(t *tailoring.Data) string {
	if t == nil {
		return ""
	}
	data, err := yaml.Marshal(t)
	if err != nil {
		return strings.Join(t.Keywords, ", ")
	}
	return string(data)
}
