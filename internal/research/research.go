package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/job-pipeline/internal/llm"
	"github.com/jonathan/job-pipeline/internal/prompts"
)

// Company types as stored in research artifacts and consumed by the cover
// letter phase.
const (
	TypeAgency     = "agency"
	TypeEnterprise = "enterprise"
)

// Report is the research/company_research artifact.
type Report struct {
	Company     string `yaml:"company"`
	Website     string `yaml:"website,omitempty"`
	CompanyType string `yaml:"company_type"`
	Summary     string `yaml:"summary,omitempty"`
	Researched  string `yaml:"researched"`
}

// Classify asks the LLM for a one-word agency/enterprise call. Any reply
// that is not exactly one of the two is an error, never a silent default.
func Classify(ctx context.Context, client llm.Client, company, website string) (string, error) {
	user := prompts.Format(prompts.MustGet("research.json", "classify"), map[string]string{
		"Company": company,
		"Website": website,
	})

	reply, err := client.Chat(ctx, "You classify companies for a job application pipeline.", user)
	if err != nil {
		return "", fmt.Errorf("classifying %s: %w", company, err)
	}

	normalized := strings.ToLower(strings.Trim(strings.TrimSpace(reply), `.'"`))
	switch normalized {
	case TypeAgency, TypeEnterprise:
		return normalized, nil
	default:
		return "", &ClassificationError{Company: company, Reply: reply}
	}
}

// Run performs a full research session: classify, and for enterprises fetch
// the website (when one is known) and summarize. Agencies get no summary;
// their cover letters pitch the candidate, not the company.
func Run(ctx context.Context, client llm.Client, company, website string) (*Report, error) {
	companyType, err := Classify(ctx, client, company, website)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Company:     company,
		Website:     website,
		CompanyType: companyType,
		Researched:  time.Now().UTC().Format(time.RFC3339),
	}

	if companyType == TypeAgency {
		return report, nil
	}

	var siteText string
	if website != "" {
		// A dead or unreachable site should not sink the research phase.
		siteText, err = SiteText(ctx, website)
		if err != nil {
			siteText = ""
		}
	}

	summary, err := Summarize(ctx, client, company, siteText)
	if err != nil {
		return nil, err
	}
	report.Summary = summary
	return report, nil
}

// Summarize produces the 1-2 paragraph company summary.
func Summarize(ctx context.Context, client llm.Client, company, siteText string) (string, error) {
	user := prompts.Format(prompts.MustGet("research.json", "research"), map[string]string{
		"Company":  company,
		"SiteText": siteText,
	})

	summary, err := client.Chat(ctx, "You research companies for a job applicant.", user)
	if err != nil {
		return "", fmt.Errorf("researching %s: %w", company, err)
	}
	return strings.TrimSpace(summary), nil
}
