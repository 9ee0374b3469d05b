// Package scoring runs the intake-time match scoring of a job posting
// against the master profile.
package scoring

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/job-pipeline/internal/llm"
	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/jonathan/job-pipeline/internal/prompts"
)

// Prompt sizing for the profile digest included in the scoring request.
const (
	topSkillCount   = 15
	recentRoleCount = 3
)

// Report is a generated score report plus the fields parsed back out of it.
type Report struct {
	Markdown       string
	MatchScore     int
	Recommendation string
}

// Score asks the LLM to compare the posting against the master profile and
// returns the markdown report with its parsed summary fields.
func Score(ctx context.Context, client llm.Client, p *profile.Profile, jobText string) (*Report, error) {
	system := prompts.MustGet("scoring.json", "system")
	user := prompts.Format(prompts.MustGet("scoring.json", "user"), map[string]string{
		"ProfileSummary":   p.SummaryText("short"),
		"TopSkills":        p.SkillsDigest(topSkillCount),
		"RecentExperience": p.ExperienceDigest(recentRoleCount),
		"JobText":          jobText,
	})

	markdown, err := client.Chat(ctx, system, user)
	if err != nil {
		return nil, err
	}

	report := &Report{Markdown: markdown}
	report.MatchScore, report.Recommendation = ParseReport(markdown)
	return report, nil
}

var (
	scorePattern          = regexp.MustCompile(`(?i)Match Score:\s*(\d{1,3})\s*%`)
	recommendationPattern = regexp.MustCompile(`(?i)Recommendation:\s*(.+)`)
)

// ParseReport extracts the match score and recommendation line from a score
// report. Missing sections yield zero and empty string; the report is still
// usable as an artifact.
func ParseReport(markdown string) (int, string) {
	score := 0
	if m := scorePattern.FindStringSubmatch(markdown); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			score = n
		}
	}

	recommendation := ""
	if m := recommendationPattern.FindStringSubmatch(markdown); m != nil {
		recommendation = strings.TrimSpace(m[1])
	}
	return score, recommendation
}
