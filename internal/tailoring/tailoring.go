// Package tailoring structures a raw job posting into searchable, reusable
// job data for the downstream resume and cover phases.
package tailoring

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/job-pipeline/internal/llm"
	"github.com/jonathan/job-pipeline/internal/prompts"
)

// Data is the tailored job data artifact, persisted as
// tailored/tailored_data_<version>.yaml.
type Data struct {
	Version          string   `yaml:"version" json:"-"`
	Method           string   `yaml:"method" json:"-"` // "llm" or "regex"
	Summary          string   `yaml:"summary" json:"summary"`
	Responsibilities []string `yaml:"responsibilities" json:"responsibilities"`
	Requirements     []string `yaml:"requirements" json:"requirements"`
	Preferred        []string `yaml:"preferred" json:"preferred"`
	Benefits         []string `yaml:"benefits" json:"benefits"`
	Keywords         []string `yaml:"keywords" json:"keywords"`
}

// Tailor extracts structured job data with the LLM.
func Tailor(ctx context.Context, client llm.Client, jobText string) (*Data, error) {
	system := prompts.MustGet("tailoring.json", "system")
	user := prompts.Format(prompts.MustGet("tailoring.json", "user"), map[string]string{
		"JobText": jobText,
	})

	raw, err := client.ChatJSON(ctx, system, user)
	if err != nil {
		return nil, err
	}

	var data Data
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &llm.ParseError{Message: "tailored data is not valid JSON", Cause: err}
	}
	data.Method = "llm"
	return &data, nil
}

// Section markers for the naive fallback extractor, checked in order so a
// line matching several markers resolves deterministically.
var sectionMarkers = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"responsibilities", regexp.MustCompile(`(?i)(responsibilit(y|ies)|what you'll do|key duties|you will|day[- ]?to[- ]?day)`)},
	{"requirements", regexp.MustCompile(`(?i)(require(ments|d)|qualifications|must have|minimum)`)},
	{"preferred", regexp.MustCompile(`(?i)(preferred|nice to have|bonus|desired|plus)`)},
	{"benefits", regexp.MustCompile(`(?i)(benefit|perks|compensation|remote|hybrid)`)},
}

var skillPattern = regexp.MustCompile(`(?i)\b(python|java|javascript|typescript|golang|rust|sql|aws|gcp|azure|docker|kubernetes|terraform|react|node\.js|django|flask|spark|kafka|airflow|snowflake|postgresql|mysql|mongodb|redis|elasticsearch|graphql|rest|microservices|ci/cd|linux|git)\b`)

// TailorNaive extracts sections with regex markers, used when the LLM is
// skipped. Bullet lines following a matched section heading are collected
// until the next heading.
func TailorNaive(jobText string) *Data {
	data := &Data{Method: "regex"}
	sections := map[string]*[]string{
		"responsibilities": &data.Responsibilities,
		"requirements":     &data.Requirements,
		"preferred":        &data.Preferred,
		"benefits":         &data.Benefits,
	}

	var current *[]string
	for _, line := range strings.Split(jobText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Bullet check comes first: bullet text often contains section
		// marker words ("remote", "plus") and must not switch sections.
		if isBullet(trimmed) {
			if current != nil {
				*current = append(*current, strings.TrimLeft(trimmed, "-*• \t"))
			}
			continue
		}

		if name := matchSection(trimmed); name != "" {
			current = sections[name]
		}
	}

	data.Keywords = extractKeywords(jobText)
	return data
}

// matchSection reports which section a heading-like line opens, if any.
// Only short lines count as headings so body text cannot switch sections.
func matchSection(line string) string {
	if len(line) > 60 {
		return ""
	}
	for _, marker := range sectionMarkers {
		if marker.pattern.MatchString(line) {
			return marker.name
		}
	}
	return ""
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•")
}

// extractKeywords collects the distinct known skill tokens in order of
// first appearance.
func extractKeywords(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, match := range skillPattern.FindAllString(text, -1) {
		normalized := strings.ToLower(match)
		if !seen[normalized] {
			seen[normalized] = true
			out = append(out, normalized)
		}
	}
	return out
}
