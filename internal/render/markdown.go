// Package render turns intermediate JSON artifacts into Markdown previews
// and DOCX documents.
package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-pipeline/internal/generate"
	"github.com/jonathan/job-pipeline/internal/profile"
)

// Trim limits for the 1-2 page resume variant.
const (
	trimMaxExperience = 5
	trimMaxBullets    = 3
)

// TrimResume returns a copy of the intermediate reduced to the most recent
// experience entries with capped bullets, for the short resume variant.
// Projects are dropped entirely; education always survives.
func TrimResume(r *generate.ResumeIntermediate) *generate.ResumeIntermediate {
	out := *r
	out.Projects = nil

	if len(out.Experience) > trimMaxExperience {
		out.Experience = out.Experience[:trimMaxExperience]
	}
	trimmed := make([]generate.ExperienceEntry, len(out.Experience))
	for i, exp := range out.Experience {
		entry := exp
		if len(entry.Bullets) > trimMaxBullets {
			entry.Bullets = entry.Bullets[:trimMaxBullets]
		}
		trimmed[i] = entry
	}
	out.Experience = trimmed
	return &out
}

// ResumeMarkdown renders the resume preview.
func ResumeMarkdown(r *generate.ResumeIntermediate, person profile.Personal) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", person.Name)
	if contact := contactLine(person); contact != "" {
		fmt.Fprintf(&sb, "%s\n\n", contact)
	}

	fmt.Fprintf(&sb, "## Summary\n\n%s\n\n", r.Summary)

	if len(r.Skills) > 0 {
		fmt.Fprintf(&sb, "## Skills\n\n%s\n\n", strings.Join(r.Skills, " · "))
	}

	sb.WriteString("## Experience\n\n")
	for _, exp := range r.Experience {
		fmt.Fprintf(&sb, "### %s — %s\n\n", exp.Role, exp.Company)
		fmt.Fprintf(&sb, "*%s*\n\n", dateRange(exp.Start, exp.End))
		for _, b := range exp.Bullets {
			fmt.Fprintf(&sb, "- %s\n", b)
		}
		sb.WriteString("\n")
	}

	if len(r.Projects) > 0 {
		sb.WriteString("## Projects\n\n")
		for _, proj := range r.Projects {
			fmt.Fprintf(&sb, "- **%s**: %s\n", proj.Name, proj.Description)
		}
		sb.WriteString("\n")
	}

	if len(r.Education) > 0 {
		sb.WriteString("## Education\n\n")
		for _, edu := range r.Education {
			line := fmt.Sprintf("- %s, %s", edu.Degree, edu.Institution)
			if edu.Year != "" {
				line += fmt.Sprintf(" (%s)", edu.Year)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// CoverMarkdown renders the cover letter preview.
func CoverMarkdown(c *generate.CoverIntermediate) string {
	var sb strings.Builder
	sb.WriteString(c.Greeting + "\n\n")
	sb.WriteString(c.Opening + "\n\n")
	for _, para := range c.Body {
		sb.WriteString(para + "\n\n")
	}
	sb.WriteString(c.Closing + "\n\n")
	sb.WriteString(c.Signature + "\n")
	return sb.String()
}

func contactLine(person profile.Personal) string {
	var parts []string
	for _, p := range []string{person.Email, person.Phone, person.Location, person.Website, person.LinkedIn} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

func dateRange(start, end string) string {
	if end == "" {
		end = "Present"
	}
	return start + " – " + end
}
