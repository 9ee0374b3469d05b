// Package profile loads the candidate's master career data: the single
// source of truth every generation phase binds to.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Career file names under the master data directory.
const (
	CareerFile = "master_career_data.yaml"
	SkillsFile = "skills.yaml"
)

// Profile is the loaded master career data.
type Profile struct {
	Personal   Personal     `yaml:"personal"`
	Summary    Summaries    `yaml:"summary"`
	Experience []Experience `yaml:"experience"`
	Projects   []Project    `yaml:"flagship_projects"`
	Education  []Education  `yaml:"education"`
	Skills     []Skill
}

// Personal holds contact details for rendered documents.
type Personal struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone,omitempty"`
	Location string `yaml:"location,omitempty"`
	Website  string `yaml:"website,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty"`
}

// Summaries holds the summary variants; "short" is the default.
type Summaries struct {
	Short string `yaml:"short"`
	Long  string `yaml:"long,omitempty"`
}

// Experience is one employment entry.
type Experience struct {
	Company           string   `yaml:"company"`
	Role              string   `yaml:"role"`
	Start             string   `yaml:"start"`
	End               string   `yaml:"end,omitempty"`
	Location          string   `yaml:"location,omitempty"`
	Bullets           []string `yaml:"bullets,omitempty"`
	ExcludeFromResume bool     `yaml:"exclude_from_resume,omitempty"`
}

// Project is a flagship project entry.
type Project struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Education is one degree entry.
type Education struct {
	Institution string `yaml:"institution"`
	Degree      string `yaml:"degree"`
	Year        string `yaml:"year,omitempty"`
}

// Skill is one entry of the skills inventory.
type Skill struct {
	Name        string  `yaml:"name"`
	Years       float64 `yaml:"years,omitempty"`
	Proficiency string  `yaml:"proficiency,omitempty"`
}

// Load reads the master career and skills files from dir.
func Load(dir string) (*Profile, error) {
	var p Profile
	if err := readYAML(filepath.Join(dir, CareerFile), &p); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, SkillsFile), &p.Skills); err != nil {
		return nil, err
	}
	return &p, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read master data %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse master data %s: %w", path, err)
	}
	return nil
}

// RecentExperience returns the n most recent experience entries. Entries
// are assumed stored newest-first, matching the source file layout.
func (p *Profile) RecentExperience(n int) []Experience {
	if n <= 0 || n > len(p.Experience) {
		return p.Experience
	}
	return p.Experience[:n]
}

// ResumeExperience returns entries not flagged exclude_from_resume.
func (p *Profile) ResumeExperience() []Experience {
	var out []Experience
	for _, exp := range p.Experience {
		if !exp.ExcludeFromResume {
			out = append(out, exp)
		}
	}
	return out
}

// TopSkills returns up to n skills with at least minYears experience,
// ordered by years descending with Expert proficiency breaking ties.
func (p *Profile) TopSkills(n int, minYears float64) []Skill {
	var filtered []Skill
	for _, s := range p.Skills {
		if s.Years >= minYears {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Years != filtered[j].Years {
			return filtered[i].Years > filtered[j].Years
		}
		return filtered[i].Proficiency == "Expert" && filtered[j].Proficiency != "Expert"
	})
	if n > 0 && len(filtered) > n {
		filtered = filtered[:n]
	}
	return filtered
}

// SkillNames returns the names of the top n skills with any tenure.
func (p *Profile) SkillNames(n int) []string {
	skills := p.TopSkills(n, 0)
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return names
}

// SummaryText returns the requested summary variant, defaulting to short.
func (p *Profile) SummaryText(variant string) string {
	if variant == "long" && p.Summary.Long != "" {
		return p.Summary.Long
	}
	return p.Summary.Short
}

// ExperienceDigest renders recent experience as plain text for prompts.
func (p *Profile) ExperienceDigest(n int) string {
	var sb strings.Builder
	for _, exp := range p.RecentExperience(n) {
		end := exp.End
		if end == "" {
			end = "Present"
		}
		fmt.Fprintf(&sb, "- %s at %s (%s to %s)\n", exp.Role, exp.Company, exp.Start, end)
		for _, b := range exp.Bullets {
			fmt.Fprintf(&sb, "  * %s\n", b)
		}
	}
	return sb.String()
}

// SkillsDigest renders the top skills as a comma-separated line for prompts.
func (p *Profile) SkillsDigest(n int) string {
	return strings.Join(p.SkillNames(n), ", ")
}
