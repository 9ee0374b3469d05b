// Package intake reads raw job postings and derives record fields from
// structured front-matter or, failing that, from the intake filename.
package intake

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Posting is an intake job posting plus the fields derived from it.
type Posting struct {
	Text     string
	Company  string
	Role     string
	Location string
	Website  string
	// SourceFile is the base name of the original intake file.
	SourceFile string
}

// Load reads an intake file and derives company/role/location/website:
// structured front-matter wins, then filename heuristics, then "Unknown".
func Load(path string) (*Posting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake file %s: %w", path, err)
	}

	p := &Posting{
		Text:       string(data),
		SourceFile: filepath.Base(path),
	}

	front := FrontMatter(p.Text)
	fromName := FromFilename(p.SourceFile)

	p.Company = firstNonEmpty(front["company"], fromName.Company, "Unknown")
	p.Role = firstNonEmpty(front["role"], front["title"], fromName.Role, "Unknown")
	p.Location = front["location"]
	p.Website = firstNonEmpty(front["company_website"], front["website"])

	return p, nil
}

// FrontMatter extracts key-value pairs from the top of the posting text.
// Lines like "Company_website: https://..." become map entries with
// normalized snake_case keys. Extraction stops at the first line that does
// not look like metadata; headings and separators are skipped.
func FrontMatter(text string) map[string]string {
	data := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "---") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			break
		}
		key = strings.TrimSpace(strings.ToLower(key))
		key = strings.ReplaceAll(key, " ", "_")
		key = strings.ReplaceAll(key, "-", "_")
		if value = strings.TrimSpace(value); value != "" {
			data[key] = value
		}
	}
	return data
}

// NameFields are the fields recoverable from an intake filename.
type NameFields struct {
	Company string
	Role    string
}

var datePart = regexp.MustCompile(`^\d{8,}`)

// FromFilename parses fields from names like
// "00002.PostScript.Platform_Engineer.02052026.2243.md": the second
// dot-part is the company, everything after it up to a date-like part is
// the role.
func FromFilename(name string) NameFields {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(stem, ".")
	if len(parts) < 3 {
		return NameFields{Company: "Unknown", Role: "Unknown"}
	}

	company := titleCase(strings.ReplaceAll(parts[1], "_", " "))

	var roleParts []string
	for _, part := range parts[2:] {
		if datePart.MatchString(part) {
			break
		}
		roleParts = append(roleParts, strings.ReplaceAll(part, "_", " "))
	}

	role := titleCase(strings.TrimSpace(strings.Join(roleParts, " ")))
	if role == "" {
		role = "Unknown Role"
	}
	return NameFields{Company: company, Role: role}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
