package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/job-pipeline/internal/generate"
	"github.com/jonathan/job-pipeline/internal/profile"
)

//go:embed templates/document.docx
var documentTemplate []byte

// Slot count in the embedded template. Documents with more sections than
// slots fold the overflow into the last slot.
const templateSlots = 5

type section struct {
	heading string
	body    string
}

// ResumeDocx fills the embedded template with resume content and writes the
// result to path.
func ResumeDocx(r *generate.ResumeIntermediate, person profile.Personal, path string) error {
	sections := []section{
		{heading: "Summary", body: r.Summary},
	}
	if len(r.Skills) > 0 {
		sections = append(sections, section{heading: "Skills", body: strings.Join(r.Skills, " · ")})
	}

	var exp strings.Builder
	for i, e := range r.Experience {
		if i > 0 {
			exp.WriteString("\n")
		}
		fmt.Fprintf(&exp, "%s, %s (%s)\n", e.Role, e.Company, dateRange(e.Start, e.End))
		for _, b := range e.Bullets {
			fmt.Fprintf(&exp, "• %s\n", b)
		}
	}
	sections = append(sections, section{heading: "Experience", body: strings.TrimRight(exp.String(), "\n")})

	if len(r.Projects) > 0 {
		var proj strings.Builder
		for _, p := range r.Projects {
			fmt.Fprintf(&proj, "%s: %s\n", p.Name, p.Description)
		}
		sections = append(sections, section{heading: "Projects", body: strings.TrimRight(proj.String(), "\n")})
	}

	if len(r.Education) > 0 {
		var edu strings.Builder
		for _, e := range r.Education {
			line := fmt.Sprintf("%s, %s", e.Degree, e.Institution)
			if e.Year != "" {
				line += fmt.Sprintf(" (%s)", e.Year)
			}
			edu.WriteString(line + "\n")
		}
		sections = append(sections, section{heading: "Education", body: strings.TrimRight(edu.String(), "\n")})
	}

	return fillTemplate(person.Name, contactLine(person), sections, path)
}

// CoverDocx fills the embedded template with the cover letter and writes the
// result to path.
func CoverDocx(c *generate.CoverIntermediate, person profile.Personal, path string) error {
	var body strings.Builder
	body.WriteString(c.Greeting + "\n\n")
	body.WriteString(c.Opening + "\n\n")
	for _, para := range c.Body {
		body.WriteString(para + "\n\n")
	}
	body.WriteString(c.Closing + "\n\n")
	body.WriteString(c.Signature)

	sections := []section{{heading: "", body: body.String()}}
	return fillTemplate(person.Name, contactLine(person), sections, path)
}

func fillTemplate(name, contact string, sections []section, path string) error {
	if len(sections) > templateSlots {
		var overflow strings.Builder
		for i, s := range sections[templateSlots-1:] {
			if i > 0 {
				overflow.WriteString("\n\n")
			}
			if s.heading != "" {
				overflow.WriteString(s.heading + "\n")
			}
			overflow.WriteString(s.body)
		}
		sections = append(sections[:templateSlots-1], section{body: overflow.String()})
	}

	tpl, err := docx.ReadDocxFromMemory(bytes.NewReader(documentTemplate), int64(len(documentTemplate)))
	if err != nil {
		return fmt.Errorf("loading document template: %w", err)
	}
	defer tpl.Close()

	doc := tpl.Editable()
	if err := doc.Replace("TPL_NAME", name, -1); err != nil {
		return fmt.Errorf("filling template: %w", err)
	}
	if err := doc.Replace("TPL_CONTACT", contact, -1); err != nil {
		return fmt.Errorf("filling template: %w", err)
	}
	for i := 0; i < templateSlots; i++ {
		var heading, body string
		if i < len(sections) {
			heading = sections[i].heading
			body = sections[i].body
		}
		if err := doc.Replace(fmt.Sprintf("TPL_HEADING_%d", i+1), heading, -1); err != nil {
			return fmt.Errorf("filling template: %w", err)
		}
		if err := doc.Replace(fmt.Sprintf("TPL_SECTION_%d", i+1), body, -1); err != nil {
			return fmt.Errorf("filling template: %w", err)
		}
	}

	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
