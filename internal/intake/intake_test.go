package intake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontMatter(t *testing.T) {
	text := `# Job Posting
Company: Postscript
Company_website: https://postscript.io
Location: Remote (US)

We are looking for a Platform Engineer to join our team.
`
	front := FrontMatter(text)
	assert.Equal(t, "Postscript", front["company"])
	assert.Equal(t, "https://postscript.io", front["company_website"])
	assert.Equal(t, "Remote (US)", front["location"])
	// Extraction stops at the first non-metadata line.
	assert.NotContains(t, front, "we_are_looking_for_a_platform_engineer_to_join_our_team")
}

func TestFrontMatter_NormalizesKeys(t *testing.T) {
	front := FrontMatter("Company-Website: https://acme.dev\nJob Title: Data Engineer\nBody text here\n")
	assert.Equal(t, "https://acme.dev", front["company_website"])
	assert.Equal(t, "Data Engineer", front["job_title"])
}

func TestFrontMatter_EmptyValueSkipped(t *testing.T) {
	front := FrontMatter("Company:\nRole: Engineer\n")
	assert.NotContains(t, front, "company")
	assert.Equal(t, "Engineer", front["role"])
}

func TestFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		company string
		role    string
	}{
		{"standard", "00002.PostScript.Platform_Engineer.02052026.2243.md", "Postscript", "Platform Engineer"},
		{"multi part role", "00003.Acme.Senior.Data.Engineer.02052026.md", "Acme", "Senior Data Engineer"},
		{"role missing", "00004.Globex.02052026.1200.md", "Globex", "Unknown Role"},
		{"too few parts", "notes.md", "Unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromFilename(tt.file)
			assert.Equal(t, tt.company, got.Company)
			assert.Equal(t, tt.role, got.Role)
		})
	}
}

func TestLoad_FrontMatterWinsOverFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "00002.WrongCo.Wrong_Role.02052026.md")
	content := "Company: Postscript\nRole: Platform Engineer\nCompany_website: https://postscript.io\n\nLong posting body.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Postscript", p.Company)
	assert.Equal(t, "Platform Engineer", p.Role)
	assert.Equal(t, "https://postscript.io", p.Website)
	assert.Equal(t, "00002.WrongCo.Wrong_Role.02052026.md", p.SourceFile)
}

func TestLoad_FallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "00005.Globex.Staff_Engineer.03012026.md")
	require.NoError(t, os.WriteFile(path, []byte("Just a posting body with no metadata lines\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Globex", p.Company)
	assert.Equal(t, "Staff Engineer", p.Role)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.md"))
	assert.Error(t, err)
}
