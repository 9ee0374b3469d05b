package generate

import (
	"context"
	"testing"

	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/jonathan/job-pipeline/internal/tailoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	reply    string
	err      error
	lastUser string
}

func (f *fakeClient) Chat(_ context.Context, _, user string) (string, error) {
	f.lastUser = user
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, system, user string) (string, error) {
	return f.Chat(ctx, system, user)
}

func (f *fakeClient) Embed(context.Context, string) ([]float32, error) { return nil, nil }

func testProfile() *profile.Profile {
	return &profile.Profile{
		Personal: profile.Personal{Name: "Alice Example", Email: "alice@example.com"},
		Summary:  profile.Summaries{Short: "Data engineer."},
		Experience: []profile.Experience{
			{Company: "Acme", Role: "Senior Data Engineer", Start: "2022-01"},
			{Company: "Old Shop", Role: "Intern", Start: "2012-01", ExcludeFromResume: true},
		},
		Skills: []profile.Skill{{Name: "Python", Years: 8}},
	}
}

const resumeReply = `{
  "summary": "Tailored summary.",
  "skills": ["Python"],
  "experience": [{"company": "Acme", "role": "Senior Data Engineer", "start": "2022-01", "bullets": ["Did things"]}]
}`

func TestResume_GeneratesAndValidates(t *testing.T) {
	client := &fakeClient{reply: resumeReply}
	tailored := &tailoring.Data{Keywords: []string{"python", "sql"}}

	resume, err := Resume(context.Background(), client, testProfile(), "Postscript", "Platform Engineer", tailored)
	require.NoError(t, err)
	assert.Equal(t, "Tailored summary.", resume.Summary)
	require.Len(t, resume.Experience, 1)
	assert.Equal(t, "Acme", resume.Experience[0].Company)

	// Prompt carries the job context and master data, minus excluded entries.
	assert.Contains(t, client.lastUser, "Postscript")
	assert.Contains(t, client.lastUser, "Platform Engineer")
	assert.Contains(t, client.lastUser, "Acme")
	assert.NotContains(t, client.lastUser, "Old Shop")
	assert.Contains(t, client.lastUser, "python")
}

func TestResume_SchemaRejectsBadReply(t *testing.T) {
	// Missing required experience array.
	client := &fakeClient{reply: `{"summary": "x", "skills": []}`}

	_, err := Resume(context.Background(), client, testProfile(), "Acme", "Engineer", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume intermediate rejected")
}

const coverReply = `{
  "greeting": "Dear Hiring Team,",
  "opening": "I am excited to apply.",
  "body": ["Paragraph one.", "Paragraph two."],
  "closing": "Thank you.",
  "signature": "Alice Example"
}`

func TestCover_GeneratesAndDefaultsCompanyType(t *testing.T) {
	client := &fakeClient{reply: coverReply}

	cover, err := Cover(context.Background(), client, testProfile(), "Postscript", "Platform Engineer", "enterprise", "Postscript is an SMS marketing company.", nil)
	require.NoError(t, err)
	assert.Equal(t, "enterprise", cover.CompanyType)
	assert.Len(t, cover.Body, 2)
	assert.Contains(t, client.lastUser, "SMS marketing")
	assert.Contains(t, client.lastUser, "enterprise")
}

func TestCover_SchemaRejectsEmptyBody(t *testing.T) {
	client := &fakeClient{reply: `{"greeting": "Hi,", "opening": "x", "body": [], "closing": "y", "signature": "z"}`}

	_, err := Cover(context.Background(), client, testProfile(), "Acme", "Engineer", "agency", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cover intermediate rejected")
}
