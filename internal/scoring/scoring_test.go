package scoring

import (
	"context"
	"testing"

	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns canned responses and records the last prompt.
type fakeClient struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeClient) Chat(_ context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, system, user string) (string, error) {
	return f.Chat(ctx, system, user)
}

func (f *fakeClient) Embed(context.Context, string) ([]float32, error) {
	return nil, nil
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Summary: profile.Summaries{Short: "Data engineer, 8 years."},
		Experience: []profile.Experience{
			{Company: "Acme", Role: "Senior Data Engineer", Start: "2022-01"},
		},
		Skills: []profile.Skill{
			{Name: "Python", Years: 8},
			{Name: "SQL", Years: 7},
		},
	}
}

func TestScore_BuildsPromptFromProfileAndJob(t *testing.T) {
	client := &fakeClient{reply: "## Match Score: 78%\n## Recommendation: Proceed\n"}

	report, err := Score(context.Background(), client, testProfile(), "We need a data engineer.")
	require.NoError(t, err)

	assert.Equal(t, 78, report.MatchScore)
	assert.Equal(t, "Proceed", report.Recommendation)
	assert.Contains(t, client.lastUser, "Data engineer, 8 years.")
	assert.Contains(t, client.lastUser, "Python, SQL")
	assert.Contains(t, client.lastUser, "We need a data engineer.")
	assert.Contains(t, client.lastSystem, "career coach")
}

func TestParseReport(t *testing.T) {
	tests := []struct {
		name           string
		markdown       string
		score          int
		recommendation string
	}{
		{"well formed", "## Match Score: 85%\n## Recommendation: Strong Proceed\n## Advice\n...", 85, "Strong Proceed"},
		{"lowercase", "match score: 40%\nrecommendation: Skip", 40, "Skip"},
		{"missing sections", "The model went off script entirely.", 0, ""},
		{"score without percent sign", "Match Score: 70\n", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, rec := ParseReport(tt.markdown)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.recommendation, rec)
		})
	}
}
