package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-pipeline/internal/profile"
	"github.com/jonathan/job-pipeline/internal/store"
)

// scriptedClient routes fake replies by prompt content so one client can
// serve every phase of a run.
type scriptedClient struct {
	failPhase string
}

const (
	scoreReply = "## Match Score: 85%\n\nStrong overlap.\n\nRecommendation: Apply\n"

	tailorReply = `{"summary": "Platform role", "responsibilities": ["Build services"],
		"requirements": ["Go"], "preferred": [], "benefits": [], "keywords": ["go"]}`

	resumeReply = `{"summary": "Go engineer.", "skills": ["Go"],
		"experience": [{"company": "Acme", "role": "Engineer", "start": "2020-01", "bullets": ["Shipped things"]}],
		"education": [{"institution": "State University", "degree": "BSc"}]}`

	coverReply = `{"greeting": "Dear Team,", "opening": "I want this role.",
		"body": ["I fit."], "closing": "Thanks.", "signature": "Jordan Smith"}`
)

func (c *scriptedClient) Chat(_ context.Context, _, user string) (string, error) {
	switch {
	case strings.Contains(user, "Match Score"):
		if c.failPhase == "score" {
			return "", errors.New("scripted score failure")
		}
		return scoreReply, nil
	case strings.Contains(user, "classify") || strings.Contains(user, "Reply ONLY with one word"):
		if c.failPhase == "research" {
			return "", errors.New("scripted research failure")
		}
		return "enterprise", nil
	default:
		return "Globex builds robots.", nil
	}
}

func (c *scriptedClient) ChatJSON(_ context.Context, _, user string) (string, error) {
	switch {
	case strings.Contains(user, "cover letter"):
		return coverReply, nil
	case strings.Contains(user, "resume"):
		if c.failPhase == "resume" {
			return "", errors.New("scripted resume failure")
		}
		return resumeReply, nil
	default:
		return tailorReply, nil
	}
}

func (c *scriptedClient) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Personal: profile.Personal{Name: "Jordan Smith", Email: "jordan@example.com"},
		Summary:  profile.Summaries{Short: "Go engineer."},
		Experience: []profile.Experience{
			{Company: "Acme", Role: "Engineer", Start: "2020-01",
				Bullets: []string{"Shipped things"}},
		},
	}
}

func writeIntake(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "00001.Globex.Platform_Engineer.02052026.1200.md")
	content := "company: Globex\nrole: Platform Engineer\n\nWe need a platform engineer who knows Go."
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunEndToEnd(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "jobs"))

	result, err := Run(context.Background(), RunOptions{
		IntakePath: writeIntake(t),
		Version:    "v1",
		Store:      st,
		Client:     &scriptedClient{},
		Profile:    testProfile(),
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 85, result.MatchScore)

	recordDir := st.RecordDir(result.JobID)
	for _, artifact := range []string{
		"tailored/tailored_data_v1.yaml",
		"generated/resume_intermediate_v1.json",
		"generated/resume_preview_v1.md",
		"generated/resume_v1.docx",
		"research/company_research.yaml",
		"generated/cover_intermediate_v1.json",
		"generated/cover_preview_v1.md",
		"generated/cover_letter_v1.docx",
	} {
		_, err := os.Stat(filepath.Join(recordDir, artifact))
		assert.NoError(t, err, artifact)
	}

	meta, err := st.ReadMetadata(result.JobID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusAccepted, meta.Status)
	assert.Equal(t, "Globex", meta.Company)
	require.NotNil(t, meta.Application)
	assert.True(t, meta.Application.Applied)
	// decision + applied events
	assert.Len(t, meta.Application.History, 2)
}

func TestRunRegexMethodSkipsTailorLLM(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "jobs"))

	result, err := Run(context.Background(), RunOptions{
		IntakePath: writeIntake(t),
		Version:    "v1",
		Method:     "regex",
		Store:      st,
		Client:     &scriptedClient{},
		Profile:    testProfile(),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(st.RecordDir(result.JobID), "tailored", "tailored_data_v1.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "method: regex")
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "jobs"))

	_, err := Run(context.Background(), RunOptions{
		IntakePath: writeIntake(t),
		Version:    "v1",
		Store:      st,
		Client:     &scriptedClient{failPhase: "research"},
		Profile:    testProfile(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "research failed")

	// Phases before research completed and their artifacts stay.
	folders, listErr := st.ListFolders()
	require.NoError(t, listErr)
	require.Len(t, folders, 1)
	_, statErr := os.Stat(filepath.Join(st.RecordDir(folders[0]), "generated", "resume_v1.docx"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(st.RecordDir(folders[0]), "research", "company_research.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunScoreFailureLeavesNoMetadata(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "jobs"))

	_, err := Run(context.Background(), RunOptions{
		IntakePath: writeIntake(t),
		Store:      st,
		Client:     &scriptedClient{failPhase: "score"},
		Profile:    testProfile(),
	})
	require.Error(t, err)

	folders, listErr := st.ListFolders()
	require.NoError(t, listErr)
	require.Len(t, folders, 1)
	assert.False(t, st.HasMetadata(folders[0]))
}
