package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, folders ...string) *Store {
	t.Helper()
	s := New(t.TempDir())
	for _, name := range folders {
		require.NoError(t, os.MkdirAll(filepath.Join(s.Root, name), 0o755))
	}
	return s
}

func TestListFolders_FiltersNonRecordEntries(t *testing.T) {
	s := newTestStore(t, "00002_bbbbbbbb", "00001_aaaaaaaa", "not-a-record")
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "stray.txt"), []byte("x"), 0o644))

	folders, err := s.ListFolders()
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_aaaaaaaa", "00002_bbbbbbbb"}, folders)
}

func TestListFolders_MissingRootIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))

	folders, err := s.ListFolders()
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestNextJobID_StartsAtOne(t *testing.T) {
	s := New(t.TempDir())

	id, err := s.NextJobID()
	require.NoError(t, err)
	assert.Equal(t, 1, id.Counter)
	assert.Regexp(t, `^00001_[0-9a-f]{8}$`, id.ID)
	assert.Len(t, id.UUID, 36)
	assert.Equal(t, id.UUID[:8], id.ID[6:])
	assert.DirExists(t, filepath.Join(s.RecordDir(id.ID), "raw"))
}

func TestNextJobID_CounterStrictlyIncreases(t *testing.T) {
	s := newTestStore(t, "00001_aaaaaaaa", "00007_bbbbbbbb")

	id, err := s.NextJobID()
	require.NoError(t, err)
	assert.Equal(t, 8, id.Counter)

	// Deleting an unrelated earlier folder must not let the counter reuse
	// a number below the maximum seen.
	require.NoError(t, os.RemoveAll(s.RecordDir("00001_aaaaaaaa")))
	next, err := s.NextJobID()
	require.NoError(t, err)
	assert.Equal(t, 9, next.Counter)
}

func TestResolve_ExactMatchWins(t *testing.T) {
	// An exact folder-name match takes precedence even when another folder
	// would also match the token as a substring.
	s := newTestStore(t, "00001_aaaaaaaa", "00002_aaaaaaab")
	name, err := s.Resolve("00001_aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "00001_aaaaaaaa", name)
}

func TestResolve_ShortPrefixAmbiguous(t *testing.T) {
	s := newTestStore(t, "00001_aaaaaaaa", "00002_aaaaaaab")

	_, err := s.Resolve("aaaaaa")
	var ambiguous *AmbiguousError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"00001_aaaaaaaa", "00002_aaaaaaab"}, ambiguous.Candidates)
}

func TestResolve_UniqueSubstringMatch(t *testing.T) {
	s := newTestStore(t, "00001_aaaaaaaa", "00002_aaaaaaab")

	name, err := s.Resolve("aaaaaaaa")
	require.NoError(t, err)
	assert.Equal(t, "00001_aaaaaaaa", name)
}

func TestResolve_FullUUIDFallsBackToPrefix(t *testing.T) {
	s := newTestStore(t, "00003_deadbeef")

	name, err := s.Resolve("deadbeef-0000-4000-8000-123456789abc")
	require.NoError(t, err)
	assert.Equal(t, "00003_deadbeef", name)
}

func TestResolve_EmptyTokenNotFound(t *testing.T) {
	s := newTestStore(t, "00001_aaaaaaaa")

	_, err := s.Resolve("")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolve_NotFoundListsAttempts(t *testing.T) {
	s := newTestStore(t, "00001_aaaaaaaa")

	_, err := s.Resolve("ffffffff")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ffffffff", notFound.Token)
	assert.NotEmpty(t, notFound.Attempts)
	assert.Contains(t, err.Error(), "*_ffffffff*")
}

func TestResolve_IsIdempotent(t *testing.T) {
	s := newTestStore(t, "00001_aaaaaaaa", "00002_bbbbbbbb")

	first, err := s.Resolve("bbbbbbbb")
	require.NoError(t, err)
	second, err := s.Resolve("bbbbbbbb")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMetadata_RoundTrip(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.CreateRecordDirs("00001_abcd1234"))

	meta := &Metadata{
		UUID:    "abcd1234-1111-2222-3333-444455556666",
		JobID:   "00001_abcd1234",
		Company: "Acme",
		Role:    "Data Engineer",
		Created: "2026-02-05",
		Status:  StatusPending,
		Score:   &ScoreResult{MatchScore: 82, Recommendation: "Proceed"},
		Application: &Application{
			Applied:        true,
			AppliedDate:    "2026-02-06",
			AppliedMethod:  "Company Site",
			LastStatus:     "INTERVIEW",
			LastStatusDate: "2026-02-10",
			History: []HistoryEvent{
				{Date: "2026-02-06", Status: "Applied", Notes: "Tailored cover attached"},
				{Date: "2026-02-10", Status: "INTERVIEW", Notes: "Phone screen Feb 12"},
			},
		},
	}

	require.NoError(t, s.WriteMetadata("00001_abcd1234", meta))

	got, err := s.ReadMetadata("00001_abcd1234")
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestReadMetadata_MissingFileFails(t *testing.T) {
	s := newTestStore(t, "00001_aaaaaaaa")

	_, err := s.ReadMetadata("00001_aaaaaaaa")
	var metaErr *MetadataError
	require.ErrorAs(t, err, &metaErr)
	assert.Equal(t, "read", metaErr.Op)
}

func TestLatestArtifact_ByFilenameSort(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.CreateRecordDirs("00001_abcd1234"))

	dir := filepath.Join(s.RecordDir("00001_abcd1234"), "score")
	for _, name := range []string{"score_report_20260210.md", "score_report_20260101.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	latest, err := s.LatestArtifact("00001_abcd1234", "score", "score_report_*.md")
	require.NoError(t, err)
	assert.Equal(t, "score_report_20260210.md", filepath.Base(latest))
}

func TestLatestArtifact_NoMatchesIsEmpty(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.CreateRecordDirs("00001_abcd1234"))

	latest, err := s.LatestArtifact("00001_abcd1234", "score", "score_report_*.md")
	require.NoError(t, err)
	assert.Empty(t, latest)
}
