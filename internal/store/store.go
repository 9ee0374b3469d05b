package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/google/renameio/v2"
)

// MetadataFile is the name of the per-record metadata file.
const MetadataFile = "metadata.yaml"

// folderPattern matches record folder names: a zero-padded 5-digit counter
// joined to an 8-character hex prefix of the record's full UUID.
var folderPattern = regexp.MustCompile(`^\d{5}_[0-9a-f]{8}$`)

// Store is a directory of job record folders. The root is always threaded
// explicitly; there is no ambient default path.
type Store struct {
	Root string
}

// New returns a Store rooted at dir. The directory is created on first
// record creation, not here.
func New(dir string) *Store {
	return &Store{Root: dir}
}

// RecordDir returns the absolute path of the folder for the given job id.
func (s *Store) RecordDir(jobID string) string {
	return filepath.Join(s.Root, jobID)
}

// ListFolders returns the names of all record folders under the root,
// sorted ascending by name (and therefore by counter). A missing root is
// treated as an empty store.
func (s *Store) ListFolders() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record store %s: %w", s.Root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && folderPattern.MatchString(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CreateRecordDirs creates the record folder and its artifact subdirectories.
func (s *Store) CreateRecordDirs(jobID string) error {
	for _, sub := range []string{"raw", "score", "tailored", "generated", "research"} {
		if err := os.MkdirAll(filepath.Join(s.Root, jobID, sub), 0o755); err != nil {
			return fmt.Errorf("failed to create record folder %s: %w", jobID, err)
		}
	}
	return nil
}

// ReadMetadata loads and parses a record's metadata.yaml.
func (s *Store) ReadMetadata(jobID string) (*Metadata, error) {
	path := filepath.Join(s.RecordDir(jobID), MetadataFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MetadataError{Path: path, Op: "read", Cause: err}
	}

	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, &MetadataError{Path: path, Op: "parse", Cause: err}
	}
	return &meta, nil
}

// WriteMetadata serializes and writes a record's metadata.yaml. The write
// goes through a temp file and an atomic rename so a crash mid-write cannot
// leave a truncated file behind.
func (s *Store) WriteMetadata(jobID string, meta *Metadata) error {
	path := filepath.Join(s.RecordDir(jobID), MetadataFile)

	data, err := yaml.Marshal(meta)
	if err != nil {
		return &MetadataError{Path: path, Op: "serialize", Cause: err}
	}

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return &MetadataError{Path: path, Op: "write", Cause: err}
	}
	return nil
}

// HasMetadata reports whether a record folder has a persisted metadata.yaml.
func (s *Store) HasMetadata(jobID string) bool {
	_, err := os.Stat(filepath.Join(s.RecordDir(jobID), MetadataFile))
	return err == nil
}

// LatestArtifact returns the path of the lexicographically last file in the
// record subdirectory whose name matches pattern (a filepath.Match glob).
// "Latest" is defined by filename sort, not modification time, so timestamp
// and version tags in names decide recency. Returns empty string when
// nothing matches.
func (s *Store) LatestArtifact(jobID, subdir, pattern string) (string, error) {
	dir := filepath.Join(s.RecordDir(jobID), subdir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read artifact dir %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return "", fmt.Errorf("bad artifact pattern %q: %w", pattern, err)
		}
		if ok {
			matches = append(matches, entry.Name())
		}
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return filepath.Join(dir, matches[len(matches)-1]), nil
}
