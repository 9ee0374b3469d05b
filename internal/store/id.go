package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// counterPattern captures the 5-digit counter component of a folder name.
var counterPattern = regexp.MustCompile(`^(\d{5})_[0-9a-f]{8}$`)

// JobID is a freshly minted composite identifier for a new record.
type JobID struct {
	// ID is the composite folder name, NNNNN_xxxxxxxx.
	ID string
	// UUID is the full generated identifier; the folder name carries only
	// its first 8 hex characters.
	UUID string
	// Counter is the 5-digit sequence number component.
	Counter int
}

// NextJobID allocates the next composite job id: the maximum counter found
// among existing record folders plus one, joined to the first 8 hex chars of
// a new random UUID. Allocation is serialized through a lock file so two
// invocations cannot pick the same counter.
func (s *Store) NextJobID() (*JobID, error) {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create record store %s: %w", s.Root, err)
	}

	lock := flock.New(filepath.Join(s.Root, ".idalloc.lock"))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock id allocation: %w", err)
	}
	defer lock.Unlock()

	folders, err := s.ListFolders()
	if err != nil {
		return nil, err
	}

	maxSeen := 0
	for _, name := range folders {
		m := counterPattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > maxSeen {
			maxSeen = n
		}
	}

	full := uuid.NewString()
	counter := maxSeen + 1
	id := &JobID{
		ID:      fmt.Sprintf("%05d_%s", counter, full[:8]),
		UUID:    full,
		Counter: counter,
	}

	// Creating the folder under the same lock reserves the counter before
	// any other allocator can scan.
	if err := s.CreateRecordDirs(id.ID); err != nil {
		return nil, err
	}
	return id, nil
}
