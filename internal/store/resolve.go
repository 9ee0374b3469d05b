package store

import (
	"fmt"
	"strings"
)

// Resolve maps a user-supplied token back to exactly one record folder name.
// Resolution order:
//
//  1. A folder named exactly like the token wins outright.
//  2. Otherwise every folder whose name contains "_"+token is a candidate;
//     when that yields nothing the first 8 characters of the token are
//     retried with the same rule (full UUIDs are longer than the stored
//     8-char prefix).
//
// Exactly one candidate resolves; more than one fails with AmbiguousError
// listing every match, zero fails with NotFoundError listing the attempted
// lookups. Resolve never mutates the store and applies no best-match
// heuristic; free-text lookup belongs to the search package.
func (s *Store) Resolve(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", &NotFoundError{Token: token}
	}

	folders, err := s.ListFolders()
	if err != nil {
		return "", err
	}

	for _, name := range folders {
		if name == token {
			return name, nil
		}
	}

	attempts := []string{fmt.Sprintf("*_%s*", token)}
	candidates := matchSubstring(folders, token)

	if len(candidates) == 0 && len(token) > 8 {
		short := token[:8]
		attempts = append(attempts, fmt.Sprintf("*_%s*", short))
		candidates = matchSubstring(folders, short)
	}

	switch len(candidates) {
	case 1:
		return candidates[0], nil
	case 0:
		return "", &NotFoundError{Token: token, Attempts: attempts}
	default:
		return "", &AmbiguousError{Token: token, Candidates: candidates}
	}
}

// matchSubstring returns folders containing "_"+token anywhere in the name.
func matchSubstring(folders []string, token string) []string {
	var out []string
	for _, name := range folders {
		if strings.Contains(name, "_"+token) {
			out = append(out, name)
		}
	}
	return out
}
