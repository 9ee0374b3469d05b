// Package search finds and ranks job records from free-text query terms
// when the caller does not have a reliable identifier.
package search

import (
	"sort"
	"strings"

	"github.com/jonathan/job-pipeline/internal/store"
)

// Per-term weights for each searchable field.
const (
	weightCompany = 3
	weightRole    = 3
	weightStatus  = 1
	weightUUID    = 10
)

// Candidate is the searchable view of one job record.
type Candidate struct {
	JobID   string
	UUID    string
	Company string
	Role    string
	Status  string
}

// Match is a candidate that fully matched at least one OR-group, annotated
// with its winning score and the field/term pairs that produced it.
type Match struct {
	Candidate
	Score          int
	MatchedBecause []string
}

// ParseGroups splits an ordered term list into OR-groups. The literal term
// "OR" (case-insensitive) separates groups; "AND" is accepted and ignored
// since terms within a group are AND-ed by default.
func ParseGroups(terms []string) [][]string {
	var groups [][]string
	var current []string

	for _, term := range terms {
		switch strings.ToUpper(term) {
		case "OR":
			if len(current) > 0 {
				groups = append(groups, current)
				current = nil
			}
		case "AND":
			// implied within a group
		default:
			current = append(current, term)
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Run scores every candidate against the query terms and returns the full
// group-matches ranked by score descending. A candidate qualifies only if
// every term of at least one OR-group matches a searchable field; its score
// is the best qualifying group's score. Equal scores order by job id
// ascending so ranking is deterministic regardless of directory iteration
// order.
func Run(candidates []Candidate, terms []string) []Match {
	groups := ParseGroups(terms)
	if len(groups) == 0 {
		return nil
	}

	var matches []Match
	for _, cand := range candidates {
		best, details, ok := scoreCandidate(cand, groups)
		if !ok {
			continue
		}
		matches = append(matches, Match{Candidate: cand, Score: best, MatchedBecause: details})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].JobID < matches[j].JobID
	})
	return matches
}

// scoreCandidate returns the best full-group score for the candidate and
// the matched field/term annotations of that winning group. Partial group
// matches contribute nothing.
func scoreCandidate(cand Candidate, groups [][]string) (int, []string, bool) {
	company := strings.ToLower(cand.Company)
	role := strings.ToLower(cand.Role)
	status := strings.ToLower(cand.Status)
	id := strings.ToLower(cand.UUID)

	bestScore := 0
	var bestDetails []string
	matched := false

	for _, group := range groups {
		score := 0
		var details []string
		allTermsMatched := true

		for _, raw := range group {
			term := strings.ToLower(raw)
			termMatched := false

			if strings.Contains(company, term) {
				score += weightCompany
				details = append(details, "Company("+raw+")")
				termMatched = true
			}
			if strings.Contains(role, term) {
				score += weightRole
				details = append(details, "Role("+raw+")")
				termMatched = true
			}
			if strings.Contains(status, term) {
				score += weightStatus
				details = append(details, "Status("+raw+")")
				termMatched = true
			}
			if id != "" && strings.Contains(id, term) {
				score += weightUUID
				details = append(details, "UUID")
				termMatched = true
			}

			if !termMatched {
				allTermsMatched = false
				break
			}
		}

		if allTermsMatched && score > 0 {
			matched = true
			if score > bestScore {
				bestScore = score
				bestDetails = details
			}
		}
	}

	return bestScore, bestDetails, matched
}

// LoadCandidates builds the searchable view of every record in the store.
// Records without readable metadata still appear with Unknown fields so a
// UUID-less folder can at least be listed.
func LoadCandidates(s *store.Store) ([]Candidate, error) {
	folders, err := s.ListFolders()
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(folders))
	for _, name := range folders {
		cand := Candidate{JobID: name, Company: "Unknown", Role: "Unknown", Status: "Unknown"}
		if meta, err := s.ReadMetadata(name); err == nil {
			cand.UUID = meta.UUID
			cand.Company = meta.Company
			cand.Role = meta.Role
			cand.Status = meta.CurrentStatus()
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}
