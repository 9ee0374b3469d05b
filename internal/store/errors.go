package store

import (
	"fmt"
	"strings"
)

// NotFoundError indicates that no record folder matched a token.
type NotFoundError struct {
	Token    string
	Attempts []string
}

func (e *NotFoundError) Error() string {
	if len(e.Attempts) > 0 {
		return fmt.Sprintf("no job folder found for %q (tried: %s)", e.Token, strings.Join(e.Attempts, ", "))
	}
	return fmt.Sprintf("no job folder found for %q", e.Token)
}

// AmbiguousError indicates that more than one record folder matched a token.
// Candidates lists every matching folder name so the caller can retry with a
// longer token.
type AmbiguousError struct {
	Token      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous identifier %q matches %d folders:\n  %s",
		e.Token, len(e.Candidates), strings.Join(e.Candidates, "\n  "))
}

// MetadataError indicates a failed read or write of a record's metadata.yaml.
type MetadataError struct {
	Path  string
	Op    string
	Cause error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("failed to %s metadata %s: %v", e.Op, e.Path, e.Cause)
}

func (e *MetadataError) Unwrap() error {
	return e.Cause
}
