// Package research classifies companies and produces research summaries
// used by the cover letter phase.
package research

import "fmt"

// ClassificationError reports an unusable classification reply. The company
// type is never guessed on a bad reply.
type ClassificationError struct {
	Company string
	Reply   string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification for %q returned neither agency nor enterprise: %q", e.Company, e.Reply)
}

// FetchError represents a failure retrieving or parsing a company website.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}
