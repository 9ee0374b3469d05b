package dupcheck

import (
	"context"
	"fmt"

	"github.com/jonathan/job-pipeline/internal/llm"
)

// Defaults for the duplicate decision.
const (
	DefaultThreshold = 0.82
	DefaultTopK      = 5
)

// Querier is the nearest-neighbor lookup the checker runs against.
type Querier interface {
	Query(ctx context.Context, vector []float32, topK int) ([]Hit, error)
}

// Result holds the ranked neighbors and the duplicate verdict.
type Result struct {
	Hits      []Hit
	Threshold float32
	Duplicate bool
}

// Checker embeds intake text and looks for near-duplicate postings.
type Checker struct {
	Client    llm.Client
	Index     Querier
	Threshold float32
	TopK      int
}

// Check embeds the posting text and queries the collection. The posting is a
// duplicate when any neighbor's similarity reaches the threshold.
func (c *Checker) Check(ctx context.Context, text string) (*Result, error) {
	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	topK := c.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := c.Client.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding posting text: %w", err)
	}

	hits, err := c.Index.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("querying posting index: %w", err)
	}

	result := &Result{Hits: hits, Threshold: threshold}
	for _, hit := range hits {
		if hit.Similarity >= threshold {
			result.Duplicate = true
			break
		}
	}
	return result, nil
}
