// Package dupcheck finds previously saved postings that are semantically
// close to a new intake file, using embeddings and a qdrant collection.
package dupcheck

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DefaultCollection is the qdrant collection holding posting embeddings.
const DefaultCollection = "job_postings"

// Index is a read-only view of the posting embedding collection.
type Index struct {
	conn       *grpc.ClientConn
	points     pb.PointsClient
	collection string
}

// NewIndex connects to a local qdrant instance. The collection is built and
// maintained outside this tool.
func NewIndex(addr, collection string) (*Index, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
	}

	return &Index{
		conn:       conn,
		points:     pb.NewPointsClient(conn),
		collection: collection,
	}, nil
}

// Close closes the gRPC connection.
func (ix *Index) Close() error {
	return ix.conn.Close()
}

// Hit is one nearest neighbor from the collection.
type Hit struct {
	UUID       string
	JobID      string
	Company    string
	Role       string
	Similarity float32
}

// Query returns the topK nearest postings for the given embedding.
func (ix *Index) Query(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	resp, err := ix.points.Search(ctx, &pb.SearchPoints{
		CollectionName: ix.collection,
		Vector:         vector,
		Limit:          uint64(topK),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	hits := make([]Hit, len(resp.Result))
	for i, scored := range resp.Result {
		hit := Hit{
			UUID:       scored.Id.GetUuid(),
			Similarity: scored.Score,
		}
		if v, ok := scored.Payload["job_id"]; ok {
			hit.JobID = v.GetStringValue()
		}
		if v, ok := scored.Payload["company"]; ok {
			hit.Company = v.GetStringValue()
		}
		if v, ok := scored.Payload["role"]; ok {
			hit.Role = v.GetStringValue()
		}
		hits[i] = hit
	}
	return hits, nil
}
