package vectorDB

import (
	"context"

	"github.com/cone-one/ragchat/internal/domain/commonModels"
)

type DataProcessor interface {
	// EnsureIndex is idempotent, safe to call on every process startup. It
	// returns a human readable status ("already exists" or "ready").
	EnsureIndex(ctx context.Context) (string, error)

	// Search returns the texts of the best matching chunks, best first.
	Search(ctx context.Context, queryVector []float32) ([]string, error)

	UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
}
