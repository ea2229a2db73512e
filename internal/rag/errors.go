package rag

import "errors"

// Failure kinds. Every pipeline error wraps exactly one of these so callers
// can branch with errors.Is instead of matching on message text.
var (
	ErrEmbedding  = errors.New("embedding failed")
	ErrRetrieval  = errors.New("vector search failed")
	ErrGeneration = errors.New("llm generation failed")
	ErrIngestion  = errors.New("ingestion failed")
)
