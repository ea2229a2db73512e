package rag_test

import (
	"context"

	"github.com/cone-one/ragchat/internal/data/store"
	"github.com/cone-one/ragchat/internal/domain/commonModels"
)

type mockVectorDB struct {
	ensureIndex func(ctx context.Context) (string, error)
	search      func(ctx context.Context, queryVector []float32) ([]string, error)
	upsertBatch func(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error
}

func (m *mockVectorDB) EnsureIndex(ctx context.Context) (string, error) {
	if m.ensureIndex == nil {
		return "ready", nil
	}
	return m.ensureIndex(ctx)
}

func (m *mockVectorDB) Search(ctx context.Context, queryVector []float32) ([]string, error) {
	return m.search(ctx, queryVector)
}

func (m *mockVectorDB) UpsertBatch(ctx context.Context, chunks []commonModels.DocChunk, vectors [][]float32) error {
	if m.upsertBatch == nil {
		return nil
	}
	return m.upsertBatch(ctx, chunks, vectors)
}

type mockEmbedder struct {
	embedQuery     func(ctx context.Context, query string) ([]float32, error)
	embedDocuments func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	return m.embedQuery(ctx, query)
}

func (m *mockEmbedder) EmbedDocuments(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.embedDocuments == nil {
		vectors := make([][]float32, len(chunks))
		for i := range chunks {
			vectors[i] = []float32{0.5}
		}
		return vectors, nil
	}
	return m.embedDocuments(ctx, chunks)
}

type mockLLM struct {
	generate func(ctx context.Context, query string, contextText string, history []string) (string, error)
}

func (m *mockLLM) Generate(ctx context.Context, query string, contextText string, history []string) (string, error) {
	return m.generate(ctx, query, contextText, history)
}

type mockHistory struct {
	appendExchange func(ctx context.Context, chatID string, exchange store.Exchange) error
	history        func(ctx context.Context, chatID string) ([]string, error)
}

func (m *mockHistory) AppendExchange(ctx context.Context, chatID string, exchange store.Exchange) error {
	if m.appendExchange == nil {
		return nil
	}
	return m.appendExchange(ctx, chatID, exchange)
}

func (m *mockHistory) History(ctx context.Context, chatID string) ([]string, error) {
	if m.history == nil {
		return nil, nil
	}
	return m.history(ctx, chatID)
}
