package rag

import (
	"context"
	"time"

	"github.com/cone-one/ragchat/internal/metrics"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

func (s *service) executeEmbeddingStep(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.EmbedQuery(ctx, query)
}

func (s *service) executeSearchStep(ctx context.Context, queryVector []float32) ([]string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.vectorDB.Search(ctx, queryVector)
}

func (s *service) executeLLMStep(ctx context.Context, query string, contextText string, history []string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, query, contextText, history)
}

func (s *service) loadHistory(ctx context.Context, chatID string, log *logger_i.Logger) []string {
	if chatID == "" {
		return nil
	}
	history, err := s.history.History(ctx, chatID)
	if err != nil {
		// degraded but not fatal: answer without conversational context
		log.Warn("Failed to load chat history", "chatId", chatID, "error", err)
		return nil
	}
	return history
}
