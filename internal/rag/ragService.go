package rag

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/data/store"
	"github.com/cone-one/ragchat/internal/metrics"
	"github.com/cone-one/ragchat/internal/rag/embedding"
	"github.com/cone-one/ragchat/internal/rag/ingest"
	"github.com/cone-one/ragchat/internal/rag/llm"
	"github.com/cone-one/ragchat/internal/rag/vectorDB"
	"github.com/cone-one/ragchat/pkg/logger_i"
)

// Service is the surface the handlers call. It hides the provider clients so
// the HTTP layer never touches the vector store or the LLM directly.
type Service interface {
	Answer(ctx context.Context, userQuery string, chatID string) (string, error)
	IngestPDF(ctx context.Context, fileName string, content []byte) (string, error)
	IngestURL(ctx context.Context, url string) (string, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	history     store.MessageStore
	logger      *logger_i.Logger
}

// NewService wires the pipeline. All dependencies are constructed by the
// caller before traffic is accepted; nothing here is lazy.
func NewService(vector vectorDB.DataProcessor, llmProvider llm.Provider, embedder embedding.Embedder, history store.MessageStore) Service {
	return &service{
		vectorDB:    vector,
		llmProvider: llmProvider,
		embedder:    embedder,
		history:     history,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// Answer runs retrieve -> assemble -> generate and returns the model output
// verbatim. An empty retrieval result is not an error: the model is told the
// context is empty and instructed to say so.
func (s *service) Answer(ctx context.Context, userQuery string, chatID string) (string, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	processCtx, cancel := context.WithTimeout(ctx, config.PipelineTimeout)
	defer cancel()

	queryVector, err := s.executeEmbeddingStep(processCtx, userQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmbedding, err)
	}

	matches, err := s.executeSearchStep(processCtx, queryVector)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRetrieval, err)
	}
	contextText := strings.Join(matches, "\n\n")

	messageHistory := s.loadHistory(processCtx, chatID, log)

	answer, err := s.executeLLMStep(processCtx, userQuery, contextText, messageHistory)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if chatID != "" {
		// history save is best effort, failure must not fail the answer
		if err := s.history.AppendExchange(ctx, chatID, store.Exchange{Question: userQuery, Answer: answer}); err != nil {
			log.Error("Failed to save chat history", "error", err)
		}
	}

	return answer, nil
}

// IngestPDF writes the upload to a transient temp_<filename> file, runs file
// extraction and chunk storage, and removes the file on every exit path.
func (s *service) IngestPDF(ctx context.Context, fileName string, content []byte) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_ingestion", time.Since(start)) }()

	tempFilePath := "temp_" + filepath.Base(fileName)
	if err := os.WriteFile(tempFilePath, content, 0o600); err != nil {
		return "", fmt.Errorf("%w: writing upload: %v", ErrIngestion, err)
	}
	defer func() {
		if err := os.Remove(tempFilePath); err != nil {
			s.logger.Error("Error removing temp file", "path", tempFilePath, "error", err)
		}
	}()

	count, err := ingest.ProcessFile(ctx, tempFilePath, fileName, s.embedder, s.vectorDB)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIngestion, err)
	}

	metrics.AddChunksIngested(count)
	return fmt.Sprintf("Successfully ingested %s into vector db", fileName), nil
}

func (s *service) IngestURL(ctx context.Context, url string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("url_ingestion", time.Since(start)) }()

	count, err := ingest.ProcessURL(ctx, url, s.embedder, s.vectorDB)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIngestion, err)
	}

	metrics.AddChunksIngested(count)
	return fmt.Sprintf("Successfully ingested content from %s into vector db", url), nil
}
