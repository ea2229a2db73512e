package googleEmbedding

import (
	"context"
	"fmt"

	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/rag/embedding"
	"github.com/cone-one/ragchat/pkg/logger_i"
	"google.golang.org/genai"
)

var dimension int32 = config.EmbeddingOutputDimensionality

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

// NewEmbedder builds the Google embedding client. Output dimensionality is
// pinned to the provisioned index geometry.
func NewEmbedder(ctx context.Context, modelName string, apikey string) (embedding.Embedder, error) {
	logger := logger_i.NewLogger("google_embedding")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}

	logger.Info("Google Embedding client created", "model", modelName)
	return &client{genAi: c, model: modelName, logger: logger}, nil
}

func (c *client) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(query),
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_QUERY"})
	if err != nil {
		log.Error("Error getting query embedding", "error", err.Error())
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding response for query")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) EmbedDocuments(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	content := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		content = append(content, genai.Text(chunk)...)
	}

	result, err := c.genAi.Models.EmbedContent(ctx, c.model, content,
		&genai.EmbedContentConfig{OutputDimensionality: &dimension, TaskType: "RETRIEVAL_DOCUMENT"})
	if err != nil {
		log.Error("Error getting document embeddings", "error", err.Error())
		return nil, err
	}

	var vectors [][]float32
	for _, r := range result.Embeddings {
		vectors = append(vectors, r.Values)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}
	return vectors, nil
}
