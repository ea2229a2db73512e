package openaichat

import (
	"context"
	"fmt"

	"github.com/cone-one/ragchat/internal/config"
	"github.com/cone-one/ragchat/internal/rag"
	"github.com/cone-one/ragchat/internal/rag/llm"
	"github.com/cone-one/ragchat/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type chatClient struct {
	client    openai.Client
	modelName string
	logger    *logger_i.Logger
}

// NewProvider builds a chat client against any OpenAI-compatible endpoint.
// Model name, base URL and API key are all configuration driven.
func NewProvider(modelName string, baseURL string, apiKey string) llm.Provider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &chatClient{
		client:    openai.NewClient(opts...),
		modelName: modelName,
		logger:    logger_i.NewLogger("llm_openai"),
	}
}

func (c *chatClient) Generate(ctx context.Context, userQuery string, contextText string, messageHistory []string) (string, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(rag.SystemInstruction),
	}
	// Prior turns go in as plain assistant context. The provider only needs
	// them for continuity, not for grounding.
	for _, past := range messageHistory {
		messages = append(messages, openai.AssistantMessage(past))
	}
	messages = append(messages, openai.UserMessage(rag.BuildUserPrompt(userQuery, contextText)))

	result, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.modelName),
		Messages: messages,
	})
	if err != nil {
		log.Error("Chat completion failed", "error", err)
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
