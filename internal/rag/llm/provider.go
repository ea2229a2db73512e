package llm

import "context"

type Provider interface {
	Generate(ctx context.Context, query string, contextText string, messageHistory []string) (string, error)
}
