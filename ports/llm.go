package ports

import "context"

// LLMClient is the outbound text-generation call. The pipeline treats it as
// opaque: model choice, auth, and endpoint belong to the implementation.
type LLMClient interface {
	ChatCompletion(ctx context.Context, system string, prompt string, maxTokens int) (string, error)
}
