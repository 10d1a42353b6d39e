package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/tsubasa-k2/gitmuse/internal/log"
)

// Result holds the generated message and token accounting for a single
// chat completion.
type Result struct {
	Message          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Generate performs one synchronous chat completion: the prompt template
// as the system message, the payload as the user message, in that order.
// The returned message content is trimmed of surrounding whitespace.
func Generate(ctx context.Context, provider Provider, retry RetryConfig, systemPrompt, userContent string) (*Result, error) {
	chatModel, err := provider.CreateChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	messages := []*schema.Message{
		{
			Role:    schema.System,
			Content: systemPrompt,
		},
		{
			Role:    schema.User,
			Content: userContent,
		},
	}

	log.Debug("Sending request to LLM: provider=%s, model=%s", provider.Name(), provider.GetConfig().Model)

	start := time.Now()
	resp, err := WithRetry(ctx, retry, func() (*schema.Message, error) {
		return chatModel.Generate(ctx, messages)
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	log.DebugDuration("chat completion", time.Since(start))

	content := strings.TrimSpace(resp.Content)
	if content == "" {
		return nil, fmt.Errorf("malformed response from %s: empty message content", provider.Name())
	}

	result := &Result{Message: content}
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		usage := resp.ResponseMeta.Usage
		result.PromptTokens = usage.PromptTokens
		result.CompletionTokens = usage.CompletionTokens
		result.TotalTokens = usage.TotalTokens
		log.DebugTokenUsage(usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}

	return result, nil
}
