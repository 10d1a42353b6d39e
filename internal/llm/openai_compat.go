package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/tsubasa-k2/gitmuse/internal/config"
)

const (
	// DeepseekDefaultBaseURL is the default API base URL for Deepseek
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	// GrokDefaultBaseURL is the default API base URL for xAI Grok
	GrokDefaultBaseURL = "https://api.x.ai/v1"
	// OllamaDefaultBaseURL is the default API base URL for local Ollama
	OllamaDefaultBaseURL = "http://localhost:11434/v1"
)

// OpenAICompatProvider implements Provider for any endpoint speaking
// the OpenAI chat-completion protocol (OpenAI, Deepseek, Grok, Ollama).
type OpenAICompatProvider struct {
	name string
	cfg  config.ModelConfig
}

// NewOpenAICompatProvider creates a provider for an OpenAI-compatible
// endpoint, applying the given base URL when none is configured.
func NewOpenAICompatProvider(name string, cfg config.ModelConfig, defaultBaseURL string) *OpenAICompatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &OpenAICompatProvider{name: name, cfg: cfg}
}

// NewOllamaProvider creates a provider for a local Ollama instance.
// Ollama needs no real key, but the protocol requires a placeholder.
func NewOllamaProvider(cfg config.ModelConfig) *OpenAICompatProvider {
	if cfg.APIKey == "" {
		cfg.APIKey = "ollama"
	}
	return NewOpenAICompatProvider("ollama", cfg, OllamaDefaultBaseURL)
}

// Name returns the provider name
func (p *OpenAICompatProvider) Name() string {
	return p.name
}

// GetConfig returns the model configuration
func (p *OpenAICompatProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel for the configured endpoint
func (p *OpenAICompatProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	cfg := &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
	}

	return openai.NewChatModel(ctx, cfg)
}
