package llm

import (
	"fmt"

	"github.com/tsubasa-k2/gitmuse/internal/config"
)

// ProviderFactory creates LLM providers based on configuration
type ProviderFactory struct{}

// NewProviderFactory creates a new ProviderFactory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// Create creates a Provider based on the model configuration
func (f *ProviderFactory) Create(cfg config.ModelConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAICompatProvider("openai", cfg, ""), nil
	case "deepseek":
		return NewOpenAICompatProvider("deepseek", cfg, DeepseekDefaultBaseURL), nil
	case "grok":
		return NewOpenAICompatProvider("grok", cfg, GrokDefaultBaseURL), nil
	case "ollama":
		return NewOllamaProvider(cfg), nil
	case "gemini":
		return NewGeminiProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
