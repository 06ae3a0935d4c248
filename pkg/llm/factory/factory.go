package factory

import (
	"context"
	"fmt"

	"student-analyzer-be/pkg/llm"
	"student-analyzer-be/pkg/llm/gemini"
	"student-analyzer-be/pkg/llm/ollama"
	"student-analyzer-be/pkg/llm/openai"
)

// Config selects and configures one LLM backend
type Config struct {
	Provider string // "gemini", "openai", "ollama"
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "openai":
		return openai.NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
