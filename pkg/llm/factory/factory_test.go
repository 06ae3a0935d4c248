package factory

import (
	"context"
	"testing"

	"student-analyzer-be/pkg/llm/gemini"
	"student-analyzer-be/pkg/llm/ollama"
	"student-analyzer-be/pkg/llm/openai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewLLMProvider(ctx, Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)

	p, err = NewLLMProvider(ctx, Config{Provider: "openai", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)

	p, err = NewLLMProvider(ctx, Config{Provider: "gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	_, err = NewLLMProvider(ctx, Config{Provider: "claude"})
	assert.Error(t, err)
}
