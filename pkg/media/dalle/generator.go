package dalle

import (
	"context"
	"errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
)

var ErrNoImage = errors.New("image generation returned no data")

// Generator produces thumbnail images through the OpenAI images API
type Generator struct {
	client *goopenai.Client
	model  string
	size   string
}

func NewGenerator(apiKey, baseURL, model string) *Generator {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = goopenai.CreateImageModelDallE3
	}
	return &Generator{
		client: goopenai.NewClientWithConfig(cfg),
		model:  model,
		size:   goopenai.CreateImageSize1024x1024,
	}
}

// Thumbnail returns the hosted URL of one generated image
func (g *Generator) Thumbnail(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateImage(ctx, goopenai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		N:              1,
		Size:           g.size,
		ResponseFormat: goopenai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrNoImage
	}
	return resp.Data[0].URL, nil
}
