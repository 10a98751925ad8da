package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient embeds image content through the multimodal EmbedContent API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Embed(ctx context.Context, img Image) ([]float32, error) {
	// genai wants the bare format ("jpeg"), not the full MIME type.
	format := strings.TrimPrefix(img.MIME, "image/")

	em := c.client.EmbeddingModel(c.model)
	res, err := em.EmbedContent(ctx, genai.ImageData(format, img.Data))
	if err != nil {
		return nil, err
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding values")
	}
	return res.Embedding.Values, nil
}
