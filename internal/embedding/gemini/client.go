package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"resume-screener/internal/embedding"
)

const (
	defaultModel = "text-embedding-004"
	// maxChars keeps a passage under the embedding model's token window.
	maxChars = 40000
)

// Client implements embedding.Embedder using the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini embeddings client.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Embed implements embedding.Embedder.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.Text(truncate(text))...)
	}

	result, err := c.client.Models.EmbedContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini embed: %w", embedding.ErrEmptyResult)
	}

	out := make([][]float32, len(result.Embeddings))
	for i, e := range result.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("gemini embed: vector %d missing: %w", i, embedding.ErrEmptyResult)
		}
		out[i] = e.Values
	}
	return out, nil
}

func truncate(text string) string {
	if len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut
}

var _ embedding.Embedder = (*Client)(nil)
