package genai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

const claudeDefaultModel = "claude-sonnet-4-6"

// claudeGenerator implements Generator for Anthropic Claude.
type claudeGenerator struct {
	client *anthropic.Client
	model  string
}

// NewClaude creates a Claude generator. If apiKey is empty, ANTHROPIC_API_KEY
// is used.
func NewClaude(apiKey, model string) Generator {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if model == "" {
		model = claudeDefaultModel
	}
	return &claudeGenerator{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (c *claudeGenerator) Info() ModelInfo {
	return ModelInfo{
		Name:          c.model,
		Provider:      ProviderClaude,
		SupportsAudio: false,
	}
}

func (c *claudeGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if len(req.Audio) > 0 {
		return "", errors.New("genai: claude does not accept audio input")
	}

	temp := float32(req.Params.Temperature)
	topP := float32(req.Params.TopP)
	topK := req.Params.TopK

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(req.Prompt)},
			},
		},
		MaxTokens:   req.Params.MaxOutputTokens,
		Temperature: &temp,
		TopP:        &topP,
		TopK:        &topK,
	})
	if err != nil {
		return "", fmt.Errorf("claude generate: %w", err)
	}

	var parts []string
	for _, block := range resp.Content {
		if t := block.GetText(); t != "" {
			parts = append(parts, t)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, ""))
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
