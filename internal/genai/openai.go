package genai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const openaiDefaultModel = "gpt-4o"

// openaiGenerator implements Generator for OpenAI chat models.
type openaiGenerator struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI generator. If apiKey is empty, OPENAI_API_KEY
// is used.
func NewOpenAI(apiKey, model string) Generator {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if model == "" {
		model = openaiDefaultModel
	}
	return &openaiGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *openaiGenerator) Info() ModelInfo {
	return ModelInfo{
		Name:          o.model,
		Provider:      ProviderOpenAI,
		SupportsAudio: false,
	}
}

func (o *openaiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if len(req.Audio) > 0 {
		return "", errors.New("genai: openai does not accept audio input")
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.Params.MaxOutputTokens,
		Temperature: float32(req.Params.Temperature),
		TopP:        float32(req.Params.TopP),
	})
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoText
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
