package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Juicern/scribe/internal/domain"
)

const DefaultOpenAIModel = openai.GPT4oMini

type OpenAIClient struct {
	client  *openai.Client
	model   string
	profile domain.GenerationProfile
}

func NewOpenAIClient(settings Settings) (*OpenAIClient, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}

	cfg := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		cfg.BaseURL = settings.BaseURL
	}

	model := settings.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		profile: settings.Profile,
	}, nil
}

// Generate routes prompts carrying audio to the transcription endpoint and
// everything else to chat completions.
func (c *OpenAIClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if prompt.Inline != nil {
		return c.transcribe(ctx, prompt)
	}

	// top_p is dropped by the SDK when zero and top_k has no OpenAI
	// equivalent, so only temperature and the token cap reach the API.
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt.Text,
			},
		},
		Temperature: c.profile.Temperature,
		TopP:        c.profile.TopP,
		MaxTokens:   int(c.profile.MaxOutputTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) transcribe(ctx context.Context, prompt Prompt) (string, error) {
	inline := prompt.Inline
	data, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		return "", fmt.Errorf("decode inline data: %w", err)
	}

	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       openai.Whisper1,
		FilePath:    "upload" + audioExtension(inline.MIMEType),
		Reader:      bytes.NewReader(data),
		Prompt:      prompt.Text,
		Temperature: c.profile.Temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func audioExtension(mimeType string) string {
	switch mimeType {
	case "audio/wav":
		return ".wav"
	case "audio/mpeg":
		return ".mp3"
	case "audio/ogg", "audio/opus":
		return ".ogg"
	case "audio/webm":
		return ".webm"
	default:
		return ""
	}
}
