package providers

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"

	"github.com/Juicern/scribe/internal/domain"
)

const DefaultGeminiModel = "gemini-2.0-flash"

type GeminiClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func NewGeminiClient(ctx context.Context, settings Settings) (*GeminiClient, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}

	cc := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if settings.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: settings.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := settings.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{
		client: client,
		model:  model,
		config: geminiConfig(settings.Profile),
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt Prompt) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(prompt.Text)}
	if prompt.Inline != nil {
		data, err := base64.StdEncoding.DecodeString(prompt.Inline.Data)
		if err != nil {
			return "", fmt.Errorf("decode inline data: %w", err)
		}
		parts = append(parts, genai.NewPartFromBytes(data, prompt.Inline.MIMEType))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, c.config)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Text(), nil
}

func geminiConfig(p domain.GenerationProfile) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(p.Temperature),
		TopP:             genai.Ptr(p.TopP),
		TopK:             genai.Ptr(float32(p.TopK)),
		MaxOutputTokens:  p.MaxOutputTokens,
		ResponseMIMEType: p.ResponseMIMEType,
	}
}
