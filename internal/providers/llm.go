package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Juicern/scribe/internal/domain"
)

var (
	ErrMissingAPIKey        = errors.New("missing API key for provider")
	ErrProviderNotSupported = errors.New("provider not supported")
	ErrEmptyResponse        = errors.New("model returned no content")
)

// InlineData is binary content embedded in a prompt. Data is base64 text.
type InlineData struct {
	MIMEType string
	Data     string
}

type Prompt struct {
	Text   string
	Inline *InlineData
}

type LLMClient interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
	Profile domain.GenerationProfile
}

type Factory func(ctx context.Context, settings Settings) (LLMClient, error)

type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// DefaultRegistry knows every provider shipped with the service.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("gemini", func(ctx context.Context, s Settings) (LLMClient, error) {
		return NewGeminiClient(ctx, s)
	})
	r.Register("openai", func(_ context.Context, s Settings) (LLMClient, error) {
		return NewOpenAIClient(s)
	})
	r.Register("echo", func(context.Context, Settings) (LLMClient, error) {
		return EchoClient{}, nil
	})
	return r
}

func (r *Registry) Register(provider string, factory Factory) {
	r.factories[strings.ToLower(provider)] = factory
}

func (r *Registry) Build(ctx context.Context, provider string, settings Settings) (LLMClient, error) {
	factory, ok := r.factories[strings.ToLower(provider)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotSupported, provider)
	}
	return factory(ctx, settings)
}

// EchoClient answers with the prompt it was given.
type EchoClient struct{}

func (EchoClient) Generate(_ context.Context, prompt Prompt) (string, error) {
	if prompt.Inline == nil {
		return prompt.Text, nil
	}
	return fmt.Sprintf("%s [%s: %s]", prompt.Text, prompt.Inline.MIMEType, collapse(prompt.Inline.Data)), nil
}

func collapse(text string) string {
	if len(text) > 120 {
		return text[:120] + "..."
	}
	return text
}
