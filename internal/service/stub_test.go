package service

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/Juicern/scribe/internal/domain"
	"github.com/Juicern/scribe/internal/providers"
)

// stubLLM echoes its prompt unless err is set.
type stubLLM struct {
	mu      sync.Mutex
	err     error
	prompts []providers.Prompt
}

func (s *stubLLM) Generate(_ context.Context, prompt providers.Prompt) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return "echo: " + prompt.Text, nil
}

func (s *stubLLM) calls() []providers.Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]providers.Prompt(nil), s.prompts...)
}

func audioUpload(name, mimeType string, data []byte) *domain.UploadedAudio {
	return &domain.UploadedAudio{
		Filename:         name,
		DeclaredMIMEType: mimeType,
		Size:             int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
