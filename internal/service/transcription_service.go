package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/Juicern/scribe/internal/app"
	"github.com/Juicern/scribe/internal/domain"
	"github.com/Juicern/scribe/internal/providers"
)

const (
	transcribeInstruction = "Transcribe the following audio to text:"
	summarizePrefix       = "Summarize this: "
	enhancePrefix         = "Enhance the grammar and clarity of this text: "

	msgNoTranscription = "No transcribed text found. Please transcribe an audio file first."
)

type TranscriptionService struct {
	llm    providers.LLMClient
	latest *app.LatestStore
	logger *zap.Logger
}

func NewTranscriptionService(llm providers.LLMClient, latest *app.LatestStore, logger *zap.Logger) *TranscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionService{
		llm:    llm,
		latest: latest,
		logger: logger,
	}
}

// Transcribe validates the upload, asks the model for a transcript and
// stores it as the latest transcription. The store is untouched on failure.
func (s *TranscriptionService) Transcribe(ctx context.Context, upload *domain.UploadedAudio) (string, error) {
	if err := ValidateUpload(upload); err != nil {
		return "", err
	}

	encoded, err := encodeUpload(upload)
	if err != nil {
		return "", serverError("Internal server error", err)
	}

	text, err := s.llm.Generate(ctx, providers.Prompt{
		Text: transcribeInstruction,
		Inline: &providers.InlineData{
			MIMEType: upload.DeclaredMIMEType,
			Data:     encoded,
		},
	})
	if err != nil {
		return "", serverError("Internal server error", err)
	}

	s.latest.Put(text)
	s.logger.Info("audio transcribed",
		zap.String("filename", upload.Filename),
		zap.String("mime_type", upload.DeclaredMIMEType),
		zap.Int64("bytes", upload.Size),
	)
	return text, nil
}

func (s *TranscriptionService) SummarizeLatest(ctx context.Context) (string, error) {
	return s.rewriteLatest(ctx, summarizePrefix, "Error summarizing text")
}

func (s *TranscriptionService) EnhanceLatest(ctx context.Context) (string, error) {
	return s.rewriteLatest(ctx, enhancePrefix, "Error enhancing text")
}

func (s *TranscriptionService) rewriteLatest(ctx context.Context, prefix, failure string) (string, error) {
	cached, err := s.latest.Get()
	if err != nil {
		if errors.Is(err, app.ErrNoTranscription) {
			return "", clientError(msgNoTranscription, err)
		}
		return "", serverError(failure, err)
	}

	text, err := s.llm.Generate(ctx, providers.Prompt{Text: prefix + cached.Text})
	if err != nil {
		return "", serverError(failure, err)
	}
	return text, nil
}

func encodeUpload(upload *domain.UploadedAudio) (string, error) {
	rc, err := upload.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
