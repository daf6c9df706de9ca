package domain

import "io"

// CachedTranscription is the most recent successful transcription.
type CachedTranscription struct {
	Text string `json:"text"`
}

// UploadedAudio is the request-scoped audio upload. It is read once, encoded
// and discarded.
type UploadedAudio struct {
	Filename         string
	DeclaredMIMEType string
	Size             int64
	Open             func() (io.ReadCloser, error)
}

// GenerationProfile is sent with every model call.
type GenerationProfile struct {
	Temperature      float32 `yaml:"temperature"`
	TopP             float32 `yaml:"top_p"`
	TopK             int32   `yaml:"top_k"`
	MaxOutputTokens  int32   `yaml:"max_output_tokens"`
	ResponseMIMEType string  `yaml:"response_mime_type"`
}

func DefaultGenerationProfile() GenerationProfile {
	return GenerationProfile{
		Temperature:      0.1,
		TopP:             0,
		TopK:             40,
		MaxOutputTokens:  1024,
		ResponseMIMEType: "text/plain",
	}
}
