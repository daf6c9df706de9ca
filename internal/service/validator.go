package service

import (
	"errors"

	"github.com/Juicern/scribe/internal/domain"
)

const (
	msgNoFile          = "No file uploaded."
	msgInvalidFileType = "Invalid file type. Supported types: wav, mp3, ogg, webm, opus"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrUnsupportedType = errors.New("unsupported audio type")
)

var allowedMIMETypes = map[string]struct{}{
	"audio/wav":  {},
	"audio/mpeg": {},
	"audio/ogg":  {},
	"audio/webm": {},
	"audio/opus": {},
}

// ValidateUpload checks presence and declared type only; the body is not read.
func ValidateUpload(upload *domain.UploadedAudio) error {
	if upload == nil || upload.Open == nil || upload.Size <= 0 {
		return clientError(msgNoFile, ErrNoFile)
	}
	if !IsAllowedMIMEType(upload.DeclaredMIMEType) {
		return clientError(msgInvalidFileType, ErrUnsupportedType)
	}
	return nil
}

func IsAllowedMIMEType(mimeType string) bool {
	_, ok := allowedMIMETypes[mimeType]
	return ok
}
