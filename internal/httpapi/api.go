package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Juicern/scribe/internal/domain"
	"github.com/Juicern/scribe/internal/service"
)

const uploadField = "file"

type API struct {
	transcription  *service.TranscriptionService
	maxUploadBytes int64
	modelTimeout   time.Duration
	logger         *zap.Logger
}

func (api *API) registerRoutes(r gin.IRoutes) {
	for _, path := range []string{"/transcribe/", "/transcribe"} {
		r.POST(path, api.transcribe)
	}
	for _, path := range []string{"/summarize/", "/summarize"} {
		r.GET(path, api.summarizeLatest)
	}
	for _, path := range []string{"/enhance/", "/enhance"} {
		r.GET(path, api.enhanceLatest)
	}
}

func (api *API) transcribe(c *gin.Context) {
	if api.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, api.maxUploadBytes)
	}

	upload, err := api.uploadFromRequest(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.detail(c, http.StatusBadRequest, fmt.Sprintf("Uploaded file exceeds %d bytes.", tooLarge.Limit))
			return
		}
		api.handleError(c, err)
		return
	}

	ctx, cancel := api.modelContext(c)
	defer cancel()

	text, err := api.transcription.Transcribe(ctx, upload)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcription": text})
}

func (api *API) summarizeLatest(c *gin.Context) {
	ctx, cancel := api.modelContext(c)
	defer cancel()

	summary, err := api.transcription.SummarizeLatest(ctx)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (api *API) enhanceLatest(c *gin.Context) {
	ctx, cancel := api.modelContext(c)
	defer cancel()

	enhanced, err := api.transcription.EnhanceLatest(ctx)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enhanced_text": enhanced})
}

// uploadFromRequest returns a nil upload when the form has no file part so
// the validator can reject it; only transport failures are returned as errors.
func (api *API) uploadFromRequest(c *gin.Context) (*domain.UploadedAudio, error) {
	file, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, nil
	}
	return uploadFromHeader(file), nil
}

func uploadFromHeader(file *multipart.FileHeader) *domain.UploadedAudio {
	return &domain.UploadedAudio{
		Filename:         file.Filename,
		DeclaredMIMEType: file.Header.Get("Content-Type"),
		Size:             file.Size,
		Open: func() (io.ReadCloser, error) {
			return file.Open()
		},
	}
}

func (api *API) modelContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if api.modelTimeout > 0 {
		return context.WithTimeout(c.Request.Context(), api.modelTimeout)
	}
	return context.WithCancel(c.Request.Context())
}

func (api *API) handleError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		api.logger.Error("request failed", zap.Error(err), zap.String(requestIDKey, c.GetString(requestIDKey)))
		api.detail(c, http.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", err))
		return
	}

	switch svcErr.Kind {
	case service.KindClient:
		api.detail(c, http.StatusBadRequest, svcErr.Message)
	default:
		api.logger.Error("request failed",
			zap.Stringer("kind", svcErr.Kind),
			zap.Error(svcErr.Err),
			zap.String(requestIDKey, c.GetString(requestIDKey)),
		)
		api.detail(c, http.StatusInternalServerError, svcErr.Message)
	}
}

func (api *API) detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}
