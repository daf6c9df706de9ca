package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Juicern/scribe/internal/service"
)

type Options struct {
	MaxUploadBytes int64
	ModelTimeout   time.Duration
}

func NewRouter(transcription *service.TranscriptionService, opts Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.RedirectTrailingSlash = false
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}
	r.Use(requestID(), requestLogger(logger), recovery(logger))

	api := &API{
		transcription:  transcription,
		maxUploadBytes: opts.MaxUploadBytes,
		modelTimeout:   opts.ModelTimeout,
		logger:         logger,
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.registerRoutes(r)

	return r
}
