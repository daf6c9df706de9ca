package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Juicern/scribe/internal/app"
	"github.com/Juicern/scribe/internal/config"
	"github.com/Juicern/scribe/internal/httpapi"
	"github.com/Juicern/scribe/internal/logging"
	"github.com/Juicern/scribe/internal/providers"
	"github.com/Juicern/scribe/internal/server"
	"github.com/Juicern/scribe/internal/service"
)

type options struct {
	configFile string
	envFile    string
	port       string
	verbose    bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "scribe",
		Short:         "Transcribe, summarize and enhance audio through a generative model",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "path to a .env file (default ./.env when present)")
	cmd.Flags().StringVar(&opts.port, "port", "", "HTTP port, overrides HTTP_PORT")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(config.LoadOptions{EnvFile: opts.envFile, ConfigFile: opts.configFile})
	if err != nil {
		return err
	}
	if opts.port != "" {
		cfg.HTTPPort = opts.port
	}
	if opts.verbose {
		cfg.Log.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(logging.Options{Verbose: cfg.Log.Verbose, JSON: cfg.Log.JSON})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Log.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	llm, err := providers.DefaultRegistry().Build(ctx, cfg.Model.Provider, providers.Settings{
		APIKey:  cfg.Model.APIKey,
		BaseURL: cfg.Model.BaseURL,
		Model:   cfg.Model.Name,
		Profile: cfg.Model.Generation,
	})
	if err != nil {
		return fmt.Errorf("initialize model provider: %w", err)
	}
	logger.Info("model provider ready",
		zap.String("provider", cfg.Model.Provider),
		zap.String("model", cfg.Model.Name),
	)

	latest := app.NewLatestStore(logger)
	transcriptionService := service.NewTranscriptionService(llm, latest, logger)
	handler := httpapi.NewRouter(transcriptionService, httpapi.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		ModelTimeout:   cfg.Model.Timeout,
	}, logger)
	srv := server.New(cfg, handler, logger)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}
	return nil
}
