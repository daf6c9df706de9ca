package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Juicern/scribe/internal/domain"
)

const defaultEnvFile = ".env"

type Config struct {
	HTTPPort        string        `yaml:"http_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	Model           ModelConfig   `yaml:"model"`
	Log             LogConfig     `yaml:"log"`
}

type ModelConfig struct {
	Provider   string                   `yaml:"provider"`
	Name       string                   `yaml:"name"`
	APIKey     string                   `yaml:"-"`
	BaseURL    string                   `yaml:"base_url"`
	Timeout    time.Duration            `yaml:"timeout"`
	Generation domain.GenerationProfile `yaml:"generation"`
}

type LogConfig struct {
	JSON    bool `yaml:"json"`
	Verbose bool `yaml:"verbose"`
}

// LoadOptions come from the command line. Empty fields fall back to the
// environment.
type LoadOptions struct {
	EnvFile    string
	ConfigFile string
}

func Default() Config {
	return Config{
		HTTPPort:        "8080",
		ShutdownTimeout: 10 * time.Second,
		MaxUploadBytes:  32 << 20,
		Model: ModelConfig{
			Provider:   "gemini",
			Generation: domain.DefaultGenerationProfile(),
		},
		Log: LogConfig{JSON: true},
	}
}

// Load reads an optional .env file, an optional YAML file and then the
// process environment, later sources winning.
func Load(opts LoadOptions) (Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return Config{}, err
	}

	cfg := Default()

	path := opts.ConfigFile
	if path == "" {
		path = os.Getenv("SCRIBE_CONFIG")
	}
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.HTTPPort = getEnv("HTTP_PORT", cfg.HTTPPort)
	cfg.ShutdownTimeout = getDuration("HTTP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.MaxUploadBytes = getInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.Model.Provider = strings.ToLower(getEnv("MODEL_PROVIDER", cfg.Model.Provider))
	cfg.Model.Name = getEnv("MODEL_NAME", cfg.Model.Name)
	if cfg.Model.Name == "" {
		cfg.Model.Name = defaultModelFor(cfg.Model.Provider)
	}
	cfg.Model.BaseURL = getEnv("MODEL_BASE_URL", cfg.Model.BaseURL)
	cfg.Model.Timeout = getDuration("MODEL_TIMEOUT", cfg.Model.Timeout)
	cfg.Model.APIKey = apiKeyFor(cfg.Model.Provider)
	cfg.Log.JSON = getBool("LOG_JSON", cfg.Log.JSON)
	cfg.Log.Verbose = getBool("LOG_VERBOSE", cfg.Log.Verbose)

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("http port is required"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("max upload bytes must be positive"))
	}
	switch c.Model.Provider {
	case "gemini", "openai":
		if c.Model.APIKey == "" {
			errs = append(errs, fmt.Errorf("%s requires an API key (set %s)", c.Model.Provider, apiKeyEnv(c.Model.Provider)))
		}
	case "echo":
	default:
		errs = append(errs, fmt.Errorf("unknown model provider %q", c.Model.Provider))
	}
	return errors.Join(errs...)
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// defaultModelFor returns "" for providers that do not take a model name.
func defaultModelFor(provider string) string {
	switch provider {
	case "gemini":
		return "gemini-2.0-flash"
	case "openai":
		return "gpt-4o-mini"
	default:
		return ""
	}
}

func apiKeyEnv(provider string) string {
	if provider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}

func apiKeyFor(provider string) string {
	return os.Getenv(apiKeyEnv(provider))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
