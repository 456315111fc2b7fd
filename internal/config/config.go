package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, scoring policy,
// rule packs, the optional AI analyzer and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"30s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes limits the size of a scan request body
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"5242880" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// CORSAllowedOrigins lists the origins allowed to call the API; "*" allows any origin
		CORSAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" env-default:"*" yaml:"corsAllowedOrigins"`
	} `yaml:"http"`

	// Scoring contains the policy used to turn findings into a score
	Scoring struct {
		// BaseScore is the score of a contract without findings
		BaseScore int `env:"SCORING_BASE_SCORE" env-default:"85" yaml:"baseScore"`
		// PenaltyPerRisk is subtracted from BaseScore for every finding
		PenaltyPerRisk int `env:"SCORING_PENALTY_PER_RISK" env-default:"10" yaml:"penaltyPerRisk"`
		// MinScore is the lowest score ever reported
		MinScore int `env:"SCORING_MIN_SCORE" env-default:"0" yaml:"minScore"`
		// MaxScore is the highest score ever reported
		MaxScore int `env:"SCORING_MAX_SCORE" env-default:"100" yaml:"maxScore"`
	} `yaml:"scoring"`

	// Summary controls how report summaries are written
	Summary struct {
		// Mode is either "dynamic" (derived from findings) or "static" (a fixed sentence)
		Mode string `env:"SUMMARY_MODE" env-default:"dynamic" yaml:"mode"`
	} `yaml:"summary"`

	// Rules configures additional detection rules
	Rules struct {
		// File is an optional YAML rule pack appended to the built-in rules
		File string `env:"RULES_FILE" yaml:"file"`
	} `yaml:"rules"`

	// Analyzer configures the optional model-backed analysis path
	Analyzer struct {
		// Provider selects the scanner backend: "rules" or "gemini"
		Provider string `env:"ANALYZER_PROVIDER" env-default:"rules" yaml:"provider"`
		// APIKey is the credential of the model provider
		APIKey string `env:"ANALYZER_API_KEY" yaml:"apiKey"`
		// Model is the model name used by the provider
		Model string `env:"ANALYZER_MODEL" env-default:"gemini-1.5-flash" yaml:"model"`
		// Timeout bounds a single model call
		Timeout time.Duration `env:"ANALYZER_TIMEOUT" env-default:"20s" yaml:"timeout"`
	} `yaml:"analyzer"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When the file does not exist the configuration is read from the environment
// only, so the service runs without any configuration at all.
func Load(configPath string) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(configPath)
	switch {
	case configPath == "" || errors.Is(statErr, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}
	default:
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	if c.Scoring.MinScore > c.Scoring.MaxScore {
		return fmt.Errorf("scoring.minScore (%d) is greater than scoring.maxScore (%d)",
			c.Scoring.MinScore, c.Scoring.MaxScore)
	}
	if c.Scoring.PenaltyPerRisk < 0 {
		return fmt.Errorf("scoring.penaltyPerRisk must not be negative, got %d", c.Scoring.PenaltyPerRisk)
	}
	switch c.Summary.Mode {
	case "dynamic", "static":
	default:
		return fmt.Errorf("summary.mode must be dynamic or static, got %q", c.Summary.Mode)
	}
	switch c.Analyzer.Provider {
	case "rules", "gemini":
	default:
		return fmt.Errorf("analyzer.provider must be rules or gemini, got %q", c.Analyzer.Provider)
	}

	return nil
}
