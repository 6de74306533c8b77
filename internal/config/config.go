package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	ErrMissingRequired = errors.New("missing required configuration")
	ErrInvalidValue    = errors.New("invalid configuration value")
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	// Store
	StoreDriver   string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"job_seeker"`
	PostgresDSN   string `envconfig:"POSTGRES_DSN"`

	// Server
	Port                   int      `envconfig:"PORT" default:"5000"`
	CORSAllowOrigins       []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	ConnectTimeoutSeconds  int      `envconfig:"CONNECT_TIMEOUT_SECONDS" default:"10"`
	ShutdownTimeoutSeconds int      `envconfig:"SHUTDOWN_TIMEOUT_SECONDS" default:"10"`

	// Logging & telemetry
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"json"`
	ServiceName   string `envconfig:"SERVICE_NAME" default:"job-seeker-api"`
	TraceExporter string `envconfig:"TRACE_EXPORTER" default:"none"`
	OTLPEndpoint  string `envconfig:"OTLP_ENDPOINT"`
	OTLPInsecure  bool   `envconfig:"OTLP_INSECURE" default:"false"`

	// Job extraction
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine, the variables may come from the shell.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	switch c.StoreDriver {
	case StoreMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return fmt.Errorf("%w: MONGO_URI", ErrMissingRequired)
		}
	case StorePostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("%w: POSTGRES_DSN", ErrMissingRequired)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: STORE_DRIVER=%q", ErrInvalidValue, c.StoreDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: PORT=%d", ErrInvalidValue, c.Port)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
