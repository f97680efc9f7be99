package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// StorageDriverAzure selects Azure Blob Storage.
	StorageDriverAzure = "azure"
	// StorageDriverMinIO selects an S3-compatible store reached through MinIO.
	StorageDriverMinIO = "minio"
)

// AzureBlobConfig holds Azure Blob Storage settings.
type AzureBlobConfig struct {
	ConnectionString string `env:"CONNECTION_STRING"`
	Container        string `env:"CONTAINER"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// StorageConfig selects and configures the object store backend.
type StorageConfig struct {
	Driver string          `env:"STORAGE_DRIVER" envDefault:"azure"`
	Azure  AzureBlobConfig `envPrefix:"AZURE_BLOB_"`
	MinIO  MinIOConfig     `envPrefix:"MINIO_"`
}

// RetryConfig controls retries of throttled upstream calls.
// Attempts == 1 disables retrying.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1"`
	Delay    time.Duration `env:"DELAY" envDefault:"500ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"5s"`
}

// OpenAIConfig holds the Azure OpenAI chat deployment settings.
type OpenAIConfig struct {
	APIKey     string        `env:"API_KEY,required,notEmpty"`
	Endpoint   string        `env:"ENDPOINT,required,notEmpty"`
	Deployment string        `env:"DEPLOYMENT_NAME,required,notEmpty"`
	APIVersion string        `env:"API_VERSION" envDefault:"2023-03-15-preview"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"60s"`
	Retry      RetryConfig   `envPrefix:"RETRY_"`
}

// SearchConfig holds the Azure AI Search index settings.
type SearchConfig struct {
	Endpoint   string        `env:"ENDPOINT,required,notEmpty"`
	APIKey     string        `env:"API_KEY,required,notEmpty"`
	IndexName  string        `env:"INDEX_NAME,required,notEmpty"`
	APIVersion string        `env:"API_VERSION" envDefault:"2023-11-01"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"30s"`
	Retry      RetryConfig   `envPrefix:"RETRY_"`
}

// TracingConfig holds the OpenTelemetry settings. The exporters also read the
// standard OTEL_EXPORTER_OTLP_* variables on their own.
type TracingConfig struct {
	Disabled    bool   `env:"OTEL_SDK_DISABLED" envDefault:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"ragdocs"`
	Protocol    string `env:"OTEL_EXPORTER_OTLP_PROTOCOL" envDefault:"grpc"`
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"`
	Sampler     string `env:"OTEL_TRACES_SAMPLER" envDefault:"parentbased_traceidratio"`
	SamplerArg  string `env:"OTEL_TRACES_SAMPLER_ARG" envDefault:"1.0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Host            string        `env:"HOST" envDefault:"0.0.0.0"`
	Port            string        `env:"PORT" envDefault:"5001"`
	MaxUploadSize   int           `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Storage StorageConfig
	OpenAI  OpenAIConfig `envPrefix:"AZURE_OPENAI_"`
	Search  SearchConfig `envPrefix:"AZURE_SEARCH_"`
	Tracing TracingConfig
}

// Load reads configuration from environment variables and validates it.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the file.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	return cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Validate checks rules the env tags cannot express.
func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case StorageDriverAzure:
		if c.Storage.Azure.ConnectionString == "" {
			errs = append(errs, errors.New("AZURE_BLOB_CONNECTION_STRING is required"))
		}
		if c.Storage.Azure.Container == "" {
			errs = append(errs, errors.New("AZURE_BLOB_CONTAINER is required"))
		}
	case StorageDriverMinIO:
		m := c.Storage.MinIO
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver))
	}

	if c.MaxUploadSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", c.MaxUploadSize))
	}
	if c.OpenAI.Retry.Attempts == 0 || c.Search.Retry.Attempts == 0 {
		errs = append(errs, errors.New("retry attempts must be at least 1"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
