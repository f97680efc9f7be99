package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("AZURE_BLOB_CONNECTION_STRING", "DefaultEndpointsProtocol=https;AccountName=acct;AccountKey=a2V5;EndpointSuffix=core.windows.net")
	t.Setenv("AZURE_BLOB_CONTAINER", "docs")
	t.Setenv("AZURE_OPENAI_API_KEY", "key")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt")
	t.Setenv("AZURE_SEARCH_ENDPOINT", "https://example.search.windows.net")
	t.Setenv("AZURE_SEARCH_API_KEY", "skey")
	t.Setenv("AZURE_SEARCH_INDEX_NAME", "idx")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("AZURE_SEARCH_RETRY_ATTEMPTS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5001", cfg.Addr())
	assert.Equal(t, StorageDriverAzure, cfg.Storage.Driver)
	assert.Equal(t, "docs", cfg.Storage.Azure.Container)
	assert.Equal(t, "gpt", cfg.OpenAI.Deployment)
	assert.Equal(t, "2023-03-15-preview", cfg.OpenAI.APIVersion)
	assert.Equal(t, uint(1), cfg.OpenAI.Retry.Attempts)
	assert.Equal(t, uint(3), cfg.Search.Retry.Attempts)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 32<<20, cfg.MaxUploadSize)
	assert.Equal(t, "ragdocs", cfg.Tracing.ServiceName)
	assert.Equal(t, "grpc", cfg.Tracing.Protocol)
}

func TestLoad_TracingEndpointFallback(t *testing.T) {
	setRequired(t)
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://collector:4317")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://collector:4317", cfg.Tracing.Endpoint)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "AZURE_OPENAI_DEPLOYMENT_NAME")
}

func TestLoad_MissingContainer(t *testing.T) {
	setRequired(t)
	t.Setenv("AZURE_BLOB_CONTAINER", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AZURE_BLOB_CONTAINER is required")
}

func TestValidate(t *testing.T) {
	valid := func() *AppConfig {
		return &AppConfig{
			MaxUploadSize: 1,
			Storage: StorageConfig{
				Driver: StorageDriverMinIO,
				MinIO:  MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s", Bucket: "b"},
			},
			OpenAI: OpenAIConfig{Retry: RetryConfig{Attempts: 1}},
			Search: SearchConfig{Retry: RetryConfig{Attempts: 1}},
		}
	}

	t.Run("minio ok", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("minio missing bucket", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.MinIO.Bucket = ""
		assert.ErrorContains(t, cfg.Validate(), "MINIO_BUCKET")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := valid()
		cfg.Storage.Driver = "gcs"
		assert.ErrorContains(t, cfg.Validate(), `unsupported STORAGE_DRIVER "gcs"`)
	})

	t.Run("zero retry attempts", func(t *testing.T) {
		cfg := valid()
		cfg.Search.Retry.Attempts = 0
		assert.ErrorContains(t, cfg.Validate(), "retry attempts")
	})

	t.Run("non-positive upload size", func(t *testing.T) {
		cfg := valid()
		cfg.MaxUploadSize = 0
		assert.ErrorContains(t, cfg.Validate(), "MAX_UPLOAD_SIZE")
	})
}
