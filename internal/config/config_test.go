package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Address())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "file-bucket", cfg.Storage.Bucket)
	assert.Equal(t, "http://okblog-minio:9000", cfg.Storage.Endpoint)
	assert.Equal(t, "minioadmin", cfg.Storage.AccessKeyID)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.False(t, cfg.Auth.VerifySignature)
	assert.Equal(t, "/metrics", cfg.Metrics.PrometheusPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("S3_BUCKET_NAME", "uploads")
	t.Setenv("S3_ENDPOINT_URL", "https://s3.example.com")
	t.Setenv("SERVER_READ_TIMEOUT", "30s")
	t.Setenv("JWT_VERIFY_SIGNATURE", "true")
	t.Setenv("JWT_SECRET", "shared-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Storage.Bucket)
	assert.Equal(t, "https://s3.example.com", cfg.Storage.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Auth.VerifySignature)
	assert.Equal(t, "shared-secret", cfg.Auth.Secret)
}

func TestLoadRejectsVerificationWithoutSecret(t *testing.T) {
	t.Setenv("JWT_VERIFY_SIGNATURE", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadIgnoresUnparseableValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
}
