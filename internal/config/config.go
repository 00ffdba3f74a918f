package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates runtime configuration for the file service.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
	Metrics MetricsConfig
}

// ServerConfig parameterizes the HTTP server.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig carries object-store connection and bucket information.
// Endpoint accepts a full URL; an https scheme enables TLS.
type StorageConfig struct {
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

// AuthConfig groups authentication settings. VerifySignature switches
// the request gate from claims extraction to full HS256 signature
// validation using Secret.
type AuthConfig struct {
	VerifySignature bool
	Secret          string
}

// MetricsConfig groups observability settings.
type MetricsConfig struct {
	PrometheusPath string
}

// Load reads configuration values from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:         getString("HOST", "0.0.0.0"),
			Port:         getInt("PORT", 5000),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Bucket:          getString("S3_BUCKET_NAME", "file-bucket"),
			Endpoint:        getString("S3_ENDPOINT_URL", "http://okblog-minio:9000"),
			AccessKeyID:     getString("AWS_ACCESS_KEY_ID", "minioadmin"),
			SecretAccessKey: getString("AWS_SECRET_ACCESS_KEY", "minioadmin"),
			Region:          getString("AWS_DEFAULT_REGION", "us-east-1"),
		},
		Auth: AuthConfig{
			VerifySignature: getBool("JWT_VERIFY_SIGNATURE", false),
			Secret:          getString("JWT_SECRET", ""),
		},
		Metrics: MetricsConfig{
			PrometheusPath: getString("METRICS_PATH", "/metrics"),
		},
	}

	if cfg.Auth.VerifySignature && cfg.Auth.Secret == "" {
		return Config{}, fmt.Errorf("JWT_VERIFY_SIGNATURE requires JWT_SECRET to be set")
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.ToLower(strings.TrimSpace(val))
		switch val {
		case "1", "true", "t", "yes", "y":
			return true
		case "0", "false", "f", "no", "n":
			return false
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
