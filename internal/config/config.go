package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates every setting the service reads from the environment.
type Config struct {
	Server  ServerConfig
	Mongo   MongoConfig
	AI      AIConfig
	Auth    AuthConfig
	Storage StorageConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		Mongo:   loadMongoConfig(),
		AI:      ai,
		Auth:    loadAuthConfig(),
		Storage: storage,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// Accept ":8000" or "127.0.0.1:8000" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// MongoConfig describes the document-store connection.
type MongoConfig struct {
	URI      string
	Database string
}

func loadMongoConfig() MongoConfig {
	return MongoConfig{
		URI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		Database: getEnvOrDefault("MONGODB_DATABASE", "blogify"),
	}
}

// AIConfig describes the Gemini completion upstream.
type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Enabled reports whether the required credential is present.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadAIConfig() (AIConfig, error) {
	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("AI_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return AIConfig{}, fmt.Errorf("AI_TIMEOUT_SECONDS must be positive, got %d", *override)
		}
		timeoutSeconds = *override
	}

	return AIConfig{
		APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		Model:   getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// AuthConfig holds the JWT signing material.
type AuthConfig struct {
	JWTSecret string
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret: getEnvOrDefault("JWT_SECRET", "dev-only-secret"),
	}
}

// StorageBackend selects where uploaded images live.
type StorageBackend string

const (
	StorageLocal StorageBackend = "local"
	StorageS3    StorageBackend = "s3"
)

// StorageConfig describes image upload storage.
type StorageConfig struct {
	Backend   StorageBackend
	UploadDir string
	S3Bucket  string
	S3Region  string
}

func loadStorageConfig() (StorageConfig, error) {
	backend := StorageBackend(getEnvOrDefault("STORAGE_BACKEND", string(StorageLocal)))
	cfg := StorageConfig{
		Backend:   backend,
		UploadDir: getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		S3Bucket:  strings.TrimSpace(os.Getenv("AWS_S3_BUCKET_NAME")),
		S3Region:  getEnvOrDefault("AWS_REGION", "us-east-1"),
	}

	switch backend {
	case StorageLocal:
	case StorageS3:
		if cfg.S3Bucket == "" {
			return StorageConfig{}, fmt.Errorf("AWS_S3_BUCKET_NAME is required when STORAGE_BACKEND=s3")
		}
	default:
		return StorageConfig{}, fmt.Errorf("invalid STORAGE_BACKEND value: %q", backend)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
