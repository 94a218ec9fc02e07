package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Gemini backends
const (
	BackendAPIKey = "apikey"
	BackendVertex = "vertex"
)

// Document storage backends
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
	StorageS3    = "s3"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port           string   `yaml:"port"`
	Debug          bool     `yaml:"debug"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`

	// Gemini
	GeminiBackend string `yaml:"gemini_backend"`
	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiModel   string `yaml:"gemini_model"`

	// Google Cloud (Vertex AI and Cloud Storage)
	ProjectID string `yaml:"project_id"`
	Location  string `yaml:"location"`

	// Retry policy for rate-limited model calls
	AIMaxAttempts           int `yaml:"ai_max_attempts"`
	AIInitialBackoffSeconds int `yaml:"ai_initial_backoff_seconds"`

	// Timeouts
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`

	// Transient upload storage
	StorageBackend string `yaml:"storage_backend"`
	UploadFolder   string `yaml:"upload_folder"`
	UploadBucket   string `yaml:"upload_bucket"`

	// S3 compatible storage (AWS S3, Cloudflare R2)
	S3Endpoint  string `yaml:"s3_endpoint"`
	S3Region    string `yaml:"s3_region"`
	S3AccessKey string `yaml:"s3_access_key"`
	S3SecretKey string `yaml:"s3_secret_key"`

	// Admin token guarding profile mutations; empty disables the guard
	AdminJWTSecret string `yaml:"admin_jwt_secret"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Defaults returns the configuration used when nothing else is set
func Defaults() *Config {
	return &Config{
		Port:                    "8080",
		AllowedOrigins:          []string{"*"},
		MaxUploadBytes:          16 << 20,
		GeminiBackend:           BackendAPIKey,
		GeminiModel:             "gemini-2.5-flash",
		Location:                "us-central1",
		AIMaxAttempts:           3,
		AIInitialBackoffSeconds: 1,
		HTTPTimeoutSeconds:      60,
		StorageBackend:          StorageLocal,
		UploadFolder:            "uploads",
		S3Region:                "auto",
		LogLevel:                "info",
		LogFormat:               "json",
	}
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := Defaults()
	applyEnv(cfg)
	return cfg
}

// LoadFile loads a YAML file on top of the defaults, then applies environment overrides
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	// Server
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Debug = getEnvBool("DEBUG", cfg.Debug)
	cfg.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.MaxUploadBytes = int64(getEnvInt("MAX_UPLOAD_BYTES", int(cfg.MaxUploadBytes)))

	// Gemini
	cfg.GeminiBackend = strings.ToLower(getEnv("GEMINI_BACKEND", cfg.GeminiBackend))
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)

	// Google Cloud
	cfg.ProjectID = getEnv("PROJECT_ID", cfg.ProjectID)
	cfg.Location = getEnv("LOCATION", cfg.Location)

	// Retry policy
	cfg.AIMaxAttempts = getEnvInt("AI_MAX_ATTEMPTS", cfg.AIMaxAttempts)
	cfg.AIInitialBackoffSeconds = getEnvInt("AI_INITIAL_BACKOFF_SECONDS", cfg.AIInitialBackoffSeconds)

	cfg.HTTPTimeoutSeconds = getEnvInt("HTTP_TIMEOUT_SECONDS", cfg.HTTPTimeoutSeconds)

	// Storage
	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", cfg.StorageBackend))
	cfg.UploadFolder = getEnv("UPLOAD_FOLDER", cfg.UploadFolder)
	cfg.UploadBucket = getEnv("UPLOAD_BUCKET", cfg.UploadBucket)
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3Region = getEnv("S3_REGION", cfg.S3Region)
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", cfg.S3SecretKey)

	cfg.AdminJWTSecret = getEnv("ADMIN_JWT_SECRET", cfg.AdminJWTSecret)

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	switch c.GeminiBackend {
	case BackendAPIKey:
		if c.GeminiAPIKey == "" {
			return &ConfigError{Field: "GEMINI_API_KEY", Message: "GEMINI_API_KEY is required for the Gemini API backend"}
		}
	case BackendVertex:
		if c.ProjectID == "" {
			return &ConfigError{Field: "PROJECT_ID", Message: "PROJECT_ID is required for Vertex AI"}
		}
	default:
		return &ConfigError{Field: "GEMINI_BACKEND", Message: fmt.Sprintf("unknown GEMINI_BACKEND %q", c.GeminiBackend)}
	}

	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadFolder == "" {
			return &ConfigError{Field: "UPLOAD_FOLDER", Message: "UPLOAD_FOLDER is required for local storage"}
		}
	case StorageGCS, StorageS3:
		if c.UploadBucket == "" {
			return &ConfigError{Field: "UPLOAD_BUCKET", Message: "UPLOAD_BUCKET is required for bucket storage"}
		}
	default:
		return &ConfigError{Field: "STORAGE_BACKEND", Message: fmt.Sprintf("unknown STORAGE_BACKEND %q", c.StorageBackend)}
	}

	if c.AIMaxAttempts < 1 {
		return &ConfigError{Field: "AI_MAX_ATTEMPTS", Message: "AI_MAX_ATTEMPTS must be at least 1"}
	}
	if c.MaxUploadBytes <= 0 {
		return &ConfigError{Field: "MAX_UPLOAD_BYTES", Message: "MAX_UPLOAD_BYTES must be positive"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
