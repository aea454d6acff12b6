package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string
	LogLevel      string

	// AWS configuration
	AWSRegion string

	// Storage tables and their secondary indexes
	StackTableName      string
	StackTimestampIndex string
	MediaTableName      string
	MediaStackIndex     string

	// Object store and CDN
	MediaBucketName        string
	SignedURLExpirySeconds int
	CDNDomainURL           string
}

// LoadConfig loads configuration from environment variables. Missing required
// configuration is a startup error, not a per-request one.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		StackTableName:      getEnv("STACK_TABLE_NAME", ""),
		StackTimestampIndex: getEnv("STACK_TIMESTAMP_INDEX", "UploadTimestampIndex"),
		MediaTableName:      getEnv("MEDIA_TABLE_NAME", ""),
		MediaStackIndex:     getEnv("MEDIA_STACK_INDEX", "StackIndex"),

		MediaBucketName:        getEnv("MEDIA_BUCKET_NAME", ""),
		SignedURLExpirySeconds: getEnvInt("SIGNED_URL_EXPIRY_SECONDS", 300),
		CDNDomainURL:           getEnv("CDN_DOMAIN_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	var missing []string
	if c.StackTableName == "" {
		missing = append(missing, "STACK_TABLE_NAME")
	}
	if c.MediaTableName == "" {
		missing = append(missing, "MEDIA_TABLE_NAME")
	}
	if c.MediaBucketName == "" {
		missing = append(missing, "MEDIA_BUCKET_NAME")
	}
	if c.CDNDomainURL == "" {
		missing = append(missing, "CDN_DOMAIN_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.SignedURLExpirySeconds <= 0 {
		return fmt.Errorf("SIGNED_URL_EXPIRY_SECONDS must be greater than 0")
	}

	return nil
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
