package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultSessionSecret = "change-me-unispattes-session-secret"

// Config holds the whole application configuration, populated from environment variables.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Session SessionConfig
	MinIO   MinIOConfig
	Queue   QueueConfig
}

type AppConfig struct {
	Name          string
	Environment   string // development, staging, production
	Port          string
	Version       string
	TemplatesDir  string // empty: use embedded templates
	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type MinIOConfig struct {
	Enabled       bool
	Endpoint      string // localhost:9000
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

type QueueConfig struct {
	// Enabled routes failed-login tracking through asynq instead of running it inline.
	Enabled     bool
	Concurrency int
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:          getEnv("APP_NAME", "UniSpattes"),
			Environment:   getEnv("APP_ENV", "development"),
			Port:          getEnv("APP_PORT", "8080"),
			Version:       getEnv("APP_VERSION", "1.0.0"),
			TemplatesDir:  getEnv("TEMPLATES_DIR", ""),
			RunMigrations: getEnvBool("RUN_MIGRATIONS", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", defaultSessionSecret),
			CookieName: getEnv("SESSION_COOKIE", "unispattes_session"),
			TTL:        getEnvDuration("SESSION_TTL", 14*24*time.Hour),
			Secure:     getEnvBool("SESSION_SECURE", false),
		},
		MinIO: MinIOConfig{
			Enabled:       getEnvBool("MINIO_ENABLED", false),
			Endpoint:      getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("MINIO_BUCKET", "unispattes"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MINIO_PUBLIC_URL", ""),
		},
		Queue: QueueConfig{
			Enabled:     getEnvBool("QUEUE_ENABLED", false),
			Concurrency: getEnvInt("QUEUE_CONCURRENCY", 5),
		},
	}

	if cfg.MinIO.PublicBaseURL == "" {
		scheme := "http"
		if cfg.MinIO.UseSSL {
			scheme = "https"
		}
		cfg.MinIO.PublicBaseURL = fmt.Sprintf("%s://%s", scheme, cfg.MinIO.Endpoint)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that must be explicit outside development.
func (c *Config) Validate() error {
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.App.Environment == "production" {
		if c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
		if !c.Session.Secure {
			fmt.Println("WARNING: SESSION_SECURE is false in production")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
