package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported values for the pluggable backends
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

var supportedProviders = map[string]bool{"gemini": true, "groq": true}

// app config; provider-specific settings live with each provider
type Config struct {
	Provider         string
	Port             string
	LogFormat        string
	LogLevel         string
	RetrievalBackend string
	SessionStore     string
	RedisAddr        string
	RedisPassword    string
	SessionTTL       time.Duration
	JWTSecret        string
	AllowedOrigins   []string
	RequestTimeout   time.Duration
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	sessionTTL, err := getDurationOrDefault("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := getDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Provider:         strings.ToLower(getEnvOrDefault("AI_PROVIDER", "gemini")),
		Port:             getEnvOrDefault("PORT", "8080"),
		LogFormat:        strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json")),
		LogLevel:         strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		RetrievalBackend: strings.ToLower(getEnvOrDefault("RETRIEVAL_BACKEND", BackendMemory)),
		SessionStore:     strings.ToLower(getEnvOrDefault("SESSION_STORE", BackendMemory)),
		RedisAddr:        getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		SessionTTL:       sessionTTL,
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AllowedOrigins:   splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		RequestTimeout:   requestTimeout,
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if !supportedProviders[config.Provider] {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini, groq")
	}
	// provider credentials are validated by gemini.NewConfig() / groq.NewConfig()

	if _, err := strconv.Atoi(config.Port); err != nil {
		return fmt.Errorf("invalid PORT %q", config.Port)
	}
	if config.LogFormat != "json" && config.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", config.LogFormat)
	}
	if config.RetrievalBackend != BackendMemory && config.RetrievalBackend != BackendMongo {
		return fmt.Errorf("RETRIEVAL_BACKEND must be memory or mongo, got %q", config.RetrievalBackend)
	}
	if config.SessionStore != BackendMemory && config.SessionStore != BackendRedis {
		return fmt.Errorf("SESSION_STORE must be memory or redis, got %q", config.SessionStore)
	}
	if config.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if config.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
