// Package config содержит загрузку и валидацию конфигурации.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"spotsearch/internal/gateway/spotify"
	"spotsearch/pkg/logger"

	"github.com/joho/godotenv"
)

// Config представляет конфигурацию приложения
type Config struct {
	// Spotify
	APIBaseURL  string
	EncodeQuery bool

	// HTTP Client
	HTTP spotify.HTTPClientConfig

	// Logging
	Log logger.Options
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		APIBaseURL:  getEnv("SPOTSEARCH_API_URL", spotify.DefaultBaseURL),
		EncodeQuery: getEnvBool("SPOTSEARCH_ENCODE_QUERY", false),
		HTTP: spotify.HTTPClientConfig{
			Timeout:               getEnvDuration("SPOTSEARCH_HTTP_TIMEOUT", 0),
			TLSHandshakeTimeout:   getEnvDuration("SPOTSEARCH_HTTP_TLS_HANDSHAKE_TIMEOUT", spotify.DefaultHTTPClientConfig().TLSHandshakeTimeout),
			ResponseHeaderTimeout: getEnvDuration("SPOTSEARCH_HTTP_RESPONSE_HEADER_TIMEOUT", 0),
		},
		Log: logger.Options{
			Level:  getEnv("LOG_LEVEL", "warn"),
			Format: getEnv("LOG_FORMAT", logger.FormatConsole),
			Path:   getEnv("LOG_PATH", ""),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	u, err := url.ParseRequestURI(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid SPOTSEARCH_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid SPOTSEARCH_API_URL scheme: %s (must be http or https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("SPOTSEARCH_API_URL must include a host")
	}

	if c.HTTP.Timeout < 0 || c.HTTP.TLSHandshakeTimeout < 0 || c.HTTP.ResponseHeaderTimeout < 0 {
		return fmt.Errorf("HTTP timeouts must not be negative")
	}

	return nil
}

// getEnv получает переменную окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как time.Duration
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
