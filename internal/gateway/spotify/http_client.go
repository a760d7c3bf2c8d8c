package spotify

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPClientConfig конфигурация HTTP клиента. Нулевые значения таймаутов означают
// отсутствие ограничения, как у http.DefaultClient.
type HTTPClientConfig struct {
	Timeout               time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
}

// DefaultHTTPClientConfig повторяет настройки http.DefaultTransport
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		TLSHandshakeTimeout: 10 * time.Second,
	}
}

// NewHTTPClient создает HTTP клиент для запросов к API
func NewHTTPClient(config HTTPClientConfig, logger *zap.Logger) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	logger.Debug("HTTP client created",
		zap.Duration("timeout", config.Timeout),
		zap.Duration("tls_handshake_timeout", config.TLSHandshakeTimeout),
		zap.Duration("response_header_timeout", config.ResponseHeaderTimeout))

	return &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}
}
