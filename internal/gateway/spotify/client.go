// Package spotify реализует клиент поиска Spotify Web API.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	spotifyapi "github.com/zmb3/spotify/v2"
	"go.uber.org/zap"
)

// maxErrorBody ограничивает чтение тела ответа с ошибкой
const maxErrorBody = 64 << 10

// Options задает параметры клиента
type Options struct {
	BaseURL     string
	EncodeQuery bool
	HTTPClient  *http.Client
}

// Client представляет клиент для поиска по каталогу Spotify
type Client struct {
	baseURL     string
	encodeQuery bool
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient создает новый клиент. Пустой BaseURL заменяется на DefaultBaseURL.
func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(DefaultHTTPClientConfig(), logger)
	}

	return &Client{
		baseURL:     baseURL,
		encodeQuery: opts.EncodeQuery,
		httpClient:  httpClient,
		logger:      logger,
	}, nil
}

// Search выполняет один запрос /v1/search и возвращает найденные треки в порядке API.
//
// Ошибки: ErrUnauthorized при 401, ErrShapeMismatch при неожиданном теле ответа 200,
// *UnexpectedStatusError при любом другом статусе, *TransportError если статус не получен.
func (c *Client) Search(ctx context.Context, query, token string) ([]Track, error) {
	req, err := c.newSearchRequest(ctx, query, token)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Sending search request",
		zap.String("url", req.URL.String()),
		zap.Bool("encode_query", c.encodeQuery))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Spotify search request failed", zap.Error(err))
		return nil, &TransportError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", zap.Error(closeErr))
		}
	}()

	c.logger.Debug("Received search response", zap.Int("status", resp.StatusCode))

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			c.logger.Warn("Failed to read search response body", zap.Error(err))
			return nil, fmt.Errorf("%w: failed to read body: %v", ErrShapeMismatch, err)
		}

		result, err := decodeSearchResponse(body)
		if err != nil {
			c.logger.Warn("Search response has unexpected shape", zap.Error(err))
			return nil, err
		}

		c.logger.Debug("Decoded search response", zap.Int("tracks", len(result.Tracks.Items)))
		return result.Tracks.Items, nil

	case http.StatusUnauthorized:
		apiErr := c.readAPIError(resp.Body)
		c.logger.Debug("Access token rejected", zap.String("api_message", apiErr.Message))
		return nil, ErrUnauthorized

	default:
		apiErr := c.readAPIError(resp.Body)
		c.logger.Error("Unexpected search response status",
			zap.Int("status", resp.StatusCode),
			zap.String("api_message", apiErr.Message))
		return nil, &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			APIMessage: apiErr.Message,
		}
	}
}

func (c *Client) newSearchRequest(ctx context.Context, query, token string) (*http.Request, error) {
	u, err := BuildSearchURL(c.baseURL, query, c.encodeQuery)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// readAPIError пытается разобрать объект ошибки Web API вида
// {"error": {"status": 401, "message": "..."}}. Нераспознанное тело дает пустую ошибку.
func (c *Client) readAPIError(body io.Reader) spotifyapi.Error {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		c.logger.Debug("Failed to read error response body", zap.Error(err))
		return spotifyapi.Error{}
	}

	var envelope struct {
		Error spotifyapi.Error `json:"error"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return spotifyapi.Error{}
	}
	return envelope.Error
}
