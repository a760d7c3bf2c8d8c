package spotify

import (
	"fmt"
	"net/url"
	"strings"

	whatwgurl "github.com/nlnwa/whatwg-url/url"
)

const (
	// DefaultBaseURL адрес Spotify Web API
	DefaultBaseURL = "https://api.spotify.com/v1"

	searchPath  = "/search"
	searchTypes = "track,artist"
)

// BuildSearchURL формирует адрес запроса поиска.
//
// По умолчанию запрос подставляется в строку адреса как есть, и строка
// разбирается по правилам WHATWG URL: '&' начинает новый параметр, '#'
// отрезает фрагмент, недопустимые символы кодируются. Фрагмент в запрос
// не попадает. При encode=true запрос экранируется целиком.
func BuildSearchURL(baseURL, query string, encode bool) (*url.URL, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	q := query
	if encode {
		q = url.QueryEscape(query)
	}

	raw := strings.TrimRight(baseURL, "/") + searchPath + "?q=" + q + "&type=" + searchTypes
	parsed, err := whatwgurl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build search URL: %w", err)
	}

	u, err := url.Parse(parsed.Href(true))
	if err != nil {
		return nil, fmt.Errorf("failed to build search URL: %w", err)
	}
	return u, nil
}
