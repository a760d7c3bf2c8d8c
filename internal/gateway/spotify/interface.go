// Package spotify реализует интерфейсы для работы с Spotify Web API.
package spotify

import "context"

// Interface определяет интерфейс поиска по каталогу Spotify
type Interface interface {
	// Search ищет треки по строке запроса с указанным токеном доступа
	Search(ctx context.Context, query, token string) ([]Track, error)
}

var _ Interface = (*Client)(nil)
