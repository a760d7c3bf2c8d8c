// Package spotify содержит типы для работы с Spotify API.
package spotify

// ExternalURLs содержит публичную ссылку на сущность Spotify
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

// Artist представляет исполнителя альбома
type Artist struct {
	Name         string       `json:"name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Album представляет альбом, к которому относится трек
type Album struct {
	Name         string       `json:"name"`
	Artists      []Artist     `json:"artists"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Track представляет найденный трек
type Track struct {
	Name         string       `json:"name"`
	Href         string       `json:"href"` // ссылка на ресурс API
	Popularity   uint32       `json:"popularity"`
	Album        Album        `json:"album"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Page представляет страницу результатов
type Page[T any] struct {
	Items []T `json:"items"`
}

// SearchResponse представляет ответ /v1/search. Разбирается только ветка tracks.
type SearchResponse struct {
	Tracks Page[Track] `json:"tracks"`
}
