package spotify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// Промежуточные типы с указателями позволяют отличить отсутствующее поле
// (или null) от пустого значения. Все поля SearchResponse обязательны.
// Ключи сравниваются точно, повтор известного ключа - ошибка.

type wireExternalURLs struct {
	Spotify *string `json:"spotify"`
}

type wireArtist struct {
	Name         *string           `json:"name"`
	ExternalURLs *wireExternalURLs `json:"external_urls"`
}

type wireAlbum struct {
	Name         *string           `json:"name"`
	Artists      *[]wireArtist     `json:"artists"`
	ExternalURLs *wireExternalURLs `json:"external_urls"`
}

type wireTrack struct {
	Name         *string           `json:"name"`
	Href         *string           `json:"href"`
	Popularity   *uint32           `json:"popularity"`
	Album        *wireAlbum        `json:"album"`
	ExternalURLs *wireExternalURLs `json:"external_urls"`
}

type wireTracks struct {
	Items *[]wireTrack `json:"items"`
}

type wireSearchResponse struct {
	Tracks *wireTracks `json:"tracks"`
}

func (w *wireExternalURLs) UnmarshalJSON(data []byte) error {
	return decodeObject(data, map[string]any{
		"spotify": &w.Spotify,
	})
}

func (w *wireArtist) UnmarshalJSON(data []byte) error {
	return decodeObject(data, map[string]any{
		"name":          &w.Name,
		"external_urls": &w.ExternalURLs,
	})
}

func (w *wireAlbum) UnmarshalJSON(data []byte) error {
	return decodeObject(data, map[string]any{
		"name":          &w.Name,
		"artists":       &w.Artists,
		"external_urls": &w.ExternalURLs,
	})
}

func (w *wireTrack) UnmarshalJSON(data []byte) error {
	return decodeObject(data, map[string]any{
		"name":          &w.Name,
		"href":          &w.Href,
		"popularity":    &w.Popularity,
		"album":         &w.Album,
		"external_urls": &w.ExternalURLs,
	})
}

func (w *wireTracks) UnmarshalJSON(data []byte) error {
	return decodeObject(data, map[string]any{
		"items": &w.Items,
	})
}

func (w *wireSearchResponse) UnmarshalJSON(data []byte) error {
	return decodeObject(data, map[string]any{
		"tracks": &w.Tracks,
	})
}

// decodeObject разбирает JSON-объект по полям. fields сопоставляет ключ с
// приемником значения, остальные ключи пропускаются. null оставляет
// приемники пустыми.
func decodeObject(data []byte, fields map[string]any) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, found %v", tok)
	}

	seen := make(map[string]bool, len(fields))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, found %v", tok)
		}

		target, known := fields[key]
		if !known {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return err
			}
			continue
		}
		if seen[key] {
			return fmt.Errorf("duplicate field %q", key)
		}
		seen[key] = true

		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}

	// закрывающая '}'
	_, err = dec.Token()
	return err
}

var (
	errInvalidUTF8   = errors.New("invalid UTF-8")
	errLoneSurrogate = errors.New("lone surrogate in \\u escape")
)

// checkText отклоняет тело с невалидным UTF-8 или с одиночным суррогатом
// в escape-последовательности. encoding/json заменил бы их на U+FFFD.
func checkText(body []byte) error {
	if !utf8.Valid(body) {
		return errInvalidUTF8
	}

	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			continue
		}
		if r, ok := escapedRune(body[i:]); ok && utf16.IsSurrogate(r) {
			if r >= 0xdc00 {
				return errLoneSurrogate
			}
			low, ok := escapedRune(body[i+6:])
			if !ok || low < 0xdc00 || low > 0xdfff {
				return errLoneSurrogate
			}
			i += 6
		}
		// пропускаем экранированный символ
		i++
	}
	return nil
}

// escapedRune читает \uXXXX в начале b
func escapedRune(b []byte) (rune, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(b[2:6]), 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// decodeSearchResponse разбирает тело ответа /v1/search.
// Любая ошибка оборачивает ErrShapeMismatch.
func decodeSearchResponse(body []byte) (*SearchResponse, error) {
	if err := checkText(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	var wire wireSearchResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShapeMismatch, err)
	}

	if wire.Tracks == nil {
		return nil, missingField("tracks")
	}
	if wire.Tracks.Items == nil {
		return nil, missingField("tracks.items")
	}

	items := *wire.Tracks.Items
	tracks := make([]Track, 0, len(items))
	for i, item := range items {
		track, err := item.toTrack(fmt.Sprintf("tracks.items[%d]", i))
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	return &SearchResponse{Tracks: Page[Track]{Items: tracks}}, nil
}

func missingField(path string) error {
	return fmt.Errorf("%w: missing field %s", ErrShapeMismatch, path)
}

func (w wireTrack) toTrack(path string) (Track, error) {
	switch {
	case w.Name == nil:
		return Track{}, missingField(path + ".name")
	case w.Href == nil:
		return Track{}, missingField(path + ".href")
	case w.Popularity == nil:
		return Track{}, missingField(path + ".popularity")
	case w.Album == nil:
		return Track{}, missingField(path + ".album")
	}

	album, err := w.Album.toAlbum(path + ".album")
	if err != nil {
		return Track{}, err
	}
	links, err := w.ExternalURLs.toExternalURLs(path + ".external_urls")
	if err != nil {
		return Track{}, err
	}

	return Track{
		Name:         *w.Name,
		Href:         *w.Href,
		Popularity:   *w.Popularity,
		Album:        album,
		ExternalURLs: links,
	}, nil
}

func (w *wireAlbum) toAlbum(path string) (Album, error) {
	if w.Name == nil {
		return Album{}, missingField(path + ".name")
	}
	if w.Artists == nil {
		return Album{}, missingField(path + ".artists")
	}

	artists := make([]Artist, 0, len(*w.Artists))
	for i, a := range *w.Artists {
		artistPath := fmt.Sprintf("%s.artists[%d]", path, i)
		if a.Name == nil {
			return Album{}, missingField(artistPath + ".name")
		}
		links, err := a.ExternalURLs.toExternalURLs(artistPath + ".external_urls")
		if err != nil {
			return Album{}, err
		}
		artists = append(artists, Artist{Name: *a.Name, ExternalURLs: links})
	}

	links, err := w.ExternalURLs.toExternalURLs(path + ".external_urls")
	if err != nil {
		return Album{}, err
	}

	return Album{Name: *w.Name, Artists: artists, ExternalURLs: links}, nil
}

func (w *wireExternalURLs) toExternalURLs(path string) (ExternalURLs, error) {
	if w == nil {
		return ExternalURLs{}, missingField(path)
	}
	if w.Spotify == nil {
		return ExternalURLs{}, missingField(path + ".spotify")
	}
	return ExternalURLs{Spotify: *w.Spotify}, nil
}
