package formatter

import (
	"fmt"
	"io"
	"strings"

	"spotsearch/internal/gateway/spotify"
)

// Separator ends every track block
const Separator = "---------"

// ArtistNames concatenates album artist names with no separator
func ArtistNames(album spotify.Album) string {
	var b strings.Builder
	for _, artist := range album.Artists {
		b.WriteString(artist.Name)
	}
	return b.String()
}

// PrintTracks writes five lines per track in the given order: track name,
// album name, album artists, the track's public link and the separator.
func PrintTracks(w io.Writer, tracks []spotify.Track) error {
	for _, track := range tracks {
		lines := [...]string{
			track.Name,
			track.Album.Name,
			ArtistNames(track.Album),
			track.ExternalURLs.Spotify,
			Separator,
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("failed to print track %q: %w", track.Name, err)
			}
		}
	}
	return nil
}
