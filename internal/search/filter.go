package search

import (
	"strings"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
)

// Filters are already trimmed and lowercased. A blank filter matches
// everything, as does a filter that does not apply to the item's type.

func containsFold(value, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), needle)
}

func equalFold(value, want string) bool {
	if want == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(value), want)
}

func matchSong(f query.PostFilter, s *music.Song) bool {
	return containsFold(s.Artist, f.Artist) &&
		containsFold(s.Album, f.Album) &&
		equalFold(s.ISRC, f.ISRC)
}

func matchArtist(f query.PostFilter, a *music.Artist) bool {
	return containsFold(a.Name, f.Artist)
}

func matchAlbum(f query.PostFilter, al *music.Album) bool {
	return containsFold(al.Artist, f.Artist) &&
		equalFold(al.UPC, f.UPC)
}
