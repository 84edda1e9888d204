package search

import (
	"strings"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
)

// Catalog rows can lose their associations while the index still points at
// them. Such records are not shown.

func songComplete(s *music.Song) bool {
	return strings.TrimSpace(s.Artist) != "" && strings.TrimSpace(s.Album) != ""
}

func albumComplete(al *music.Album) bool {
	return strings.TrimSpace(al.Artist) != ""
}
