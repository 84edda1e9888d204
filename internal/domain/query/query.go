package query

import (
	"strings"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Request is the caller-facing search input. Empty strings mean "not set".
type Request struct {
	Text     string
	ItemType music.ItemType
	Artist   string
	Album    string
	ISRC     string
	UPC      string
	Limit    int
	Offset   int
}

// Expression is the index-facing form of a Request: sanitized match text plus
// the artist/album clauses that every hit must also match. Backends render it
// into their own query language.
type Expression struct {
	Text     string
	Artist   string
	Album    string
	ItemType music.ItemType
}

// Empty reports whether the expression has nothing left to match after
// sanitization.
func (e *Expression) Empty() bool {
	return e.Text == "" && e.Artist == "" && e.Album == ""
}

// ArtistField is the index field the artist clause must match. Artist
// documents carry their name in the name field and have no artist_name.
func (e *Expression) ArtistField() string {
	if e.ItemType == music.ItemArtist {
		return FieldName
	}
	return FieldArtistName
}

// Page is an offset window over the ranked hits.
type Page struct {
	Limit  int
	Offset int
}

// PostFilter holds the filters applied after hydration. Values are trimmed and
// lowercased once so matching is case-insensitive.
type PostFilter struct {
	Artist string
	Album  string
	ISRC   string
	UPC    string
}

func NewPostFilter(req Request) PostFilter {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return PostFilter{
		Artist: norm(req.Artist),
		Album:  norm(req.Album),
		ISRC:   norm(req.ISRC),
		UPC:    norm(req.UPC),
	}
}
