package query

import (
	"strings"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
)

// DefaultReservedChars have special meaning in the index query syntax.
var DefaultReservedChars = []string{`'`, `"`, `\`, "@", "!", "^"}

type BuilderOption func(b *Builder)

// Builder turns a Request into an Expression and a Page. It is safe for
// concurrent use; all state is built in NewBuilder.
type Builder struct {
	sanitizer    *strings.Replacer
	defaultType  music.ItemType
	defaultLimit int
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		defaultType:  music.DefaultItemType,
		defaultLimit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.sanitizer == nil {
		b.sanitizer = newSanitizer(DefaultReservedChars)
	}
	return b
}

// WithReservedChars replaces the set of characters blanked out of query text.
func WithReservedChars(chars ...string) BuilderOption {
	return func(b *Builder) {
		b.sanitizer = newSanitizer(chars)
	}
}

func WithDefaultLimit(limit int) BuilderOption {
	return func(b *Builder) {
		if limit > 0 {
			b.defaultLimit = limit
		}
	}
}

func newSanitizer(chars []string) *strings.Replacer {
	pairs := make([]string, 0, len(chars)*2)
	for _, c := range chars {
		pairs = append(pairs, c, " ")
	}
	return strings.NewReplacer(pairs...)
}

// Sanitize blanks out reserved characters and collapses whitespace. It never
// fails.
func (b *Builder) Sanitize(s string) string {
	return strings.Join(strings.Fields(b.sanitizer.Replace(s)), " ")
}

// Build never rejects input: reserved characters are blanked, a missing item
// type falls back to songs, and out-of-range paging is normalized.
func (b *Builder) Build(req Request) (*Expression, Page) {
	itemType := req.ItemType
	if itemType == "" {
		itemType = b.defaultType
	}

	expr := &Expression{
		Text:     b.Sanitize(req.Text),
		Artist:   b.Sanitize(req.Artist),
		Album:    b.Sanitize(req.Album),
		ItemType: itemType,
	}

	page := Page{Limit: req.Limit, Offset: req.Offset}
	if page.Limit <= 0 {
		page.Limit = b.defaultLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}

	return expr, page
}
