package storage

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
)

// Document is the denormalized projection the ingestion pipeline writes to the
// index. It may be stale relative to the relational store.
type Document struct {
	DocID      string `json:"doc_id"`
	Name       string `json:"name"`
	ArtistName string `json:"artist_name,omitempty"`
	AlbumName  string `json:"album_name,omitempty"`
	ItemType   string `json:"item_type"`
	Duration   int32  `json:"duration,omitempty"`
	Date       string `json:"date,omitempty"`
	Image      string `json:"image,omitempty"`
}

// Hit is one ranked match. Document is only populated by backends that store
// the full display projection.
type Hit struct {
	ID       string
	Score    float64
	ItemType string
	Document *Document
}

// IndexPage holds the hits for one page in rank order.
type IndexPage struct {
	Hits []Hit
	Took time.Duration
}

// IndexBackend is the full-text index capability set.
type IndexBackend interface {
	// Search returns the ranked hits for expr inside page.
	Search(ctx context.Context, expr *query.Expression, page query.Page) (*IndexPage, error)
	// Count returns how many documents match expr. It is the relevance query
	// count, not a raw document count.
	Count(ctx context.Context, expr *query.Expression) (int64, error)
	// Get returns the document stored under id, or nil when there is none.
	Get(ctx context.Context, id string) (*Document, error)
	// EnsureSchema creates the index if it does not exist yet.
	EnsureSchema(ctx context.Context) error
	// CountAll returns the number of indexed documents regardless of query.
	CountAll(ctx context.Context) (int64, error)
}

// Index is an IndexBackend that can also report whether it is reachable.
type Index interface {
	IndexBackend
	Ping(ctx context.Context) error
}
