package storage

import (
	"context"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
)

// CatalogReader hydrates ids into entities from the relational store.
// Batch methods issue at most one query per call and return an empty map
// without querying when ids is empty. Single-id methods return nil when the
// row does not exist. Records are returned as stored; callers decide whether
// missing associations make them unusable.
type CatalogReader interface {
	SongsByIDs(ctx context.Context, ids []string) (map[string]music.Song, error)
	ArtistsByIDs(ctx context.Context, ids []string) (map[string]music.Artist, error)
	AlbumsByIDs(ctx context.Context, ids []string) (map[string]music.Album, error)

	SongByID(ctx context.Context, id string) (*music.Song, error)
	ArtistByID(ctx context.Context, id string) (*music.Artist, error)
	AlbumByID(ctx context.Context, id string) (*music.Album, error)
}
