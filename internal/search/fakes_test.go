package search

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage"
	"github.com/stretchr/testify/mock"
)

// memIndex serves a fixed ranking. Search windows over hits as given, so tests
// control exactly what the engine receives.
type memIndex struct {
	hits  []storage.Hit
	docs  map[string]storage.Document
	total int64

	searches atomic.Int32
	counts   atomic.Int32
}

func (m *memIndex) Search(_ context.Context, _ *query.Expression, page query.Page) (*storage.IndexPage, error) {
	m.searches.Add(1)
	start := min(page.Offset, len(m.hits))
	end := min(page.Offset+page.Limit, len(m.hits))
	return &storage.IndexPage{Hits: m.hits[start:end]}, nil
}

func (m *memIndex) Count(context.Context, *query.Expression) (int64, error) {
	m.counts.Add(1)
	return m.total, nil
}

func (m *memIndex) Get(_ context.Context, id string) (*storage.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

func (m *memIndex) EnsureSchema(context.Context) error { return nil }

func (m *memIndex) CountAll(context.Context) (int64, error) { return int64(len(m.docs)), nil }

type MockIndex struct {
	mock.Mock
}

func (m *MockIndex) Search(ctx context.Context, expr *query.Expression, page query.Page) (*storage.IndexPage, error) {
	args := m.Called(ctx, expr, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.IndexPage), args.Error(1)
}

func (m *MockIndex) Count(ctx context.Context, expr *query.Expression) (int64, error) {
	args := m.Called(ctx, expr)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIndex) Get(ctx context.Context, id string) (*storage.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Document), args.Error(1)
}

func (m *MockIndex) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockIndex) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type memCatalog struct {
	songs   map[string]music.Song
	artists map[string]music.Artist
	albums  map[string]music.Album
	err     error

	mu    sync.Mutex
	calls []string
}

func (c *memCatalog) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func pick[T any](src map[string]T, ids []string) map[string]T {
	out := make(map[string]T, len(ids))
	for _, id := range ids {
		if v, ok := src[id]; ok {
			out[id] = v
		}
	}
	return out
}

func (c *memCatalog) SongsByIDs(_ context.Context, ids []string) (map[string]music.Song, error) {
	c.record("SongsByIDs")
	if c.err != nil {
		return nil, c.err
	}
	return pick(c.songs, ids), nil
}

func (c *memCatalog) ArtistsByIDs(_ context.Context, ids []string) (map[string]music.Artist, error) {
	c.record("ArtistsByIDs")
	if c.err != nil {
		return nil, c.err
	}
	return pick(c.artists, ids), nil
}

func (c *memCatalog) AlbumsByIDs(_ context.Context, ids []string) (map[string]music.Album, error) {
	c.record("AlbumsByIDs")
	if c.err != nil {
		return nil, c.err
	}
	return pick(c.albums, ids), nil
}

func (c *memCatalog) SongByID(_ context.Context, id string) (*music.Song, error) {
	c.record("SongByID")
	if c.err != nil {
		return nil, c.err
	}
	if s, ok := c.songs[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (c *memCatalog) ArtistByID(_ context.Context, id string) (*music.Artist, error) {
	c.record("ArtistByID")
	if c.err != nil {
		return nil, c.err
	}
	if a, ok := c.artists[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (c *memCatalog) AlbumByID(_ context.Context, id string) (*music.Album, error) {
	c.record("AlbumByID")
	if c.err != nil {
		return nil, c.err
	}
	if al, ok := c.albums[id]; ok {
		return &al, nil
	}
	return nil, nil
}

func songHit(id string) storage.Hit {
	return storage.Hit{ID: id, ItemType: string(music.ItemSong)}
}

func itemIDs(items []music.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID())
	}
	return ids
}
