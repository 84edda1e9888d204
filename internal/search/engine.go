package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Result is one page of hydrated items. Total is the index's match count for
// the query and is not reduced by records dropped after hydration.
type Result struct {
	Items []music.Item `json:"items"`
	Total int64        `json:"total"`
}

// Engine ranks with the index and reads display data from the catalog. It
// holds no per-request state and is safe for concurrent use.
type Engine struct {
	index   storage.IndexBackend
	catalog storage.CatalogReader
	builder *query.Builder
}

func NewEngine(index storage.IndexBackend, catalog storage.CatalogReader, builder *query.Builder) *Engine {
	if builder == nil {
		builder = query.NewBuilder()
	}
	return &Engine{
		index:   index,
		catalog: catalog,
		builder: builder,
	}
}

func (e *Engine) Search(ctx context.Context, req query.Request) (*Result, error) {
	expr, page := e.builder.Build(req)
	if expr.Empty() {
		slog.Debug("Search expression empty after sanitization", "query", req.Text)
		return &Result{Items: []music.Item{}}, nil
	}

	var (
		indexPage *storage.IndexPage
		total     int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := e.index.Search(gctx, expr, page)
		if err != nil {
			return fmt.Errorf("index search: %w", err)
		}
		indexPage = p
		return nil
	})
	g.Go(func() error {
		n, err := e.index.Count(gctx, expr)
		if err != nil {
			return fmt.Errorf("index count: %w", err)
		}
		total = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := rankedIDs(indexPage.Hits, expr.ItemType)
	items, err := e.hydrate(ctx, expr.ItemType, ids, query.NewPostFilter(req))
	if err != nil {
		return nil, err
	}
	if len(items) > page.Limit {
		items = items[:page.Limit]
	}

	slog.Info("Search completed",
		"query", expr.Text,
		"item_type", expr.ItemType,
		"hits", len(indexPage.Hits),
		"returned", len(items),
		"total", total,
		"index_took_ms", indexPage.Took.Milliseconds())

	return &Result{Items: items, Total: total}, nil
}

// rankedIDs keeps hit order and drops hits of other types or with an item
// type the service does not know. Repeated ids keep their first position.
func rankedIDs(hits []storage.Hit, itemType music.ItemType) []string {
	ids := make([]string, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, hit := range hits {
		t := music.ItemType(hit.ItemType)
		if !music.SupportedItemTypes[t] {
			slog.Warn("Skipping hit with unknown item type", "id", hit.ID, "item_type", hit.ItemType)
			continue
		}
		if t != itemType || hit.ID == "" {
			continue
		}
		if _, dup := seen[hit.ID]; dup {
			continue
		}
		seen[hit.ID] = struct{}{}
		ids = append(ids, hit.ID)
	}
	return ids
}

func (e *Engine) hydrate(ctx context.Context, itemType music.ItemType, ids []string, filter query.PostFilter) ([]music.Item, error) {
	items := make([]music.Item, 0, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	switch itemType {
	case music.ItemSong:
		songs, err := e.catalog.SongsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("hydrate songs: %w", err)
		}
		for _, id := range ids {
			s, ok := songs[id]
			if !ok || !songComplete(&s) || !matchSong(filter, &s) {
				continue
			}
			items = append(items, music.SongItem(s))
		}

	case music.ItemArtist:
		artists, err := e.catalog.ArtistsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("hydrate artists: %w", err)
		}
		for _, id := range ids {
			a, ok := artists[id]
			if !ok || !matchArtist(filter, &a) {
				continue
			}
			items = append(items, music.ArtistItem(a))
		}

	case music.ItemAlbum:
		albums, err := e.catalog.AlbumsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("hydrate albums: %w", err)
		}
		for _, id := range ids {
			al, ok := albums[id]
			if !ok || !albumComplete(&al) || !matchAlbum(filter, &al) {
				continue
			}
			items = append(items, music.AlbumItem(al))
		}

	default:
		return nil, fmt.Errorf("unsupported item type: %s", itemType)
	}

	return items, nil
}

// lookup reports whether id is indexed as itemType.
func (e *Engine) lookup(ctx context.Context, id string, itemType music.ItemType) (bool, error) {
	doc, err := e.index.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("index get: %w", err)
	}
	if doc == nil {
		return false, nil
	}
	return music.ItemType(doc.ItemType) == itemType, nil
}

func (e *Engine) GetSong(ctx context.Context, id string) (*music.Song, error) {
	ok, err := e.lookup(ctx, id, music.ItemSong)
	if err != nil || !ok {
		return nil, err
	}

	s, err := e.catalog.SongByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("hydrate song: %w", err)
	}
	if s == nil || !songComplete(s) {
		return nil, nil
	}
	return s, nil
}

func (e *Engine) GetArtist(ctx context.Context, id string) (*music.Artist, error) {
	ok, err := e.lookup(ctx, id, music.ItemArtist)
	if err != nil || !ok {
		return nil, err
	}

	a, err := e.catalog.ArtistByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("hydrate artist: %w", err)
	}
	return a, nil
}

func (e *Engine) GetAlbum(ctx context.Context, id string) (*music.Album, error) {
	ok, err := e.lookup(ctx, id, music.ItemAlbum)
	if err != nil || !ok {
		return nil, err
	}

	al, err := e.catalog.AlbumByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("hydrate album: %w", err)
	}
	if al == nil || !albumComplete(al) {
		return nil, nil
	}
	return al, nil
}
