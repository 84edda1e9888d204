package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool the catalog reads through.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Catalog hydrates index hits into full entities. Records are returned as
// stored, including songs and albums without credited artists.
type Catalog struct {
	db Querier
}

func NewCatalog(pool *ConnectionPool) *Catalog {
	return &Catalog{db: pool.conn}
}

func NewCatalogWithQuerier(db Querier) *Catalog {
	return &Catalog{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (music.Song, error) {
	var s music.Song
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.ImageURL,
		&s.Duration,
		&s.DiscNumber,
		&s.TrackNumber,
		&s.ISRC,
		&s.ReleaseDate,
		&s.Artist,
		&s.Album,
	)
	return s, err
}

func scanArtist(row rowScanner) (music.Artist, error) {
	var a music.Artist
	err := row.Scan(&a.ID, &a.Name, &a.ImageURL)
	return a, err
}

func scanAlbum(row rowScanner) (music.Album, error) {
	var al music.Album
	err := row.Scan(
		&al.ID,
		&al.Name,
		&al.ImageURL,
		&al.ReleaseDate,
		&al.TrackCount,
		&al.UPC,
		&al.Label,
		&al.Artist,
	)
	return al, err
}

func (c *Catalog) SongsByIDs(ctx context.Context, ids []string) (map[string]music.Song, error) {
	return fetchBatch(ctx, c.db, "songs", songsByIDsSQL, ids, scanSong, func(s music.Song) string { return s.ID })
}

func (c *Catalog) ArtistsByIDs(ctx context.Context, ids []string) (map[string]music.Artist, error) {
	return fetchBatch(ctx, c.db, "artists", artistsByIDsSQL, ids, scanArtist, func(a music.Artist) string { return a.ID })
}

func (c *Catalog) AlbumsByIDs(ctx context.Context, ids []string) (map[string]music.Album, error) {
	return fetchBatch(ctx, c.db, "albums", albumsByIDsSQL, ids, scanAlbum, func(al music.Album) string { return al.ID })
}

func (c *Catalog) SongByID(ctx context.Context, id string) (*music.Song, error) {
	return fetchOne(ctx, c.db, "song", songByIDSQL, id, scanSong)
}

func (c *Catalog) ArtistByID(ctx context.Context, id string) (*music.Artist, error) {
	return fetchOne(ctx, c.db, "artist", artistByIDSQL, id, scanArtist)
}

func (c *Catalog) AlbumByID(ctx context.Context, id string) (*music.Album, error) {
	return fetchOne(ctx, c.db, "album", albumByIDSQL, id, scanAlbum)
}

// fetchBatch runs one ANY($1) query over the distinct ids. An empty id set
// never reaches the database.
func fetchBatch[T any](
	ctx context.Context,
	db Querier,
	table, sql string,
	ids []string,
	scan func(rowScanner) (T, error),
	key func(T) string,
) (map[string]T, error) {
	unique := dedupe(ids)
	result := make(map[string]T, len(unique))
	if len(unique) == 0 {
		return result, nil
	}

	slog.Debug("Hydrating catalog records", "table", table, "ids", len(unique))

	rows, err := db.Query(ctx, sql, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		result[key(rec)] = rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", table, err)
	}

	return result, nil
}

func fetchOne[T any](
	ctx context.Context,
	db Querier,
	entity, sql, id string,
	scan func(rowScanner) (T, error),
) (*T, error) {
	rec, err := scan(db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s %s: %w", entity, id, err)
	}
	return &rec, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

var _ storage.CatalogReader = (*Catalog)(nil)
