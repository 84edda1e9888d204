//go:build integration

package pg

import (
	"context"
	"testing"

	pgtesting "github.com/DjordjeVuckovic/music-hunter/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedSQL = `
INSERT INTO artists (id, name, image) VALUES
    ('beatles000000001', 'The Beatles', 'https://img/beatles'),
    ('mccartney0000001', 'Paul McCartney', '');
INSERT INTO albums (id, name, image, date, track_count, upc, label) VALUES
    ('help000000000001', 'Help!', '', '1965-08-06', 14, '0077774643924', 'Parlophone'),
    ('orphanalbum00001', 'Nobody''s Album', '', NULL, 1, '', NULL);
INSERT INTO songs (id, name, duration, track_number, isrc, date) VALUES
    ('yesterday0000001', 'Yesterday', 125, 13, 'GBAYE0601498', '1965-08-06'),
    ('orphansong000001', 'Orphan', 60, 1, '', '');
INSERT INTO song_artists VALUES ('yesterday0000001', 'beatles000000001'), ('yesterday0000001', 'mccartney0000001');
INSERT INTO song_albums VALUES ('yesterday0000001', 'help000000000001');
INSERT INTO artist_albums VALUES ('beatles000000001', 'help000000000001');
`

func newSeededCatalog(t *testing.T) *Catalog {
	t.Helper()
	ctx := context.Background()

	container := pgtesting.NewPGContainerWithCleanup(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.conn.Exec(ctx, seedSQL)
	require.NoError(t, err)

	return NewCatalog(pool)
}

func TestCatalog_Integration(t *testing.T) {
	catalog := newSeededCatalog(t)
	ctx := context.Background()

	t.Run("songs aggregate artists and albums", func(t *testing.T) {
		songs, err := catalog.SongsByIDs(ctx, []string{"yesterday0000001", "orphansong000001", "missing000000001"})
		require.NoError(t, err)
		require.Len(t, songs, 2)

		yesterday := songs["yesterday0000001"]
		assert.Contains(t, yesterday.Artist, "The Beatles")
		assert.Contains(t, yesterday.Artist, "Paul McCartney")
		assert.Equal(t, "Help!", yesterday.Album)
		assert.Equal(t, int32(125), yesterday.Duration)

		orphan := songs["orphansong000001"]
		assert.Empty(t, orphan.Artist)
		assert.Empty(t, orphan.Album)
	})

	t.Run("albums keep nullable label", func(t *testing.T) {
		albums, err := catalog.AlbumsByIDs(ctx, []string{"help000000000001", "orphanalbum00001"})
		require.NoError(t, err)
		require.Len(t, albums, 2)

		help := albums["help000000000001"]
		assert.Equal(t, "The Beatles", help.Artist)
		require.NotNil(t, help.Label)
		assert.Equal(t, "Parlophone", *help.Label)
		assert.Equal(t, int32(14), help.TrackCount)

		assert.Nil(t, albums["orphanalbum00001"].Label)
		assert.Empty(t, albums["orphanalbum00001"].ReleaseDate)
	})

	t.Run("single id lookups", func(t *testing.T) {
		artist, err := catalog.ArtistByID(ctx, "beatles000000001")
		require.NoError(t, err)
		require.NotNil(t, artist)
		assert.Equal(t, "The Beatles", artist.Name)

		song, err := catalog.SongByID(ctx, "0000000000000000")
		require.NoError(t, err)
		assert.Nil(t, song)
	})
}
