package pg

const songColumns = `
	SELECT s.id, s.name, s.image, s.duration,
	       s.disc_number, s.track_number, s.isrc, s.date,
	       COALESCE(string_agg(DISTINCT a.name, ', '), '') AS artist_names,
	       COALESCE(string_agg(DISTINCT al.name, ', '), '') AS album_names
	FROM songs s
	LEFT JOIN song_artists sa ON s.id = sa.song_id
	LEFT JOIN artists a ON sa.artist_id = a.id
	LEFT JOIN song_albums sal ON s.id = sal.song_id
	LEFT JOIN albums al ON sal.album_id = al.id`

const songGroupBy = `
	GROUP BY s.id, s.name, s.image, s.duration,
	         s.disc_number, s.track_number, s.isrc, s.date`

const (
	songsByIDsSQL = songColumns + `
	WHERE s.id = ANY($1)` + songGroupBy

	songByIDSQL = songColumns + `
	WHERE s.id = $1` + songGroupBy
)

const (
	artistsByIDsSQL = `SELECT id, name, image FROM artists WHERE id = ANY($1)`
	artistByIDSQL   = `SELECT id, name, image FROM artists WHERE id = $1`
)

const albumColumns = `
	SELECT al.id, al.name, al.image, COALESCE(al.date, ''),
	       al.track_count, al.upc, al.label,
	       COALESCE(string_agg(DISTINCT a.name, ', '), '') AS artist_names
	FROM albums al
	LEFT JOIN artist_albums aa ON al.id = aa.album_id
	LEFT JOIN artists a ON aa.artist_id = a.id`

const albumGroupBy = `
	GROUP BY al.id, al.name, al.image, al.date,
	         al.track_count, al.upc, al.label`

const (
	albumsByIDsSQL = albumColumns + `
	WHERE al.id = ANY($1)` + albumGroupBy

	albumByIDSQL = albumColumns + `
	WHERE al.id = $1` + albumGroupBy
)
