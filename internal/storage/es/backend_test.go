package es

import (
	"encoding/json"
	"testing"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/music"
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(relevance query.Relevance) *Backend {
	return &Backend{
		indexName:    "music",
		relevance:    relevance,
		indexBuilder: NewIndexBuilder(),
	}
}

func TestBackend_BoostedFields(t *testing.T) {
	b := newTestBackend(query.DefaultRelevance())

	assert.Equal(t, []string{"name^3.0", "artist_name^2.0", "album_name"}, b.boostedFields())
}

func TestBackend_BuildQuery(t *testing.T) {
	tests := []struct {
		name      string
		expr      query.Expression
		wantMust  int
		wantMulti bool
		wantMatch []string
	}{
		{
			name:      "text only",
			expr:      query.Expression{Text: "yesterday", ItemType: music.ItemSong},
			wantMust:  1,
			wantMulti: true,
		},
		{
			name:      "text with artist and album",
			expr:      query.Expression{Text: "yesterday", Artist: "beatles", Album: "help", ItemType: music.ItemSong},
			wantMust:  3,
			wantMulti: true,
			wantMatch: []string{query.FieldArtistName, query.FieldAlbumName},
		},
		{
			name:      "artist only",
			expr:      query.Expression{Artist: "beatles", ItemType: music.ItemAlbum},
			wantMust:  1,
			wantMatch: []string{query.FieldArtistName},
		},
		{
			name:      "artist search matches artist clause on name",
			expr:      query.Expression{Text: "the", Artist: "beat", ItemType: music.ItemArtist},
			wantMust:  2,
			wantMulti: true,
			wantMatch: []string{query.FieldName},
		},
	}

	b := newTestBackend(query.DefaultRelevance())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := b.buildQuery(&tt.expr)
			require.NotNil(t, q.Bool)
			require.Len(t, q.Bool.Must, tt.wantMust)

			if tt.wantMulti {
				mm := q.Bool.Must[0].MultiMatch
				require.NotNil(t, mm)
				assert.Equal(t, tt.expr.Text, mm.Query)
				assert.Equal(t, []string{"name^3.0", "artist_name^2.0", "album_name"}, mm.Fields)
				assert.Equal(t, "AUTO", mm.Fuzziness)
				require.NotNil(t, mm.PrefixLength)
				assert.Equal(t, 2, *mm.PrefixLength)
			}

			var matched []string
			for _, clause := range q.Bool.Must {
				for field, m := range clause.Match {
					matched = append(matched, field)
					require.NotNil(t, m.Operator)
					assert.Equal(t, operator.And, *m.Operator)
				}
			}
			assert.ElementsMatch(t, tt.wantMatch, matched)

			require.Len(t, q.Bool.Filter, 1)
			term, ok := q.Bool.Filter[0].Term["item_type"]
			require.True(t, ok)
			assert.Equal(t, string(tt.expr.ItemType), term.Value)
		})
	}
}

func TestBackend_BuildQuery_NoFuzziness(t *testing.T) {
	relevance := query.DefaultRelevance()
	relevance.Fuzziness = query.NoFuzziness
	b := newTestBackend(relevance)

	q := b.buildQuery(&query.Expression{Text: "help", ItemType: music.ItemAlbum})

	mm := q.Bool.Must[0].MultiMatch
	require.NotNil(t, mm)
	assert.Nil(t, mm.Fuzziness)
	assert.Nil(t, mm.PrefixLength)
}

func TestBackend_BuildQuery_EmptyMatchesNothing(t *testing.T) {
	b := newTestBackend(query.DefaultRelevance())

	q := b.buildQuery(&query.Expression{ItemType: music.ItemSong})

	require.Len(t, q.Bool.Must, 1)
	assert.NotNil(t, q.Bool.Must[0].MatchNone)
}

func TestMapHits(t *testing.T) {
	score := types.Float64(4.2)
	source, err := json.Marshal(map[string]any{
		"doc_id":      "0123456789abcdef",
		"name":        "Yesterday",
		"artist_name": "The Beatles",
		"album_name":  "Help!",
		"item_type":   "song",
		"duration":    125,
	})
	require.NoError(t, err)

	hits, err := mapHits([]types.Hit{{Source_: source, Score_: &score}})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "0123456789abcdef", hits[0].ID)
	assert.Equal(t, 4.2, hits[0].Score)
	assert.Equal(t, "song", hits[0].ItemType)
	require.NotNil(t, hits[0].Document)
	assert.Equal(t, "The Beatles", hits[0].Document.ArtistName)
	assert.Equal(t, int32(125), hits[0].Document.Duration)
}

func TestMapHits_FallsBackToHitID(t *testing.T) {
	id := "fedcba9876543210"
	source := json.RawMessage(`{"id":"fedcba9876543210","name":"Help!","item_type":"album"}`)

	hits, err := mapHits([]types.Hit{{Id_: &id, Source_: source}})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, id, hits[0].ID)
	assert.Equal(t, "album", hits[0].ItemType)
	assert.Equal(t, id, hits[0].Document.DocID)
}

func TestMapHits_InvalidSource(t *testing.T) {
	_, err := mapHits([]types.Hit{{Source_: json.RawMessage(`{"doc_id":`)}})
	assert.Error(t, err)
}

func TestIndexBuilder(t *testing.T) {
	ib := NewIndexBuilder()

	settings := ib.buildSettings()
	require.NotNil(t, settings.Analysis)
	assert.Contains(t, settings.Analysis.Analyzer, musicAnalyzer)
	assert.Contains(t, settings.Analysis.Analyzer, searchAnalyzer)

	filter, ok := settings.Analysis.Filter[edgeNGramFilter].(types.EdgeNGramTokenFilter)
	require.True(t, ok)
	require.NotNil(t, filter.MinGram)
	require.NotNil(t, filter.MaxGram)
	assert.Equal(t, 2, *filter.MinGram)
	assert.Equal(t, 20, *filter.MaxGram)

	mapping := ib.buildMapping()
	for _, field := range []string{"doc_id", query.FieldName, query.FieldArtistName, query.FieldAlbumName, "item_type"} {
		assert.Contains(t, mapping.Properties, field)
	}

	name, ok := mapping.Properties[query.FieldName].(*types.TextProperty)
	require.True(t, ok)
	require.NotNil(t, name.Analyzer)
	require.NotNil(t, name.SearchAnalyzer)
	assert.Equal(t, musicAnalyzer, *name.Analyzer)
	assert.Equal(t, searchAnalyzer, *name.SearchAnalyzer)
}
