package es

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/textquerytype"
)

// Backend stores the full display projection of every entity, so hits carry
// their Document.
type Backend struct {
	client       *elasticsearch.TypedClient
	indexName    string
	relevance    query.Relevance
	indexBuilder *IndexBuilder
}

func NewBackend(config ClientConfig, relevance query.Relevance) (*Backend, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Backend{
		client:       client,
		indexName:    config.IndexName,
		relevance:    relevance,
		indexBuilder: NewIndexBuilder(),
	}, nil
}

func (b *Backend) Search(ctx context.Context, expr *query.Expression, page query.Page) (*storage.IndexPage, error) {
	slog.Info("Executing es search",
		"query", expr.Text,
		"artist", expr.Artist,
		"album", expr.Album,
		"item_type", expr.ItemType,
		"limit", page.Limit,
		"offset", page.Offset)

	sortOrderDesc := sortorder.Desc
	sortOrderAsc := sortorder.Asc

	res, err := b.client.Search().
		Index(b.indexName).
		Query(b.buildQuery(expr)).
		From(page.Offset).
		Size(page.Limit).
		TrackScores(true).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"_score": {Order: &sortOrderDesc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"doc_id": {Order: &sortOrderAsc},
				},
			},
		).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "query", expr.Text)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	hits, err := mapHits(res.Hits.Hits)
	if err != nil {
		return nil, fmt.Errorf("failed to map search hits: %w", err)
	}

	slog.Info("ES search results fetched",
		"returned_count", len(hits),
		"took_ms", res.Took)

	return &storage.IndexPage{
		Hits: hits,
		Took: time.Duration(res.Took) * time.Millisecond,
	}, nil
}

func (b *Backend) Count(ctx context.Context, expr *query.Expression) (int64, error) {
	res, err := b.client.Count().
		Index(b.indexName).
		Query(b.buildQuery(expr)).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch count failed", "error", err, "query", expr.Text)
		return 0, fmt.Errorf("failed to execute count: %w", err)
	}
	return res.Count, nil
}

func (b *Backend) Get(ctx context.Context, id string) (*storage.Document, error) {
	res, err := b.client.Get(b.indexName, id).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	if !res.Found || len(res.Source_) == 0 {
		return nil, nil
	}

	var doc storage.Document
	if err := json.Unmarshal(res.Source_, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document %s: %w", id, err)
	}
	if doc.DocID == "" {
		doc.DocID = id
	}
	return &doc, nil
}

func (b *Backend) CountAll(ctx context.Context) (int64, error) {
	res, err := b.client.Count().Index(b.indexName).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return res.Count, nil
}

func (b *Backend) EnsureSchema(ctx context.Context) error {
	existsRes, err := b.client.Indices.Exists(b.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", b.indexName)
		return nil
	}

	settings := b.indexBuilder.buildSettings()
	mappings := b.indexBuilder.buildMapping()

	createRes, err := b.client.Indices.Create(b.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", b.indexName)
	return nil
}

func (b *Backend) Ping(ctx context.Context) error {
	ok, err := b.client.Ping().Do(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("elasticsearch ping failed")
	}
	return nil
}

// buildQuery scores the free text across all text fields, requires the
// artist/album clauses on their own fields and filters by item type.
// Artist searches match the artist clause against name.
func (b *Backend) buildQuery(expr *query.Expression) *types.Query {
	must := make([]types.Query, 0, 3)

	if expr.Text != "" {
		must = append(must, types.Query{MultiMatch: b.multiMatch(expr.Text)})
	}
	if expr.Artist != "" {
		must = append(must, b.fieldMatch(expr.ArtistField(), expr.Artist))
	}
	if expr.Album != "" {
		must = append(must, b.fieldMatch(query.FieldAlbumName, expr.Album))
	}
	if len(must) == 0 {
		must = append(must, types.Query{MatchNone: &types.MatchNoneQuery{}})
	}

	return &types.Query{
		Bool: &types.BoolQuery{
			Must: must,
			Filter: []types.Query{
				{Term: map[string]types.TermQuery{
					"item_type": {Value: string(expr.ItemType)},
				}},
			},
		},
	}
}

func (b *Backend) multiMatch(text string) *types.MultiMatchQuery {
	bestFields := textquerytype.Bestfields
	mm := &types.MultiMatchQuery{
		Query:  text,
		Fields: b.boostedFields(),
		Type:   &bestFields,
	}
	if b.relevance.Fuzziness.Enabled() {
		prefix := b.relevance.PrefixLength
		mm.Fuzziness = string(b.relevance.Fuzziness)
		mm.PrefixLength = &prefix
	}
	return mm
}

func (b *Backend) fieldMatch(field, text string) types.Query {
	and := operator.And
	match := types.MatchQuery{
		Query:    text,
		Operator: &and,
	}
	if b.relevance.Fuzziness.Enabled() {
		prefix := b.relevance.PrefixLength
		match.Fuzziness = string(b.relevance.Fuzziness)
		match.PrefixLength = &prefix
	}
	return types.Query{
		Match: map[string]types.MatchQuery{field: match},
	}
}

// boostedFields renders fields in the "field^boost" form, leaving a boost of
// 1 implicit.
func (b *Backend) boostedFields() []string {
	fields := make([]string, 0, len(b.relevance.Fields))
	for _, f := range b.relevance.Fields {
		if f.Boost != 1.0 {
			fields = append(fields, fmt.Sprintf("%s^%.1f", f.Field, f.Boost))
		} else {
			fields = append(fields, f.Field)
		}
	}
	return fields
}

func mapHits(hits []types.Hit) ([]storage.Hit, error) {
	result := make([]storage.Hit, 0, len(hits))
	for _, hit := range hits {
		var doc storage.Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}

		var score float64
		if hit.Score_ != nil {
			score = float64(*hit.Score_)
		}

		if doc.DocID == "" && hit.Id_ != nil {
			doc.DocID = *hit.Id_
		}

		result = append(result, storage.Hit{
			ID:       doc.DocID,
			Score:    score,
			ItemType: doc.ItemType,
			Document: &doc,
		})
	}
	return result, nil
}

func isNotFound(err error) bool {
	var esErr *types.ElasticsearchError
	if errors.As(err, &esErr) {
		return esErr.Status == http.StatusNotFound
	}
	return strings.Contains(err.Error(), "status: 404")
}

var _ storage.IndexBackend = (*Backend)(nil)
