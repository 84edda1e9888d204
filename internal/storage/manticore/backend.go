package manticore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/DjordjeVuckovic/music-hunter/internal/storage"
)

const (
	defaultTable = "music"
	// Manticore caps result windows at max_matches, 1000 unless raised.
	defaultMaxMatches = 1000
)

type Config struct {
	URL   string
	Table string
}

// Backend stores only ids and item types, so hits never carry a Document and
// the catalog supplies every display field.
type Backend struct {
	client    *Client
	table     string
	relevance query.Relevance
}

func NewBackend(config Config, relevance query.Relevance, opts ...ClientOption) (*Backend, error) {
	client, err := NewClient(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Manticore client: %w", err)
	}

	table := config.Table
	if table == "" {
		table = defaultTable
	}

	return &Backend{
		client:    client,
		table:     table,
		relevance: relevance,
	}, nil
}

type hitRow struct {
	DocID    string  `json:"doc_id"`
	ItemType string  `json:"item_type"`
	Score    float64 `json:"score"`
}

type countRow struct {
	Count int64 `json:"cnt"`
}

func (b *Backend) Search(ctx context.Context, expr *query.Expression, page query.Page) (*storage.IndexPage, error) {
	sql := b.searchSQL(expr, page)

	slog.Info("Executing manticore search",
		"query", expr.Text,
		"artist", expr.Artist,
		"album", expr.Album,
		"item_type", expr.ItemType,
		"limit", page.Limit,
		"offset", page.Offset)

	start := time.Now()
	set, err := b.client.Query(ctx, sql)
	if err != nil {
		slog.Error("Manticore query failed", "error", err, "query", expr.Text)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	took := time.Since(start)

	hits := make([]storage.Hit, 0, len(set.Data))
	for _, raw := range set.Data {
		var row hitRow
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("failed to decode search row: %w", err)
		}
		hits = append(hits, storage.Hit{
			ID:       row.DocID,
			Score:    row.Score,
			ItemType: row.ItemType,
		})
	}

	slog.Info("Manticore search results fetched",
		"returned_count", len(hits),
		"took_ms", took.Milliseconds())

	return &storage.IndexPage{Hits: hits, Took: took}, nil
}

func (b *Backend) Count(ctx context.Context, expr *query.Expression) (int64, error) {
	set, err := b.client.Query(ctx, b.countSQL(expr))
	if err != nil {
		slog.Error("Manticore count failed", "error", err, "query", expr.Text)
		return 0, fmt.Errorf("failed to execute count: %w", err)
	}
	return firstCount(set)
}

func (b *Backend) Get(ctx context.Context, id string) (*storage.Document, error) {
	sql := fmt.Sprintf("SELECT doc_id, item_type FROM %s WHERE doc_id='%s' LIMIT 1", b.table, quote(id))

	set, err := b.client.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	if len(set.Data) == 0 {
		return nil, nil
	}

	var doc storage.Document
	if err := json.Unmarshal(set.Data[0], &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return &doc, nil
}

func (b *Backend) CountAll(ctx context.Context) (int64, error) {
	set, err := b.client.Query(ctx, fmt.Sprintf("SELECT COUNT(*) AS cnt FROM %s", b.table))
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return firstCount(set)
}

func (b *Backend) EnsureSchema(ctx context.Context) error {
	if _, err := b.client.Query(ctx, createTableSQL(b.table)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	slog.Info("Table ensured", "table", b.table)
	return nil
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx)
}

func (b *Backend) searchSQL(expr *query.Expression, page query.Page) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT doc_id, item_type, WEIGHT() AS score FROM %s WHERE %s",
		b.table, b.where(expr))
	// doc_id breaks weight ties so pages stay stable.
	sb.WriteString(" ORDER BY score DESC, doc_id ASC")
	fmt.Fprintf(&sb, " LIMIT %d, %d", page.Offset, page.Limit)

	options := []string{
		"ranker=proximity_bm25",
		"field_weights=(" + b.fieldWeights() + ")",
	}
	if b.relevance.Fuzziness.Enabled() {
		options = append(options, "fuzzy=1")
	}
	if window := page.Offset + page.Limit; window > defaultMaxMatches {
		options = append(options, fmt.Sprintf("max_matches=%d", window))
	}
	sb.WriteString(" OPTION ")
	sb.WriteString(strings.Join(options, ", "))

	return sb.String()
}

func (b *Backend) countSQL(expr *query.Expression) string {
	sql := fmt.Sprintf("SELECT COUNT(*) AS cnt FROM %s WHERE %s", b.table, b.where(expr))
	if b.relevance.Fuzziness.Enabled() {
		sql += " OPTION fuzzy=1"
	}
	return sql
}

func (b *Backend) where(expr *query.Expression) string {
	return fmt.Sprintf("MATCH('%s') AND item_type='%s'", matchExpression(expr), quote(string(expr.ItemType)))
}

// fieldWeights maps boosts to the integer weights Manticore accepts.
func (b *Backend) fieldWeights() string {
	weights := make([]string, 0, len(b.relevance.Fields))
	for _, f := range b.relevance.Fields {
		w := int(math.Round(f.Boost))
		if w < 1 {
			w = 1
		}
		weights = append(weights, fmt.Sprintf("%s=%d", f.Field, w))
	}
	return strings.Join(weights, ", ")
}

// matchExpression scores the text across every field and limits the artist
// and album clauses to their own fields.
func matchExpression(expr *query.Expression) string {
	parts := make([]string, 0, 3)
	if expr.Text != "" {
		parts = append(parts, escapeMatch(expr.Text))
	}
	if expr.Artist != "" {
		parts = append(parts, "@"+expr.ArtistField()+" "+escapeMatch(expr.Artist))
	}
	if expr.Album != "" {
		parts = append(parts, "@"+query.FieldAlbumName+" "+escapeMatch(expr.Album))
	}
	return strings.Join(parts, " ")
}

// Full-text operators are escaped with a backslash, itself doubled inside the
// SQL string literal.
var matchEscaper = func() *strings.Replacer {
	special := []string{"(", ")", "|", "-", "!", "@", "~", "\"", "&", "/", "^", "$", "=", "<", "*", "[", "]"}
	pairs := make([]string, 0, len(special)*2+4)
	pairs = append(pairs, `\`, `\\\\`, "'", `\'`)
	for _, s := range special {
		pairs = append(pairs, s, `\\`+s)
	}
	return strings.NewReplacer(pairs...)
}()

func escapeMatch(s string) string {
	return matchEscaper.Replace(s)
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func quote(s string) string {
	return quoteReplacer.Replace(s)
}

func firstCount(set *ResultSet) (int64, error) {
	if len(set.Data) == 0 {
		return 0, nil
	}
	var row countRow
	if err := json.Unmarshal(set.Data[0], &row); err != nil {
		return 0, fmt.Errorf("failed to decode count row: %w", err)
	}
	return row.Count, nil
}

var _ storage.IndexBackend = (*Backend)(nil)
