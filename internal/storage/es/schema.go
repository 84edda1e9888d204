package es

import (
	"github.com/DjordjeVuckovic/music-hunter/internal/domain/query"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const (
	musicAnalyzer   = "music_analyzer"
	searchAnalyzer  = "music_search_analyzer"
	edgeNGramFilter = "edge_ngram_filter"

	defaultMinGram = 2
	defaultMaxGram = 20
)

// IndexBuilder produces the index settings and mappings. Text fields are
// indexed as lowercased, ASCII-folded edge n-grams so partial words match as
// prefixes; queries are analysed without n-grams.
type IndexBuilder struct {
	minGram int
	maxGram int
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{
		minGram: defaultMinGram,
		maxGram: defaultMaxGram,
	}
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	minGram, maxGram := b.minGram, b.maxGram

	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				musicAnalyzer: types.CustomAnalyzer{
					Type:      "custom",
					Tokenizer: "standard",
					Filter:    []string{"lowercase", "asciifolding", edgeNGramFilter},
				},
				searchAnalyzer: types.CustomAnalyzer{
					Type:      "custom",
					Tokenizer: "standard",
					Filter:    []string{"lowercase", "asciifolding"},
				},
			},
			Filter: map[string]types.TokenFilter{
				edgeNGramFilter: types.EdgeNGramTokenFilter{
					Type:    "edge_ngram",
					MinGram: &minGram,
					MaxGram: &maxGram,
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"doc_id":              types.NewKeywordProperty(),
			query.FieldName:       b.createTextPropertyWithKeyword(),
			query.FieldArtistName: b.createTextProperty(),
			query.FieldAlbumName:  b.createTextProperty(),
			"item_type":           types.NewKeywordProperty(),
			"duration":            b.createStoredIntProperty(),
			"date":                b.createStoredKeywordProperty(),
			"image":               b.createStoredKeywordProperty(),
		},
	}
}

func (b *IndexBuilder) createTextProperty() *types.TextProperty {
	analyzer, search := musicAnalyzer, searchAnalyzer
	textProp := types.NewTextProperty()
	textProp.Analyzer = &analyzer
	textProp.SearchAnalyzer = &search
	return textProp
}

func (b *IndexBuilder) createTextPropertyWithKeyword() *types.TextProperty {
	textProp := b.createTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}

func (b *IndexBuilder) createStoredKeywordProperty() *types.KeywordProperty {
	index := false
	prop := types.NewKeywordProperty()
	prop.Index = &index
	return prop
}

func (b *IndexBuilder) createStoredIntProperty() *types.IntegerNumberProperty {
	index := false
	prop := types.NewIntegerNumberProperty()
	prop.Index = &index
	return prop
}
