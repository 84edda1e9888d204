package query

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Index field names shared by every backend.
const (
	FieldName       = "name"
	FieldArtistName = "artist_name"
	FieldAlbumName  = "album_name"
)

// fieldRank fixes the order boosts must descend in.
var fieldRank = []string{FieldName, FieldArtistName, FieldAlbumName}

type FieldBoost struct {
	Field string  `yaml:"field"`
	Boost float64 `yaml:"boost"`
}

// Relevance describes how matches are scored across the text fields.
type Relevance struct {
	Fields       []FieldBoost `yaml:"fields"`
	Fuzziness    Fuzziness    `yaml:"fuzziness"`
	PrefixLength int          `yaml:"prefix_length"`
}

func DefaultRelevance() Relevance {
	return Relevance{
		Fields: []FieldBoost{
			{Field: FieldName, Boost: 3},
			{Field: FieldArtistName, Boost: 2},
			{Field: FieldAlbumName, Boost: 1},
		},
		Fuzziness:    FuzzinessAuto,
		PrefixLength: 2,
	}
}

// Boost returns the configured boost for field, or 0 when it is not scored.
func (r Relevance) Boost(field string) float64 {
	for _, f := range r.Fields {
		if f.Field == field {
			return f.Boost
		}
	}
	return 0
}

// Validate requires known fields with positive boosts that strictly descend
// name > artist_name > album_name.
func (r Relevance) Validate() error {
	if len(r.Fields) == 0 {
		return errors.New("relevance: at least one field is required")
	}

	seen := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if !isTextField(f.Field) {
			return fmt.Errorf("relevance: unknown field %q", f.Field)
		}
		if seen[f.Field] {
			return fmt.Errorf("relevance: duplicate field %q", f.Field)
		}
		if f.Boost <= 0 {
			return fmt.Errorf("relevance: boost for %q must be positive", f.Field)
		}
		seen[f.Field] = true
	}

	prev := 0.0
	for _, name := range fieldRank {
		b := r.Boost(name)
		if b == 0 {
			continue
		}
		if prev != 0 && b >= prev {
			return fmt.Errorf("relevance: boost for %q (%.1f) must be lower than the previous field (%.1f)", name, b, prev)
		}
		prev = b
	}

	if !SupportedFuzziness[r.Fuzziness] {
		return fmt.Errorf("relevance: unsupported fuzziness %q", r.Fuzziness)
	}
	if r.PrefixLength < 0 {
		return errors.New("relevance: prefix_length must not be negative")
	}
	return nil
}

// LoadRelevance decodes YAML over DefaultRelevance, so a file may override
// only some settings.
func LoadRelevance(reader io.Reader) (Relevance, error) {
	r := DefaultRelevance()
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return Relevance{}, fmt.Errorf("relevance: decode: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Relevance{}, err
	}
	return r, nil
}

func isTextField(field string) bool {
	for _, f := range fieldRank {
		if f == field {
			return true
		}
	}
	return false
}
