package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "http://localhost:9200", want: []string{"http://localhost:9200"}},
		{name: "trims and drops blanks", input: " a , ,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitAndTrim(tt.input, ","))
		})
	}
}

func TestDefaultIfEmpty(t *testing.T) {
	assert.Equal(t, "music", DefaultIfEmpty("", "music"))
	assert.Equal(t, "music", DefaultIfEmpty("  ", "music"))
	assert.Equal(t, "songs", DefaultIfEmpty("songs", "music"))
}
