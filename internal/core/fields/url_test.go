package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already canonical", "https://otter.ai", "https://otter.ai"},
		{"trailing slash", "https://otter.ai/", "https://otter.ai"},
		{"host lowercased, path kept", "HTTPS://Otter.AI/Pricing/", "https://otter.ai/Pricing"},
		{"http upgraded", "http://example.com/docs", "https://example.com/docs"},
		{"default port stripped", "https://example.com:443/a", "https://example.com/a"},
		{"custom port kept", "https://example.com:8443/a", "https://example.com:8443/a"},
		{"scheme-less", "github.com/golang/go", "https://github.com/golang/go"},
		{"fragment dropped", "https://example.com/page#section", "https://example.com/page"},
		{"query kept", "https://example.com/search?q=Go", "https://example.com/search?q=Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalizeURL(tt.input)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCanonicalizeURL_Null(t *testing.T) {
	assert.Nil(t, CanonicalizeURL(nil))
	assert.Nil(t, CanonicalizeURL(""))
	assert.Nil(t, CanonicalizeURL("   "))
	assert.Nil(t, CanonicalizeURL("N/A"))
	assert.Nil(t, CanonicalizeURL("mailto:someone@example.com"))
	assert.Nil(t, CanonicalizeURL(12))
}

func TestCanonicalizeURL_Idempotent(t *testing.T) {
	first := CanonicalizeURL("HTTP://Example.com:80/Path/")
	require.NotNil(t, first)
	second := CanonicalizeURL(*first)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)
}
