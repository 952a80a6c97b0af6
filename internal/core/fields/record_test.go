package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

func TestRecord_Lookup(t *testing.T) {
	r := NewRecord(domain.RawRecord{
		"desc":        "short",
		"description": "long form",
		"Website":     "https://example.com",
		"blank":       "   ",
		"nothing":     nil,
	})

	t.Run("first variant wins", func(t *testing.T) {
		assert.Equal(t, "short", r.String("desc", "description"))
		assert.Equal(t, "long form", r.String("description", "desc"))
	})

	t.Run("blank and nil are absent", func(t *testing.T) {
		assert.False(t, r.Has("blank", "nothing"))
		assert.Nil(t, r.StringPtr("blank"))
	})

	t.Run("case-insensitive fallback", func(t *testing.T) {
		assert.Equal(t, "https://example.com", r.String("url", "website"))
	})

	t.Run("missing", func(t *testing.T) {
		v, ok := r.Lookup("rating")
		assert.False(t, ok)
		assert.Nil(t, v)
	})
}

func TestRecord_List(t *testing.T) {
	r := NewRecord(domain.RawRecord{
		"tags":   []any{"meetings"},
		"topics": []any{"audio", "meetings"},
	})
	assert.Equal(t, []string{"meetings", "audio", "meetings"}, r.List("tags", "topics", "Tags"))
}

func TestRecord_Attributes(t *testing.T) {
	r := NewRecord(domain.RawRecord{
		"capital":  "Lisbon",
		"currency": "EUR",
		"visas":    []any{"D7", "Golden"},
	})

	attrs := r.Attributes([]string{"capital"}, []string{"currency", "money"}, []string{"visas"}, []string{"missing"})
	require.Len(t, attrs, 3)
	assert.Equal(t, "Lisbon", attrs["capital"])
	assert.Equal(t, "EUR", attrs["currency"])
	assert.Equal(t, "D7, Golden", attrs["visas"])

	assert.Nil(t, r.Attributes([]string{"missing"}))
}
