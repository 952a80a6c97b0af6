package countries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

func TestAdapter_Metadata(t *testing.T) {
	a := New()
	assert.Equal(t, "countries", a.Name())
	assert.Equal(t, []string{"countries"}, a.SupportedFamilies())
	assert.Equal(t, 90, a.Priority())
}

func TestAdapter_Adapt(t *testing.T) {
	records := []domain.RawRecord{
		{
			"country":               "Canada",
			"continent":             "North America",
			"overview":              "Points-based immigration.",
			"visaTypes":             []any{"Express Entry", "Study Permit"},
			"languages":             []any{"English", "French"},
			"immigrationDifficulty": "Moderate",
			"score":                 4.3,
			"capital":               "Ottawa",
			"featured":              true,
		},
		{"region": "Europe"},
	}

	res, err := New().Adapt(context.Background(), "countries", records)
	require.NoError(t, err)
	require.Len(t, res.Entities, 1)
	require.Len(t, res.Rejected, 1)

	e := res.Entities[0]
	assert.Equal(t, "Canada", e.Name)
	assert.Equal(t, domain.DomainCountry, e.Domain)
	assert.Equal(t, "North America", e.Category)
	assert.Equal(t, []string{"express entry", "study permit"}, e.Tags)
	assert.Equal(t, "English", *e.Language)
	assert.Equal(t, domain.DifficultyIntermediate, e.Difficulty)
	assert.Equal(t, domain.PricingUnknown, e.PricingTier)
	assert.Equal(t, 4.3, *e.Rating)
	assert.Equal(t, "Ottawa", e.Attributes["capital"])
	assert.True(t, e.Featured)
}
