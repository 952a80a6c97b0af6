package shards

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/fields"
)

var testMapping = Mapping{
	Domain:      domain.DomainTool,
	Name:        []string{"name"},
	Category:    []string{"category"},
	Description: []string{"desc", "description"},
	URL:         []string{"url"},
	Tags:        []string{"tags", "topics"},
	Pricing:     []string{"pricing"},
	Rating:      []string{"rating"},
	Popularity:  []string{"users"},
	Featured:    []string{"featured"},
	Attributes:  [][]string{{"company"}},
}

func TestConvert_MapsVariants(t *testing.T) {
	records := []domain.RawRecord{{
		"name":        " Otter.ai ",
		"description": "Meeting transcription AI",
		"topics":      []any{"Meetings", "audio"},
		"tags":        "meetings",
		"url":         "HTTPS://Otter.AI/",
		"pricing":     "Free Trial",
		"rating":      "4.4",
		"users":       "83K+",
		"featured":    "yes",
		"company":     "AISense",
	}}

	res, err := Convert(context.Background(), "tools:phase-o", records, testMapping)
	require.NoError(t, err)
	require.Len(t, res.Entities, 1)
	assert.Empty(t, res.Rejected)

	e := res.Entities[0]
	assert.Equal(t, "Otter.ai", e.Name)
	assert.Equal(t, domain.DomainTool, e.Domain)
	assert.Equal(t, "otterai|tool", e.IdentityKey)
	assert.Equal(t, domain.DefaultCategory, e.Category)
	assert.Equal(t, "Meeting transcription AI", *e.Description)
	assert.Equal(t, "https://otter.ai", *e.URL)
	assert.Equal(t, []string{"audio", "meetings"}, e.Tags)
	assert.Equal(t, domain.PricingFreemium, e.PricingTier)
	assert.Equal(t, 4.4, *e.Rating)
	assert.Equal(t, int64(83000), *e.Popularity)
	assert.True(t, e.Featured)
	assert.Equal(t, map[string]string{"company": "AISense"}, e.Attributes)
	assert.Equal(t, []string{"tools:phase-o"}, e.SourceShards)
	assert.Equal(t, domain.DifficultyUnknown, e.Difficulty)
}

func TestConvert_SkipsInvalidRecords(t *testing.T) {
	records := []domain.RawRecord{
		{"name": "Good"},
		{"desc": "no name"},
		{"name": "   "},
		nil,
		{"name": "Also good"},
	}

	res, err := Convert(context.Background(), "A", records, testMapping)
	require.NoError(t, err)

	require.Len(t, res.Entities, 2)
	assert.Equal(t, "Good", res.Entities[0].Name)
	assert.Equal(t, "Also good", res.Entities[1].Name)

	require.Len(t, res.Rejected, 3)
	for i, pos := range []int{1, 2, 3} {
		assert.Equal(t, "A", res.Rejected[i].FamilyID)
		assert.Equal(t, pos, res.Rejected[i].Position)
		assert.Equal(t, "name", res.Rejected[i].Field)
	}
}

func TestConvert_DomainFromRecord(t *testing.T) {
	m := testMapping
	m.Domain = ""
	m.DomainFrom = []string{"domain"}

	records := []domain.RawRecord{
		{"name": "Canada", "domain": "Country"},
		{"name": "Pluto", "domain": "planet"},
		{"name": "Nowhere"},
	}

	res, err := Convert(context.Background(), "mixed", records, m)
	require.NoError(t, err)

	require.Len(t, res.Entities, 1)
	assert.Equal(t, domain.DomainCountry, res.Entities[0].Domain)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, "domain", res.Rejected[0].Field)
	assert.Equal(t, 1, res.Rejected[0].Position)
	assert.Equal(t, 2, res.Rejected[1].Position)
}

func TestConvert_DegradesMalformedValues(t *testing.T) {
	records := []domain.RawRecord{{
		"name":    "Broken",
		"rating":  "excellent",
		"users":   "N/A",
		"url":     "not a url",
		"pricing": map[string]any{"nested": true},
	}}

	res, err := Convert(context.Background(), "A", records, testMapping)
	require.NoError(t, err)
	require.Len(t, res.Entities, 1)

	e := res.Entities[0]
	assert.Nil(t, e.Rating)
	assert.Nil(t, e.Popularity)
	assert.Nil(t, e.URL)
	assert.Equal(t, domain.PricingUnknown, e.PricingTier)
}

func TestConvert_DoesNotMutateRecords(t *testing.T) {
	records := []domain.RawRecord{{"name": " Otter ", "tags": []any{"B", "a"}}}
	before := []domain.RawRecord{{"name": " Otter ", "tags": []any{"B", "a"}}}

	_, err := Convert(context.Background(), "A", records, testMapping)
	require.NoError(t, err)

	if diff := cmp.Diff(before, records); diff != "" {
		t.Errorf("records mutated (-before +after):\n%s", diff)
	}
}

func TestConvert_Finish(t *testing.T) {
	m := testMapping
	m.Finish = func(_ fields.Record, e *domain.Entity) {
		e.Category = "Patched"
	}

	res, err := Convert(context.Background(), "A", []domain.RawRecord{{"name": "X"}}, m)
	require.NoError(t, err)
	assert.Equal(t, "Patched", res.Entities[0].Category)
}

func TestConvert_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Convert(ctx, "A", []domain.RawRecord{{"name": "X"}}, testMapping)
	assert.ErrorIs(t, err, context.Canceled)
}
