package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntity_ProvenanceOf(t *testing.T) {
	e := Entity{
		SourceShards:    []string{"tools", "ai-tools"},
		FieldProvenance: map[string]string{"url": "ai-tools", "category": ""},
	}

	assert.Equal(t, "ai-tools", e.ProvenanceOf("url"))
	assert.Equal(t, "tools", e.ProvenanceOf("category"))
	assert.Equal(t, "tools", e.ProvenanceOf("rating"))
	assert.Empty(t, (&Entity{}).ProvenanceOf("url"))
}

func TestEntity_HasURL(t *testing.T) {
	assert.False(t, (&Entity{}).HasURL())
	assert.False(t, (&Entity{URL: StringPtr("")}).HasURL())
	assert.True(t, (&Entity{URL: StringPtr("https://otter.ai")}).HasURL())
}

func TestStringPtrDeref(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", Deref(StringPtr("x")))
	assert.Empty(t, Deref(nil))
}

func TestEnumerations(t *testing.T) {
	assert.Equal(t, []EntityDomain{DomainCountry, DomainTool, DomainRepository, DomainResource}, AllDomains())
	assert.Contains(t, AllPricingTiers(), PricingUnknown)
	assert.Contains(t, AllDifficulties(), DifficultyUnknown)
	assert.Equal(t, FacetDomain, AllFacets()[0])
	assert.Len(t, AllFacets(), 6)
}

func TestQueryResult_Entities(t *testing.T) {
	r := &QueryResult{Hits: []Hit{
		{Entity: Entity{Name: "Otter"}, Score: 2},
		{Entity: Entity{Name: "Fireflies"}, Score: 1},
	}}

	names := []string{}
	for _, e := range r.Entities() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Otter", "Fireflies"}, names)
	assert.Empty(t, (&QueryResult{}).Entities())
}
