package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

func TestEnumKey(t *testing.T) {
	assert.Equal(t, "free trial", EnumKey("  Free-Trial "))
	assert.Equal(t, "all levels", EnumKey("ALL_levels"))
	assert.Equal(t, "", EnumKey("   "))
}

func TestCoerceEnum(t *testing.T) {
	allowed := []domain.PricingTier{domain.PricingFree, domain.PricingPaid}

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		assert.Equal(t, domain.PricingFree, CoerceEnum(" FREE ", allowed, nil, domain.PricingUnknown))
	})

	t.Run("alias resolves", func(t *testing.T) {
		aliases := map[string]domain.PricingTier{"no cost": domain.PricingFree}
		assert.Equal(t, domain.PricingFree, CoerceEnum("No-Cost", allowed, aliases, domain.PricingUnknown))
	})

	t.Run("unmatched returns fallback", func(t *testing.T) {
		assert.Equal(t, domain.PricingUnknown, CoerceEnum("barter", allowed, nil, domain.PricingUnknown))
	})

	t.Run("non-string returns fallback", func(t *testing.T) {
		assert.Equal(t, domain.PricingUnknown, CoerceEnum(42, allowed, nil, domain.PricingUnknown))
		assert.Equal(t, domain.PricingUnknown, CoerceEnum(nil, allowed, nil, domain.PricingUnknown))
	})
}

func TestCoercePricing(t *testing.T) {
	tests := []struct {
		input any
		want  domain.PricingTier
	}{
		{"Free", domain.PricingFree},
		{"Open Source", domain.PricingFree},
		{"freemium", domain.PricingFreemium},
		{"Free Trial", domain.PricingFreemium},
		{"Paid", domain.PricingPaid},
		{"subscription", domain.PricingPaid},
		{"Enterprise", domain.PricingEnterprise},
		{"contact sales", domain.PricingEnterprise},
		{true, domain.PricingFree},
		{false, domain.PricingPaid},
		{"$9/month", domain.PricingPaid},
		{"€9.99 per month", domain.PricingPaid},
		{"$0", domain.PricingFree},
		{0, domain.PricingFree},
		{49.0, domain.PricingPaid},
		{"-5", domain.PricingUnknown},
		{"call us", domain.PricingUnknown},
		{nil, domain.PricingUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CoercePricing(tt.input), "input %v", tt.input)
	}
}

func TestCoerceDifficulty(t *testing.T) {
	assert.Equal(t, domain.DifficultyBeginner, CoerceDifficulty("Easy"))
	assert.Equal(t, domain.DifficultyIntermediate, CoerceDifficulty("moderate"))
	assert.Equal(t, domain.DifficultyAdvanced, CoerceDifficulty("ADVANCED"))
	assert.Equal(t, domain.DifficultyUnknown, CoerceDifficulty("???"))
}

func TestCoerceDomain(t *testing.T) {
	assert.Equal(t, domain.DomainCountry, CoerceDomain("Country"))
	assert.Equal(t, domain.DomainRepository, CoerceDomain("repo"))
	assert.Equal(t, domain.DomainResource, CoerceDomain("course"))
	assert.Equal(t, domain.EntityDomain(""), CoerceDomain("planet"))
}
