package fields

import (
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

// EnumKey normalises an enum candidate for comparison: lowercased, with
// runs of whitespace, '-' and '_' collapsed to a single space.
func EnumKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// CoerceEnum matches value against the allowed set case- and
// whitespace-insensitively. Aliases map additional spellings to a member
// of the set and may be nil. Unmatched input returns fallback.
func CoerceEnum[T ~string](value any, allowed []T, aliases map[string]T, fallback T) T {
	s, ok := value.(string)
	if !ok {
		return fallback
	}
	key := EnumKey(s)
	if key == "" {
		return fallback
	}
	for _, a := range allowed {
		if EnumKey(string(a)) == key {
			return a
		}
	}
	if alias, ok := aliases[key]; ok {
		return alias
	}
	return fallback
}

var pricingAliases = map[string]domain.PricingTier{
	"open source":   domain.PricingFree,
	"opensource":    domain.PricingFree,
	"free forever":  domain.PricingFree,
	"no cost":       domain.PricingFree,
	"free tier":     domain.PricingFreemium,
	"free trial":    domain.PricingFreemium,
	"free + paid":   domain.PricingFreemium,
	"free/paid":     domain.PricingFreemium,
	"freemium plan": domain.PricingFreemium,
	"paid only":     domain.PricingPaid,
	"subscription":  domain.PricingPaid,
	"premium":       domain.PricingPaid,
	"one time":      domain.PricingPaid,
	"custom":        domain.PricingEnterprise,
	"contact sales": domain.PricingEnterprise,
}

// CoercePricing maps authored pricing labels to a PricingTier.
// Booleans are accepted for "free: true" style fields, and prices such
// as 0 or "$49" map to Free or Paid.
func CoercePricing(v any) domain.PricingTier {
	switch x := v.(type) {
	case bool:
		if x {
			return domain.PricingFree
		}
		return domain.PricingPaid
	case int, int64, float64:
		return pricingFromAmount(Text(x))
	case string:
		if t := CoerceEnum(v, domain.AllPricingTiers(), pricingAliases, domain.PricingUnknown); t != domain.PricingUnknown {
			return t
		}
		return pricingFromAmount(x)
	}
	return domain.PricingUnknown
}

// pricingFromAmount classifies a price such as "0", "$49" or "€9.99/mo".
func pricingFromAmount(s string) domain.PricingTier {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£¥ ")
	if i := strings.IndexAny(s, "/ "); i >= 0 {
		s = s[:i]
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return domain.PricingUnknown
	}
	if amount == 0 {
		return domain.PricingFree
	}
	return domain.PricingPaid
}

var difficultyAliases = map[string]domain.Difficulty{
	"easy":         domain.DifficultyBeginner,
	"beginners":    domain.DifficultyBeginner,
	"basic":        domain.DifficultyBeginner,
	"introductory": domain.DifficultyBeginner,
	"all levels":   domain.DifficultyBeginner,
	"medium":       domain.DifficultyIntermediate,
	"moderate":     domain.DifficultyIntermediate,
	"hard":         domain.DifficultyAdvanced,
	"difficult":    domain.DifficultyAdvanced,
	"expert":       domain.DifficultyAdvanced,
	"very hard":    domain.DifficultyAdvanced,
}

// CoerceDifficulty maps authored level labels to a Difficulty.
func CoerceDifficulty(v any) domain.Difficulty {
	return CoerceEnum(v, domain.AllDifficulties(), difficultyAliases, domain.DifficultyUnknown)
}

var domainAliases = map[string]domain.EntityDomain{
	"countries":    domain.DomainCountry,
	"destination":  domain.DomainCountry,
	"tools":        domain.DomainTool,
	"ai tool":      domain.DomainTool,
	"app":          domain.DomainTool,
	"repo":         domain.DomainRepository,
	"repos":        domain.DomainRepository,
	"repositories": domain.DomainRepository,
	"project":      domain.DomainRepository,
	"resources":    domain.DomainResource,
	"course":       domain.DomainResource,
	"book":         domain.DomainResource,
	"tutorial":     domain.DomainResource,
}

// CoerceDomain maps authored family labels to an EntityDomain.
// The empty string is returned when nothing matches.
func CoerceDomain(v any) domain.EntityDomain {
	return CoerceEnum(v, domain.AllDomains(), domainAliases, "")
}
