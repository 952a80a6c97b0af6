package shards

import (
	"context"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/fields"
	"github.com/custodia-labs/shardcat/internal/core/identity"
)

// Mapping lists, per canonical field, the source field names a shard
// family uses. Scalar fields take the first present variant; Tags
// unions every variant.
type Mapping struct {
	// Domain is used when DomainFrom is empty or yields no match.
	Domain domain.EntityDomain

	// DomainFrom names fields that carry the domain per record.
	DomainFrom []string

	Name        []string
	Category    []string
	Subcategory []string
	Description []string
	URL         []string
	Language    []string
	Tags        []string
	Pricing     []string
	Rating      []string
	Popularity  []string
	Difficulty  []string
	Featured    []string

	// Attributes are extra display fields, keyed by each group's first name.
	Attributes [][]string

	// Finish applies family-specific defaults after mapping.
	Finish func(r fields.Record, e *domain.Entity)
}

// Convert maps records in order. Records without a name or a resolvable
// domain are reported and skipped. records are never modified.
func Convert(ctx context.Context, familyID string, records []domain.RawRecord, m Mapping) (*domain.AdaptResult, error) {
	res := &domain.AdaptResult{Entities: make([]domain.Entity, 0, len(records))}

	for pos, raw := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r := fields.NewRecord(raw)
		name := r.String(m.Name...)
		if name == "" {
			res.Rejected = append(res.Rejected, domain.ValidationError{
				FamilyID: familyID,
				Position: pos,
				Field:    "name",
				Reason:   "missing or empty name",
			})
			continue
		}

		d := m.Domain
		if len(m.DomainFrom) > 0 {
			if v, ok := r.Lookup(m.DomainFrom...); ok {
				d = fields.CoerceDomain(v)
				if d == "" {
					res.Rejected = append(res.Rejected, domain.ValidationError{
						FamilyID: familyID,
						Position: pos,
						Field:    "domain",
						Reason:   "unrecognised domain " + fields.Text(v),
					})
					continue
				}
			}
		}
		if d == "" {
			res.Rejected = append(res.Rejected, domain.ValidationError{
				FamilyID: familyID,
				Position: pos,
				Field:    "domain",
				Reason:   "no domain",
			})
			continue
		}

		e := domain.Entity{
			IdentityKey:  identity.PrimaryKey(name, d),
			Domain:       d,
			Name:         name,
			Category:     r.String(m.Category...),
			Subcategory:  r.StringPtr(m.Subcategory...),
			Description:  r.StringPtr(m.Description...),
			URL:          fields.CanonicalizeURL(r.Value(m.URL...)),
			Language:     first(fields.Strings(r.Value(m.Language...))),
			Tags:         fields.UnionTags(r.List(m.Tags...)),
			PricingTier:  fields.CoercePricing(r.Value(m.Pricing...)),
			Rating:       fields.ParseRating(r.Value(m.Rating...)),
			Popularity:   fields.ParseMagnitude(r.Value(m.Popularity...)),
			Difficulty:   fields.CoerceDifficulty(r.Value(m.Difficulty...)),
			Featured:     fields.Bool(r.Value(m.Featured...)),
			Attributes:   r.Attributes(m.Attributes...),
			SourceShards: []string{familyID},
		}
		if e.Category == "" {
			e.Category = domain.DefaultCategory
		}
		if m.Finish != nil {
			m.Finish(r, &e)
		}

		res.Entities = append(res.Entities, e)
	}

	return res, nil
}

func first(values []string) *string {
	if len(values) == 0 {
		return nil
	}
	return domain.StringPtr(values[0])
}
