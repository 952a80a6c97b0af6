// Package identity groups pre-merge entities into identity clusters.
//
// The primary key is the normalised name plus domain. Records sharing a
// primary key are split apart again when their canonical URLs actively
// disagree: a name collision alone is not evidence of identity.
package identity

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/fields"
)

// keySeparator joins the parts of an identity key.
const keySeparator = "|"

// entityNamespace seeds the name-based UUIDs of catalog entities.
var entityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://shardcat.dev/entity"))

// NormalizeName lowercases, folds diacritics, strips punctuation and
// symbols, and collapses whitespace.
func NormalizeName(name string) string {
	folded := fields.Fold(name)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(stripped), " ")
}

// PrimaryKey returns normalize(name) + "|" + domain.
func PrimaryKey(name string, d domain.EntityDomain) string {
	return NormalizeName(name) + keySeparator + string(d)
}

// SplitKey extends a primary key with a canonical URL. It is used only
// when URLs split a primary key into several identities.
func SplitKey(primary, url string) string {
	return primary + keySeparator + url
}

// EntityID derives a stable entity identifier from an identity key.
func EntityID(key string) string {
	return uuid.NewSHA1(entityNamespace, []byte(key)).String()
}

// Stats describes one clustering pass.
type Stats struct {
	// PrimaryKeys is the number of distinct primary keys.
	PrimaryKeys int

	// Splits is the number of primary keys split by URL disagreement.
	Splits int
}

type group struct {
	key     string
	members []domain.Entity
}

// Cluster groups entities in a single deterministic pass. Clusters are
// returned in first-seen order and members keep stream order.
//
// Within a primary key, each distinct URL forms its own cluster. Members
// without a URL join the cluster of the first URL seen for that key, so
// "one side has a URL" never causes a split.
func Cluster(entities []domain.Entity) ([]domain.IdentityCluster, Stats) {
	groups := make(map[string]*group)
	order := make([]*group, 0)

	for i := range entities {
		key := PrimaryKey(entities[i].Name, entities[i].Domain)
		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			groups[key] = g
			order = append(order, g)
		}
		g.members = append(g.members, entities[i])
	}

	stats := Stats{PrimaryKeys: len(order)}
	clusters := make([]domain.IdentityCluster, 0, len(order))
	for _, g := range order {
		split := splitByURL(g)
		if len(split) > 1 {
			stats.Splits++
		}
		clusters = append(clusters, split...)
	}

	return clusters, stats
}

// splitByURL applies the URL-conflict rule to one primary-key group.
func splitByURL(g *group) []domain.IdentityCluster {
	var urls []string
	byURL := make(map[string]int)
	for i := range g.members {
		if !g.members[i].HasURL() {
			continue
		}
		u := *g.members[i].URL
		if _, ok := byURL[u]; !ok {
			byURL[u] = len(urls)
			urls = append(urls, u)
		}
	}

	if len(urls) <= 1 {
		return []domain.IdentityCluster{{Key: g.key, Members: g.members}}
	}

	clusters := make([]domain.IdentityCluster, len(urls))
	for i, u := range urls {
		clusters[i].Key = SplitKey(g.key, u)
	}
	for i := range g.members {
		slot := 0
		if g.members[i].HasURL() {
			slot = byURL[*g.members[i].URL]
		}
		clusters[slot].Members = append(clusters[slot].Members, g.members[i])
	}
	return clusters
}
