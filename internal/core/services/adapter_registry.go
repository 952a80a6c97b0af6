package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
)

// Ensure AdapterRegistry implements the interface.
var _ driven.AdapterRegistry = (*AdapterRegistry)(nil)

// AdapterRegistry dispatches shard families to adapters.
// Selection priority: family-specific (highest Priority) > fallback.
type AdapterRegistry struct {
	mu       sync.RWMutex
	adapters []driven.ShardAdapter
}

// NewAdapterRegistry creates a registry holding adapters.
func NewAdapterRegistry(adapters ...driven.ShardAdapter) *AdapterRegistry {
	r := &AdapterRegistry{}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds an adapter to the registry.
func (r *AdapterRegistry) Register(adapter driven.ShardAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.adapters = append(r.adapters, adapter)
	sort.SliceStable(r.adapters, func(i, j int) bool {
		return r.adapters[i].Priority() > r.adapters[j].Priority()
	})
}

// Select returns the highest-priority adapter supporting familyID.
func (r *AdapterRegistry) Select(familyID string) (driven.ShardAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var fallback driven.ShardAdapter
	for _, a := range r.adapters {
		families := a.SupportedFamilies()
		if len(families) == 0 {
			if fallback == nil {
				fallback = a
			}
			continue
		}
		for _, f := range families {
			if FamilyMatches(f, familyID) {
				return a, nil
			}
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownShardFamily, familyID)
}

// Adapters returns all registered adapters, highest priority first.
func (r *AdapterRegistry) Adapters() []driven.ShardAdapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]driven.ShardAdapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// FamilyMatches reports whether familyID belongs to the supported family.
// "tools" matches "tools", "tools:phase-a" and "tools/phase-a".
func FamilyMatches(supported, familyID string) bool {
	s := strings.ToLower(supported)
	f := strings.ToLower(familyID)
	if f == s {
		return true
	}
	return strings.HasPrefix(f, s+":") || strings.HasPrefix(f, s+"/")
}
