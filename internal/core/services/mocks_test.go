package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
)

// mockAdapter maps records with only a "name" field to tool entities.
type mockAdapter struct {
	name     string
	families []string
	priority int
	err      error

	// started is closed on the first Adapt call when non-nil.
	started   chan struct{}
	startOnce sync.Once
	// release blocks Adapt until closed when non-nil.
	release chan struct{}

	calls atomic.Int32
}

func (m *mockAdapter) Name() string                { return m.name }
func (m *mockAdapter) SupportedFamilies() []string { return m.families }
func (m *mockAdapter) Priority() int               { return m.priority }

func (m *mockAdapter) Adapt(ctx context.Context, familyID string, records []domain.RawRecord) (*domain.AdaptResult, error) {
	m.calls.Add(1)
	if m.started != nil {
		m.startOnce.Do(func() { close(m.started) })
	}
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}

	res := &domain.AdaptResult{}
	for i, r := range records {
		name, _ := r["name"].(string)
		if name == "" {
			res.Rejected = append(res.Rejected, domain.ValidationError{
				FamilyID: familyID, Position: i, Field: "name", Reason: "missing",
			})
			continue
		}
		res.Entities = append(res.Entities, domain.Entity{
			Name:         name,
			Domain:       domain.DomainTool,
			Category:     domain.DefaultCategory,
			PricingTier:  domain.PricingUnknown,
			Difficulty:   domain.DifficultyUnknown,
			SourceShards: []string{familyID},
		})
	}
	return res, nil
}

// mockSource returns a fixed shard set.
type mockSource struct {
	name   string
	shards []domain.Shard
	err    error

	mu    sync.Mutex
	loads int
}

func (m *mockSource) Name() string { return m.name }

func (m *mockSource) Load(_ context.Context) ([]domain.Shard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.shards, nil
}

func (m *mockSource) Close() error { return nil }

func (m *mockSource) Loads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

// mockWatcher forwards events pushed by the test.
type mockWatcher struct {
	events chan driven.ChangeEvent
	err    error
}

func newMockWatcher() *mockWatcher {
	return &mockWatcher{events: make(chan driven.ChangeEvent)}
}

func (m *mockWatcher) Watch(ctx context.Context) (<-chan driven.ChangeEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(chan driven.ChangeEvent)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-m.events:
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (m *mockWatcher) Close() error { return nil }
