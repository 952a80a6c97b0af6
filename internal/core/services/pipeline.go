package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/shardcat/internal/core/catalog"
	"github.com/custodia-labs/shardcat/internal/core/domain"
	"github.com/custodia-labs/shardcat/internal/core/identity"
	"github.com/custodia-labs/shardcat/internal/core/merge"
	"github.com/custodia-labs/shardcat/internal/core/ports/driven"
	"github.com/custodia-labs/shardcat/internal/logger"
)

// Pipeline runs one full ingestion: adapt, cluster, merge, index.
// It holds no state between runs.
type Pipeline struct {
	registry    driven.AdapterRegistry
	parallelism int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithParallelism bounds how many shard families are adapted at once.
// Values below 1 mean one per CPU.
func WithParallelism(n int) PipelineOption {
	return func(p *Pipeline) {
		p.parallelism = n
	}
}

// NewPipeline creates an ingestion pipeline that selects adapters from registry.
func NewPipeline(registry driven.AdapterRegistry, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{registry: registry}
	for _, opt := range opts {
		opt(p)
	}
	if p.parallelism < 1 {
		p.parallelism = runtime.GOMAXPROCS(0)
	}
	return p
}

// Run ingests shards in priority order and returns the built index with
// its report. Malformed records are reported, never returned as errors.
func (p *Pipeline) Run(ctx context.Context, shards []domain.Shard) (*catalog.Index, *domain.IngestionReport, error) {
	report := &domain.IngestionReport{StartedAt: time.Now()}
	logger.Section("Ingestion")

	// Resolve every adapter before doing any work.
	adapters := make([]driven.ShardAdapter, len(shards))
	families := make([]string, len(shards))
	for i := range shards {
		a, err := p.registry.Select(shards[i].FamilyID)
		if err != nil {
			return nil, nil, err
		}
		adapters[i] = a
		families[i] = shards[i].FamilyID
	}

	results, err := p.adapt(ctx, shards, adapters)
	if err != nil {
		return nil, nil, err
	}

	var candidates []domain.Entity
	for i, res := range results {
		for j := range res.Entities {
			if len(res.Entities[j].SourceShards) == 0 {
				res.Entities[j].SourceShards = []string{shards[i].FamilyID}
			}
		}
		candidates = append(candidates, res.Entities...)
		report.ValidationErrors = append(report.ValidationErrors, res.Rejected...)
		report.Families = append(report.Families, domain.FamilyStats{
			FamilyID: shards[i].FamilyID,
			Adapter:  adapters[i].Name(),
			Priority: i,
			Records:  len(shards[i].Records),
			Accepted: len(res.Entities),
			Rejected: len(res.Rejected),
		})
		logger.Debug("Adapted %s with %s: %d accepted, %d rejected",
			shards[i].FamilyID, adapters[i].Name(), len(res.Entities), len(res.Rejected))
	}

	clusters, stats := identity.Cluster(candidates)
	logger.Debug("Clustered %d candidates into %d clusters (%d URL splits)",
		len(candidates), len(clusters), stats.Splits)

	entities, notes := merge.MergeAll(clusters, merge.NewPriority(families...))
	logger.Debug("Merged %d entities with %d conflicts", len(entities), len(notes))

	idx := catalog.Build(entities)

	report.Candidates = len(candidates)
	report.Clusters = len(clusters)
	report.URLSplits = stats.Splits
	report.Conflicts = notes
	report.Entities = idx.Len()
	report.Tokens = idx.Tokens()
	report.CompletedAt = time.Now()

	logger.L().Info("ingestion complete",
		zap.Int("shards", len(shards)),
		zap.Int("entities", report.Entities),
		zap.Int("skipped", report.Skipped()),
		zap.Int("conflicts", len(report.Conflicts)),
		zap.Int("tokens", report.Tokens),
		zap.Duration("took", report.Duration()))

	return idx, report, nil
}

// adapt runs adapters concurrently. Each shard writes only its own slot,
// so results keep shard order regardless of scheduling.
func (p *Pipeline) adapt(
	ctx context.Context, shards []domain.Shard, adapters []driven.ShardAdapter,
) ([]*domain.AdaptResult, error) {
	results := make([]*domain.AdaptResult, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism)
	for i := range shards {
		g.Go(func() error {
			res, err := adapters[i].Adapt(gctx, shards[i].FamilyID, shards[i].Records)
			if err != nil {
				return fmt.Errorf("adapt %s: %w", shards[i].FamilyID, err)
			}
			if res == nil {
				res = &domain.AdaptResult{}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
