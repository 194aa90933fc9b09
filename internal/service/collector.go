package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/source"
)

const (
	defaultSourceTimeout        = 10 * time.Second
	defaultCollectorConcurrency = 4
)

// Collector fans a claim out to source adapters and gathers the evidence
// they return. The invocation plan is fixed per tag set: general sources
// first, then tag-specific ones, with the knowledge base last. Downstream
// source dedup and display follow that order, so it is part of the contract.
type Collector struct {
	registry    *source.Registry
	timeout     time.Duration
	concurrency int
	logger      *zap.Logger
}

func NewCollector(registry *source.Registry, timeout time.Duration, concurrency int, logger *zap.Logger) *Collector {
	if timeout <= 0 {
		timeout = defaultSourceTimeout
	}
	if concurrency <= 0 {
		concurrency = defaultCollectorConcurrency
	}
	return &Collector{
		registry:    registry,
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger,
	}
}

func (c *Collector) plan(tags []domain.TopicTag) []domain.SourceAdapter {
	adapters := []domain.SourceAdapter{
		c.registry.Encyclopedia,
		c.registry.InstantAnswer,
		c.registry.FactCheck,
	}
	if hasTag(tags, domain.TagEsports) {
		adapters = append(adapters, c.registry.Esports)
	}
	if hasTag(tags, domain.TagSports) {
		adapters = append(adapters, c.registry.SportsNews, c.registry.SportsDB)
	}
	if hasTag(tags, domain.TagMedical) {
		adapters = append(adapters, c.registry.Medical, c.registry.HealthAuth)
	}
	if hasTag(tags, domain.TagFinancial) {
		adapters = append(adapters, c.registry.Financial)
	}
	if hasTag(tags, domain.TagScientific) {
		adapters = append(adapters, c.registry.Preprints)
	}
	return append(adapters, c.registry.KnowledgeBase)
}

// Collect queries every planned adapter and returns the evidence in plan
// order. Lookups run concurrently into indexed slots so the order survives.
// Adapter errors are advisory: they are logged and treated as no-match, and
// a collection never fails as a whole.
func (c *Collector) Collect(ctx context.Context, claim string, tags []domain.TopicTag) []domain.EvidenceRecord {
	adapters := c.plan(tags)
	slots := make([]*domain.EvidenceRecord, len(adapters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, adapter := range adapters {
		i, adapter := i, adapter
		g.Go(func() error {
			lctx, cancel := context.WithTimeout(gctx, c.timeout)
			defer cancel()

			record, err := adapter.Lookup(lctx, claim)
			if err != nil {
				c.logger.Debug("source lookup failed",
					zap.String("source", adapter.Name()),
					zap.Error(err))
				return nil
			}
			slots[i] = record
			return nil
		})
	}
	_ = g.Wait()

	evidence := make([]domain.EvidenceRecord, 0, len(adapters))
	for _, record := range slots {
		if record != nil {
			evidence = append(evidence, *record)
		}
	}
	if len(evidence) == 0 {
		c.logger.Warn("no sources returned evidence",
			zap.String("claim", claim),
			zap.Int("sources_tried", len(adapters)))
	}
	return evidence
}
