package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/cache"
	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/store"
)

var ErrEmptyClaim = errors.New("claim is required")

const (
	// RelatedClaimThreshold is the minimum embedding similarity for a stored
	// verdict to be offered to the model as related context.
	RelatedClaimThreshold = 0.75
	// RelatedClaimLimit caps how many related verdicts enter the prompt.
	RelatedClaimLimit = 3
)

// VerifierService owns the claim verification pipeline: cache lookup,
// classification, evidence collection, conflict analysis, synthesis, and
// persistence. Verification is cache-first and idempotent per claim text.
type VerifierService struct {
	verdicts  domain.VerdictStore
	collector *Collector
	synth     *Synthesizer
	embedder  domain.EmbeddingClient
	cache     *cache.Cache
	logger    *zap.Logger
}

func NewVerifierService(vs domain.VerdictStore, collector *Collector, synth *Synthesizer, logger *zap.Logger) *VerifierService {
	return &VerifierService{
		verdicts:  vs,
		collector: collector,
		synth:     synth,
		logger:    logger,
	}
}

// SetEmbeddingClient enables related-claim recall. Without it verification
// still works; verdicts are just stored without vectors.
func (s *VerifierService) SetEmbeddingClient(ec domain.EmbeddingClient) {
	s.embedder = ec
}

func (s *VerifierService) SetCache(c *cache.Cache) {
	s.cache = c
}

// Verify returns the verdict for a claim, reusing a stored one when the
// exact claim text has been verified before. A fresh run always yields a
// verdict; only store failures surface as errors.
func (s *VerifierService) Verify(ctx context.Context, claim, claimContext string) (*domain.Verdict, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, ErrEmptyClaim
	}

	if v := s.cache.GetVerdict(ctx, claim); v != nil {
		return v, nil
	}
	cached, err := s.verdicts.FindByClaim(ctx, claim)
	if err == nil {
		s.cache.SetVerdict(ctx, cached)
		return cached, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	tags := Classify(claim)
	evidence := s.collector.Collect(ctx, claim, tags)
	conflicts := AnalyzeConflicts(evidence)

	var embedding []float32
	var related []domain.VerdictWithScore
	if s.embedder != nil {
		emb, err := s.embedder.Embed(ctx, claim)
		if err != nil {
			s.logger.Warn("claim embedding failed", zap.Error(err))
		} else {
			embedding = emb
			similar, err := s.verdicts.FindSimilar(ctx, embedding, RelatedClaimThreshold, RelatedClaimLimit)
			if err != nil {
				s.logger.Warn("related verdict lookup failed", zap.Error(err))
			} else {
				related = similar
			}
		}
	}

	verdict := s.synth.Synthesize(ctx, SynthesisInput{
		Claim:     claim,
		Context:   claimContext,
		Tags:      tags,
		Evidence:  evidence,
		Conflicts: conflicts,
		Related:   related,
	})
	verdict.Embedding = embedding

	if err := s.verdicts.Insert(ctx, verdict); err != nil {
		return nil, err
	}
	s.cache.SetVerdict(ctx, verdict)

	s.logger.Info("claim verified",
		zap.String("claim", claim),
		zap.String("status", string(verdict.Status)),
		zap.Float32("confidence", verdict.Confidence),
		zap.Int("evidence_count", len(evidence)),
		zap.Bool("conflicts", conflicts.HasConflicts))

	return verdict, nil
}
