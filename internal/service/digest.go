package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/cache"
	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/store"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

const maxTrendingTopics = 5

var timeNow = time.Now

// DigestService aggregates one day of verification activity into a stored
// digest. Digests are cache-first and idempotent per calendar day.
type DigestService struct {
	digests  domain.DigestStore
	verdicts domain.VerdictStore
	analyses domain.AnalysisStore
	llm      domain.LLMClient
	cache    *cache.Cache
	logger   *zap.Logger
}

func NewDigestService(ds domain.DigestStore, vs domain.VerdictStore, as domain.AnalysisStore, lc domain.LLMClient, logger *zap.Logger) *DigestService {
	return &DigestService{
		digests:  ds,
		verdicts: vs,
		analyses: as,
		llm:      lc,
		logger:   logger,
	}
}

func (s *DigestService) SetCache(c *cache.Cache) {
	s.cache = c
}

// GetDigest returns an already generated digest without creating one.
func (s *DigestService) GetDigest(ctx context.Context, date string) (*domain.DailyDigest, error) {
	if _, err := time.Parse(domain.DigestDateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if d := s.cache.GetDigest(ctx, date); d != nil {
		return d, nil
	}
	d, err := s.digests.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	s.cache.SetDigest(ctx, d)
	return d, nil
}

// GenerateDigest returns the digest for a calendar day (UTC, default
// today), reusing a stored one when the day was digested before.
func (s *DigestService) GenerateDigest(ctx context.Context, date string, includeTrending bool) (*domain.DailyDigest, error) {
	if date == "" {
		date = timeNow().UTC().Format(domain.DigestDateLayout)
	}
	dayStart, err := time.Parse(domain.DigestDateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	if d := s.cache.GetDigest(ctx, date); d != nil {
		return d, nil
	}
	cached, err := s.digests.FindByDate(ctx, date)
	if err == nil {
		s.cache.SetDigest(ctx, cached)
		return cached, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	verdicts, err := s.verdicts.ListSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}
	analyses, err := s.analyses.ListSince(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	// ListSince is open-ended; trim both lists to the target day.
	verdicts = verdictsWithin(verdicts, dayStart, dayEnd)
	analyses = analysesWithin(analyses, dayStart, dayEnd)

	var topics []domain.TrendingTopic
	if includeTrending {
		topics = trendingTopics(verdicts)
	}

	digest := &domain.DailyDigest{
		Date:    date,
		Topics:  topics,
		Summary: s.narrative(ctx, date, verdicts, analyses, topics),
	}
	if err := s.digests.Insert(ctx, digest); err != nil {
		return nil, err
	}
	s.cache.SetDigest(ctx, digest)

	s.logger.Info("daily digest generated",
		zap.String("date", date),
		zap.Int("verdicts", len(verdicts)),
		zap.Int("analyses", len(analyses)))

	return digest, nil
}

func verdictsWithin(verdicts []domain.Verdict, start, end time.Time) []domain.Verdict {
	var out []domain.Verdict
	for _, v := range verdicts {
		if !v.CreatedAt.Before(start) && v.CreatedAt.Before(end) {
			out = append(out, v)
		}
	}
	return out
}

func analysesWithin(analyses []domain.WebpageAnalysis, start, end time.Time) []domain.WebpageAnalysis {
	var out []domain.WebpageAnalysis
	for _, a := range analyses {
		if !a.CreatedAt.Before(start) && a.CreatedAt.Before(end) {
			out = append(out, a)
		}
	}
	return out
}

// trendingTopics ranks the day's topical tags by claim volume. Ties keep
// the classifier's tag order so output stays deterministic.
func trendingTopics(verdicts []domain.Verdict) []domain.TrendingTopic {
	counts := make(map[domain.TopicTag]int)
	statuses := make(map[domain.TopicTag]map[domain.VerdictStatus]int)
	for _, v := range verdicts {
		for _, tag := range v.Tags {
			counts[tag]++
			if statuses[tag] == nil {
				statuses[tag] = make(map[domain.VerdictStatus]int)
			}
			statuses[tag][v.Status]++
		}
	}

	ordered := make([]domain.TopicTag, 0, len(counts))
	for _, topic := range topicKeywords {
		if counts[topic.tag] > 0 {
			ordered = append(ordered, topic.tag)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})
	if len(ordered) > maxTrendingTopics {
		ordered = ordered[:maxTrendingTopics]
	}

	topics := make([]domain.TrendingTopic, 0, len(ordered))
	for _, tag := range ordered {
		topics = append(topics, domain.TrendingTopic{
			Topic:       string(tag),
			Description: fmt.Sprintf("%d claims checked (%s)", counts[tag], statusMix(statuses[tag])),
		})
	}
	return topics
}

func statusMix(byStatus map[domain.VerdictStatus]int) string {
	order := []domain.VerdictStatus{domain.VerdictTrue, domain.VerdictFalse, domain.VerdictMixed, domain.VerdictUnverified}
	var parts []string
	for _, status := range order {
		if n := byStatus[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, status))
		}
	}
	if len(parts) == 0 {
		return "no verdicts"
	}
	return strings.Join(parts, ", ")
}

func (s *DigestService) narrative(ctx context.Context, date string, verdicts []domain.Verdict, analyses []domain.WebpageAnalysis, topics []domain.TrendingTopic) string {
	mix := make(map[domain.VerdictStatus]int)
	for _, v := range verdicts {
		mix[v.Status]++
	}
	topicLines := "none"
	if len(topics) > 0 {
		var b strings.Builder
		for _, topic := range topics {
			fmt.Fprintf(&b, "- %s: %s\n", topic.Topic, topic.Description)
		}
		topicLines = strings.TrimSuffix(b.String(), "\n")
	}

	if s.llm == nil {
		return fmt.Sprintf("On %s, %d claims were verified (%s) and %d webpages were analyzed.",
			date, len(verdicts), statusMix(mix), len(analyses))
	}

	prompt := fmt.Sprintf(digestPrompt, date, len(verdicts), statusMix(mix), len(analyses), topicLines)
	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(raw) == "" {
		if err != nil {
			s.logger.Warn("digest narrative failed, using fallback", zap.Error(err))
		}
		return fmt.Sprintf("On %s, %d claims were verified (%s) and %d webpages were analyzed.",
			date, len(verdicts), statusMix(mix), len(analyses))
	}
	return strings.TrimSpace(raw)
}
