package source

import (
	"context"
	"fmt"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	healthAuthorityFeedURL    = "https://www.who.int/rss-feeds/news-english.xml"
	healthAuthorityConfidence = 0.95
)

// HealthAuthorityAdapter scans the WHO news feed. It carries the highest
// per-source weight in the system.
type HealthAuthorityAdapter struct{}

func NewHealthAuthorityAdapter() *HealthAuthorityAdapter {
	return &HealthAuthorityAdapter{}
}

func (a *HealthAuthorityAdapter) Name() string { return NameWHO }

func (a *HealthAuthorityAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	feed, err := fetchFeed(ctx, healthAuthorityFeedURL)
	if err != nil {
		return nil, fmt.Errorf("who feed: %w", err)
	}

	item := matchFeedItem(feed.Items, query)
	if item == nil {
		return nil, nil
	}

	return &domain.EvidenceRecord{
		SourceName: NameWHO,
		Summary:    feedSummary(item),
		URL:        item.Link,
		Confidence: healthAuthorityConfidence,
	}, nil
}
