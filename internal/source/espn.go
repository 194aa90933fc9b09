package source

import (
	"context"
	"fmt"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	sportsNewsFeedURL    = "https://www.espn.com/espn/rss/news"
	sportsNewsConfidence = 0.75
)

// SportsNewsAdapter scans the ESPN headline feed.
type SportsNewsAdapter struct{}

func NewSportsNewsAdapter() *SportsNewsAdapter {
	return &SportsNewsAdapter{}
}

func (a *SportsNewsAdapter) Name() string { return NameESPN }

func (a *SportsNewsAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	feed, err := fetchFeed(ctx, sportsNewsFeedURL)
	if err != nil {
		return nil, fmt.Errorf("espn feed: %w", err)
	}

	item := matchFeedItem(feed.Items, query)
	if item == nil {
		return nil, nil
	}

	return &domain.EvidenceRecord{
		SourceName: NameESPN,
		Summary:    feedSummary(item),
		URL:        item.Link,
		Confidence: sportsNewsConfidence,
	}, nil
}
