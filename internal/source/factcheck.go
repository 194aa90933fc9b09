package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	factCheckFeedURL    = "https://www.politifact.com/rss/factchecks/"
	factCheckConfidence = 0.9
)

// Longer labels come first so "mostly true" never reads as plain "true".
var factCheckRatings = []string{
	"pants on fire",
	"mostly true",
	"mostly false",
	"half true",
	"half-true",
	"true",
	"false",
}

// FactCheckAdapter scans the PolitiFact fact-check feed for an item covering
// the claim and carries the site's own rating through as an explicit verdict.
type FactCheckAdapter struct{}

func NewFactCheckAdapter() *FactCheckAdapter {
	return &FactCheckAdapter{}
}

func (a *FactCheckAdapter) Name() string { return NameFactCheck }

func (a *FactCheckAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	feed, err := fetchFeed(ctx, factCheckFeedURL)
	if err != nil {
		return nil, fmt.Errorf("politifact feed: %w", err)
	}

	item := matchFeedItem(feed.Items, query)
	if item == nil {
		return nil, nil
	}

	return &domain.EvidenceRecord{
		SourceName: NameFactCheck,
		Verdict:    extractRating(item.Title + " " + item.Description),
		Summary:    feedSummary(item),
		URL:        item.Link,
		Confidence: factCheckConfidence,
	}, nil
}

// extractRating pulls an explicit rating label out of fact-check item text,
// empty when the item carries none.
func extractRating(text string) string {
	lower := strings.ToLower(text)
	for _, rating := range factCheckRatings {
		if strings.Contains(lower, rating) {
			return rating
		}
	}
	return ""
}

var _ domain.SourceAdapter = (*FactCheckAdapter)(nil)
