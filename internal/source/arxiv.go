package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	arxivAPIURL     = "http://export.arxiv.org/api/query"
	arxivConfidence = 0.8
)

// ArxivAdapter searches scientific preprints. The API answers in Atom, which
// the feed parser handles directly.
type ArxivAdapter struct{}

func NewArxivAdapter() *ArxivAdapter {
	return &ArxivAdapter{}
}

func (a *ArxivAdapter) Name() string { return NameArxiv }

func (a *ArxivAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", "1")

	feed, err := fetchFeed(ctx, arxivAPIURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("arxiv query: %w", err)
	}
	if len(feed.Items) == 0 {
		return nil, nil
	}

	item := feed.Items[0]
	title := strings.Join(strings.Fields(item.Title), " ")
	if title == "" {
		return nil, nil
	}

	summary := title
	if abstract := strings.Join(strings.Fields(item.Description), " "); abstract != "" {
		summary += " - " + abstract
	}

	return &domain.EvidenceRecord{
		SourceName: NameArxiv,
		Summary:    truncate(summary, 500),
		URL:        item.Link,
		Confidence: arxivConfidence,
	}, nil
}
