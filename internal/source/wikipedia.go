package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	wikipediaSearchURL  = "https://en.wikipedia.org/w/api.php"
	wikipediaSummaryURL = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	wikipediaConfidence = 0.8
)

// WikipediaAdapter resolves a claim in two steps: full-text search for the
// best-matching article, then that article's REST summary.
type WikipediaAdapter struct {
	client *http.Client
}

func NewWikipediaAdapter(client *http.Client) *WikipediaAdapter {
	return &WikipediaAdapter{client: client}
}

func (a *WikipediaAdapter) Name() string { return NameWikipedia }

type wikipediaSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type wikipediaSummaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (a *WikipediaAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", "1")
	params.Set("format", "json")

	var search wikipediaSearchResponse
	if err := getJSON(ctx, a.client, wikipediaSearchURL+"?"+params.Encode(), nil, &search); err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}
	if len(search.Query.Search) == 0 {
		return nil, nil
	}

	title := search.Query.Search[0].Title

	var summary wikipediaSummaryResponse
	if err := getJSON(ctx, a.client, wikipediaSummaryURL+url.PathEscape(title), nil, &summary); err != nil {
		return nil, fmt.Errorf("wikipedia summary: %w", err)
	}
	if summary.Extract == "" {
		return nil, nil
	}

	pageURL := summary.ContentURLs.Desktop.Page
	if pageURL == "" {
		pageURL = "https://en.wikipedia.org/wiki/" + url.PathEscape(title)
	}

	return &domain.EvidenceRecord{
		SourceName: NameWikipedia,
		Summary:    truncate(summary.Extract, 500),
		URL:        pageURL,
		Confidence: wikipediaConfidence,
	}, nil
}

var _ domain.SourceAdapter = (*WikipediaAdapter)(nil)
