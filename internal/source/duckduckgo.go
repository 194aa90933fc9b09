package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	duckDuckGoAPIURL = "https://api.duckduckgo.com/"

	// A direct instant answer is worth more than a topic abstract.
	duckDuckGoAnswerConfidence   = 0.7
	duckDuckGoAbstractConfidence = 0.6
)

// DuckDuckGoAdapter queries the Instant Answer API, preferring a direct
// answer over the topic abstract.
type DuckDuckGoAdapter struct {
	client *http.Client
}

func NewDuckDuckGoAdapter(client *http.Client) *DuckDuckGoAdapter {
	return &DuckDuckGoAdapter{client: client}
}

func (a *DuckDuckGoAdapter) Name() string { return NameDuckDuckGo }

type duckDuckGoResponse struct {
	Answer       string `json:"Answer"`
	AbstractText string `json:"AbstractText"`
	AbstractURL  string `json:"AbstractURL"`
	Heading      string `json:"Heading"`
}

func (a *DuckDuckGoAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	var resp duckDuckGoResponse
	if err := getJSON(ctx, a.client, duckDuckGoAPIURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("duckduckgo query: %w", err)
	}

	return instantAnswerEvidence(resp, query), nil
}

func instantAnswerEvidence(resp duckDuckGoResponse, query string) *domain.EvidenceRecord {
	refURL := resp.AbstractURL
	if refURL == "" {
		refURL = "https://duckduckgo.com/?q=" + url.QueryEscape(query)
	}

	if answer := strings.TrimSpace(resp.Answer); answer != "" {
		return &domain.EvidenceRecord{
			SourceName: NameDuckDuckGo,
			Summary:    truncate(answer, 500),
			URL:        refURL,
			Confidence: duckDuckGoAnswerConfidence,
		}
	}

	if abstract := strings.TrimSpace(resp.AbstractText); abstract != "" {
		return &domain.EvidenceRecord{
			SourceName: NameDuckDuckGo,
			Summary:    truncate(abstract, 500),
			URL:        refURL,
			Confidence: duckDuckGoAbstractConfidence,
		}
	}

	return nil
}
