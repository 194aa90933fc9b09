package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	pubmedSearchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedSummaryURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
	pubmedConfidence = 0.9
)

// PubMedAdapter resolves medical claims against the literature index in two
// steps: esearch for the best-matching article id, then its esummary.
type PubMedAdapter struct {
	client *http.Client
}

func NewPubMedAdapter(client *http.Client) *PubMedAdapter {
	return &PubMedAdapter{client: client}
}

func (a *PubMedAdapter) Name() string { return NamePubMed }

type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// esummary keys its result map by article id alongside an "uids" entry, so
// values decode lazily.
type pubmedSummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedArticle struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	PubDate string `json:"pubdate"`
}

func (a *PubMedAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmode", "json")
	params.Set("retmax", "1")

	var search pubmedSearchResponse
	if err := getJSON(ctx, a.client, pubmedSearchURL+"?"+params.Encode(), nil, &search); err != nil {
		return nil, fmt.Errorf("pubmed esearch: %w", err)
	}
	if len(search.ESearchResult.IDList) == 0 {
		return nil, nil
	}

	id := search.ESearchResult.IDList[0]

	params = url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", id)
	params.Set("retmode", "json")

	var summary pubmedSummaryResponse
	if err := getJSON(ctx, a.client, pubmedSummaryURL+"?"+params.Encode(), nil, &summary); err != nil {
		return nil, fmt.Errorf("pubmed esummary %s: %w", id, err)
	}

	raw, ok := summary.Result[id]
	if !ok {
		return nil, nil
	}
	var article pubmedArticle
	if err := json.Unmarshal(raw, &article); err != nil {
		return nil, fmt.Errorf("pubmed article %s: %w", id, err)
	}
	if article.Title == "" {
		return nil, nil
	}

	text := article.Title
	if article.Source != "" {
		text += " (" + article.Source
		if article.PubDate != "" {
			text += ", " + article.PubDate
		}
		text += ")"
	}

	return &domain.EvidenceRecord{
		SourceName: NamePubMed,
		Summary:    truncate(text, 500),
		URL:        "https://pubmed.ncbi.nlm.nih.gov/" + id + "/",
		Confidence: pubmedConfidence,
	}, nil
}
