package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	wikidataAPIURL     = "https://www.wikidata.org/w/api.php"
	wikidataConfidence = 0.8
)

// WikidataAdapter queries the structured knowledge base in two steps: entity
// search, then the entity's labeled description.
type WikidataAdapter struct {
	client *http.Client
}

func NewWikidataAdapter(client *http.Client) *WikidataAdapter {
	return &WikidataAdapter{client: client}
}

func (a *WikidataAdapter) Name() string { return NameWikidata }

type wikidataSearchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
		ConceptURI  string `json:"concepturi"`
	} `json:"search"`
}

type wikidataEntityResponse struct {
	Entities map[string]struct {
		Descriptions map[string]struct {
			Value string `json:"value"`
		} `json:"descriptions"`
		Labels map[string]struct {
			Value string `json:"value"`
		} `json:"labels"`
	} `json:"entities"`
}

func (a *WikidataAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("limit", "1")
	params.Set("format", "json")

	var search wikidataSearchResponse
	if err := getJSON(ctx, a.client, wikidataAPIURL+"?"+params.Encode(), nil, &search); err != nil {
		return nil, fmt.Errorf("wikidata search: %w", err)
	}
	if len(search.Search) == 0 {
		return nil, nil
	}

	hit := search.Search[0]
	label := hit.Label
	description := hit.Description

	// Second step fills in the canonical label/description when the search
	// snippet was empty.
	params = url.Values{}
	params.Set("action", "wbgetentities")
	params.Set("ids", hit.ID)
	params.Set("languages", "en")
	params.Set("props", "labels|descriptions")
	params.Set("format", "json")

	var entity wikidataEntityResponse
	if err := getJSON(ctx, a.client, wikidataAPIURL+"?"+params.Encode(), nil, &entity); err != nil {
		return nil, fmt.Errorf("wikidata entity %s: %w", hit.ID, err)
	}
	if e, ok := entity.Entities[hit.ID]; ok {
		if l, ok := e.Labels["en"]; ok && l.Value != "" {
			label = l.Value
		}
		if d, ok := e.Descriptions["en"]; ok && d.Value != "" {
			description = d.Value
		}
	}

	if label == "" && description == "" {
		return nil, nil
	}

	summary := label
	if description != "" {
		if summary != "" {
			summary += ": "
		}
		summary += description
	}

	refURL := hit.ConceptURI
	if refURL == "" {
		refURL = "https://www.wikidata.org/wiki/" + hit.ID
	}

	return &domain.EvidenceRecord{
		SourceName: NameWikidata,
		Summary:    truncate(summary, 500),
		URL:        refURL,
		Confidence: wikidataConfidence,
	}, nil
}
