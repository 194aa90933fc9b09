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
	edgarSearchURL  = "https://efts.sec.gov/LATEST/search-index"
	edgarConfidence = 0.9
)

// EDGARAdapter runs SEC full-text search over filings. EDGAR rejects
// requests without a declared User-Agent, so one is required.
type EDGARAdapter struct {
	client    *http.Client
	userAgent string
}

func NewEDGARAdapter(client *http.Client, userAgent string) *EDGARAdapter {
	return &EDGARAdapter{client: client, userAgent: userAgent}
}

func (a *EDGARAdapter) Name() string { return NameEDGAR }

type edgarSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				CIKs         []string `json:"ciks"`
				DisplayNames []string `json:"display_names"`
				FileType     string   `json:"file_type"`
				FileDate     string   `json:"file_date"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (a *EDGARAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("q", `"`+query+`"`)

	headers := map[string]string{"User-Agent": a.userAgent}

	var resp edgarSearchResponse
	if err := getJSON(ctx, a.client, edgarSearchURL+"?"+params.Encode(), headers, &resp); err != nil {
		return nil, fmt.Errorf("edgar search: %w", err)
	}
	if len(resp.Hits.Hits) == 0 {
		return nil, nil
	}

	hit := resp.Hits.Hits[0]

	summary := ""
	if len(hit.Source.DisplayNames) > 0 {
		summary = hit.Source.DisplayNames[0]
	}
	if hit.Source.FileType != "" {
		if summary != "" {
			summary += " "
		}
		summary += "filed " + hit.Source.FileType
	}
	if hit.Source.FileDate != "" {
		summary += " on " + hit.Source.FileDate
	}
	if summary == "" {
		return nil, nil
	}

	var cik string
	if len(hit.Source.CIKs) > 0 {
		cik = hit.Source.CIKs[0]
	}

	return &domain.EvidenceRecord{
		SourceName: NameEDGAR,
		Summary:    truncate(summary, 500),
		URL:        filingURL(hit.ID, cik, query),
		Confidence: edgarConfidence,
	}, nil
}

// filingURL builds the archive link for an accession:document hit id,
// falling back to the search UI when the id is not in that shape.
func filingURL(id, cik, query string) string {
	accession, document, ok := strings.Cut(id, ":")
	if !ok || cik == "" {
		return "https://www.sec.gov/edgar/search/#/q=" + url.QueryEscape(query)
	}
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%s/%s/%s",
		strings.TrimLeft(cik, "0"),
		strings.ReplaceAll(accession, "-", ""),
		document)
}

var _ domain.SourceAdapter = (*EDGARAdapter)(nil)
