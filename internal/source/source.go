// Package source holds one adapter per external knowledge source. Adapters
// share a single contract: Lookup returns at most one normalized evidence
// record, (nil, nil) when the source has nothing relevant, and an error only
// as an advisory signal that the collector downgrades to no-match.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/veracityhq/veracity/internal/domain"
)

// Display names; these appear verbatim in EvidenceRecord.SourceName and in
// verdict source attributions.
const (
	NameWikipedia  = "Wikipedia"
	NameDuckDuckGo = "DuckDuckGo"
	NameFactCheck  = "PolitiFact"
	NameWikidata   = "Wikidata"
	NamePandaScore = "PandaScore"
	NameESPN       = "ESPN"
	NameSportsDB   = "TheSportsDB"
	NamePubMed     = "PubMed"
	NameWHO        = "WHO"
	NameEDGAR      = "SEC EDGAR"
	NameArxiv      = "arXiv"
)

// Specialized reports whether a source name belongs to a domain-specific
// adapter rather than one of the four general-purpose ones. The synthesizer
// floors confidence higher when specialized evidence agrees.
func Specialized(name string) bool {
	switch name {
	case NamePandaScore, NameESPN, NameSportsDB, NamePubMed, NameWHO, NameEDGAR, NameArxiv:
		return true
	}
	return false
}

// Registry bundles every adapter once so the collector can resolve its
// invocation plan at construction time. Fields are interfaces so tests can
// swap in mocks adapter by adapter.
type Registry struct {
	Encyclopedia  domain.SourceAdapter
	InstantAnswer domain.SourceAdapter
	FactCheck     domain.SourceAdapter
	KnowledgeBase domain.SourceAdapter
	Esports       domain.SourceAdapter
	SportsNews    domain.SourceAdapter
	SportsDB      domain.SourceAdapter
	Medical       domain.SourceAdapter
	HealthAuth    domain.SourceAdapter
	Financial     domain.SourceAdapter
	Preprints     domain.SourceAdapter
}

// NewRegistry wires all adapters against the real services. pandaToken may
// be empty, in which case the esports adapter reports no matches. edgarUA is
// the declared User-Agent EDGAR requires.
func NewRegistry(timeout time.Duration, pandaToken, edgarUA string) *Registry {
	client := &http.Client{Timeout: timeout}
	return &Registry{
		Encyclopedia:  NewWikipediaAdapter(client),
		InstantAnswer: NewDuckDuckGoAdapter(client),
		FactCheck:     NewFactCheckAdapter(),
		KnowledgeBase: NewWikidataAdapter(client),
		Esports:       NewPandaScoreAdapter(client, pandaToken),
		SportsNews:    NewSportsNewsAdapter(),
		SportsDB:      NewSportsDBAdapter(client),
		Medical:       NewPubMedAdapter(client),
		HealthAuth:    NewHealthAuthorityAdapter(),
		Financial:     NewEDGARAdapter(client, edgarUA),
		Preprints:     NewArxivAdapter(),
	}
}

// getJSON performs one GET and decodes the JSON body into dest.
func getJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// truncate bounds summaries pulled from source payloads.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
