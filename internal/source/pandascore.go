package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	pandaScoreMatchesURL = "https://api.pandascore.co/matches"
	pandaScoreConfidence = 0.85
)

// PandaScoreAdapter searches esports matches. Without an API token it
// reports no matches rather than failing.
type PandaScoreAdapter struct {
	client *http.Client
	token  string
}

func NewPandaScoreAdapter(client *http.Client, token string) *PandaScoreAdapter {
	return &PandaScoreAdapter{client: client, token: token}
}

func (a *PandaScoreAdapter) Name() string { return NamePandaScore }

type pandaScoreMatch struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	BeginAt string `json:"begin_at"`
	League  struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"league"`
	Videogame struct {
		Name string `json:"name"`
	} `json:"videogame"`
	Winner *struct {
		Name string `json:"name"`
	} `json:"winner"`
}

func (a *PandaScoreAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	if a.token == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("search[name]", query)
	params.Set("per_page", "1")

	headers := map[string]string{"Authorization": "Bearer " + a.token}

	var matches []pandaScoreMatch
	if err := getJSON(ctx, a.client, pandaScoreMatchesURL+"?"+params.Encode(), headers, &matches); err != nil {
		return nil, fmt.Errorf("pandascore search: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}

	m := matches[0]
	summary := m.Name
	if m.Videogame.Name != "" {
		summary += " (" + m.Videogame.Name + ")"
	}
	if m.League.Name != "" {
		summary += " in " + m.League.Name
	}
	if m.Status != "" {
		summary += ", status: " + m.Status
	}
	if m.Winner != nil && m.Winner.Name != "" {
		summary += ", winner: " + m.Winner.Name
	}

	refURL := m.League.URL
	if refURL == "" {
		refURL = "https://www.pandascore.co"
	}

	return &domain.EvidenceRecord{
		SourceName: NamePandaScore,
		Summary:    truncate(summary, 500),
		URL:        refURL,
		Confidence: pandaScoreConfidence,
	}, nil
}

var _ domain.SourceAdapter = (*PandaScoreAdapter)(nil)
