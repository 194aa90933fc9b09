package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/veracityhq/veracity/internal/domain"
)

const (
	// Key "3" is TheSportsDB's shared free tier.
	sportsDBSearchURL  = "https://www.thesportsdb.com/api/v1/json/3/searchevents.php"
	sportsDBConfidence = 0.8
)

// SportsDBAdapter looks up recorded sports events, including final scores
// when the event has finished.
type SportsDBAdapter struct {
	client *http.Client
}

func NewSportsDBAdapter(client *http.Client) *SportsDBAdapter {
	return &SportsDBAdapter{client: client}
}

func (a *SportsDBAdapter) Name() string { return NameSportsDB }

type sportsDBResponse struct {
	Event []struct {
		IDEvent      string `json:"idEvent"`
		StrEvent     string `json:"strEvent"`
		StrLeague    string `json:"strLeague"`
		DateEvent    string `json:"dateEvent"`
		StrHomeTeam  string `json:"strHomeTeam"`
		StrAwayTeam  string `json:"strAwayTeam"`
		IntHomeScore string `json:"intHomeScore"`
		IntAwayScore string `json:"intAwayScore"`
	} `json:"event"`
}

func (a *SportsDBAdapter) Lookup(ctx context.Context, query string) (*domain.EvidenceRecord, error) {
	params := url.Values{}
	params.Set("e", query)

	var resp sportsDBResponse
	if err := getJSON(ctx, a.client, sportsDBSearchURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("thesportsdb search: %w", err)
	}
	if len(resp.Event) == 0 {
		return nil, nil
	}

	e := resp.Event[0]
	summary := e.StrEvent
	if e.StrLeague != "" {
		summary += " (" + e.StrLeague
		if e.DateEvent != "" {
			summary += ", " + e.DateEvent
		}
		summary += ")"
	}
	if e.IntHomeScore != "" && e.IntAwayScore != "" {
		summary += fmt.Sprintf(", final score %s %s - %s %s",
			e.StrHomeTeam, e.IntHomeScore, e.IntAwayScore, e.StrAwayTeam)
	}

	return &domain.EvidenceRecord{
		SourceName: NameSportsDB,
		Summary:    truncate(summary, 500),
		URL:        "https://www.thesportsdb.com/event/" + e.IDEvent,
		Confidence: sportsDBConfidence,
	}, nil
}
