package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/source"
)

func newMockRegistry() (*source.Registry, map[string]*source.MockAdapter) {
	names := []string{
		source.NameWikipedia, source.NameDuckDuckGo, source.NameFactCheck, source.NameWikidata,
		source.NamePandaScore, source.NameESPN, source.NameSportsDB, source.NamePubMed,
		source.NameWHO, source.NameEDGAR, source.NameArxiv,
	}
	mocks := make(map[string]*source.MockAdapter, len(names))
	for _, n := range names {
		mocks[n] = source.NewMockAdapter(n)
	}
	reg := &source.Registry{
		Encyclopedia:  mocks[source.NameWikipedia],
		InstantAnswer: mocks[source.NameDuckDuckGo],
		FactCheck:     mocks[source.NameFactCheck],
		KnowledgeBase: mocks[source.NameWikidata],
		Esports:       mocks[source.NamePandaScore],
		SportsNews:    mocks[source.NameESPN],
		SportsDB:      mocks[source.NameSportsDB],
		Medical:       mocks[source.NamePubMed],
		HealthAuth:    mocks[source.NameWHO],
		Financial:     mocks[source.NameEDGAR],
		Preprints:     mocks[source.NameArxiv],
	}
	return reg, mocks
}

func evidenceFor(name string) *domain.EvidenceRecord {
	return &domain.EvidenceRecord{
		SourceName: name,
		Summary:    "Summary from " + name,
		URL:        "https://example.org/" + name,
		Confidence: 0.8,
	}
}

func newTestCollector(reg *source.Registry) *Collector {
	return NewCollector(reg, time.Second, 4, zap.NewNop())
}

func TestCollector_PlanOrderAllTags(t *testing.T) {
	reg, mocks := newMockRegistry()
	for name, m := range mocks {
		m.Record = evidenceFor(name)
	}
	c := newTestCollector(reg)

	tags := []domain.TopicTag{
		domain.TagEsports, domain.TagSports, domain.TagMedical,
		domain.TagFinancial, domain.TagScientific,
	}
	got := c.Collect(context.Background(), "test claim", tags)

	wantOrder := []string{
		source.NameWikipedia, source.NameDuckDuckGo, source.NameFactCheck,
		source.NamePandaScore, source.NameESPN, source.NameSportsDB,
		source.NamePubMed, source.NameWHO, source.NameEDGAR, source.NameArxiv,
		source.NameWikidata,
	}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d records, got %d", len(wantOrder), len(got))
	}
	for i, want := range wantOrder {
		if got[i].SourceName != want {
			t.Errorf("record %d: got source %q, want %q", i, got[i].SourceName, want)
		}
	}
}

func TestCollector_GeneralSourcesOnlyWithoutTags(t *testing.T) {
	reg, mocks := newMockRegistry()
	for name, m := range mocks {
		m.Record = evidenceFor(name)
	}
	c := newTestCollector(reg)

	got := c.Collect(context.Background(), "a plain claim", nil)

	wantOrder := []string{
		source.NameWikipedia, source.NameDuckDuckGo, source.NameFactCheck, source.NameWikidata,
	}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d records, got %d", len(wantOrder), len(got))
	}
	for i, want := range wantOrder {
		if got[i].SourceName != want {
			t.Errorf("record %d: got source %q, want %q", i, got[i].SourceName, want)
		}
	}
	for _, name := range []string{source.NamePandaScore, source.NameESPN, source.NamePubMed} {
		if calls := mocks[name].LookupCalls(); len(calls) != 0 {
			t.Errorf("%s should not be queried without its tag, saw %d calls", name, len(calls))
		}
	}
}

func TestCollector_MedicalTagQueriesBothMedicalSources(t *testing.T) {
	reg, mocks := newMockRegistry()
	c := newTestCollector(reg)

	tags := []domain.TopicTag{domain.TagMedical, domain.TagFinancial}
	c.Collect(context.Background(), "vaccine trial results", tags)

	for _, name := range []string{source.NamePubMed, source.NameWHO} {
		calls := mocks[name].LookupCalls()
		if len(calls) != 1 {
			t.Fatalf("%s: expected 1 lookup, got %d", name, len(calls))
		}
		if calls[0] != "vaccine trial results" {
			t.Errorf("%s queried with %q", name, calls[0])
		}
	}
}

func TestCollector_AdapterErrorSkipped(t *testing.T) {
	reg, mocks := newMockRegistry()
	mocks[source.NameWikipedia].Err = errors.New("connection refused")
	mocks[source.NameDuckDuckGo].Record = evidenceFor(source.NameDuckDuckGo)
	mocks[source.NameFactCheck].Record = evidenceFor(source.NameFactCheck)
	mocks[source.NameWikidata].Record = evidenceFor(source.NameWikidata)
	c := newTestCollector(reg)

	got := c.Collect(context.Background(), "some claim", nil)

	wantOrder := []string{source.NameDuckDuckGo, source.NameFactCheck, source.NameWikidata}
	if len(got) != len(wantOrder) {
		t.Fatalf("expected %d records, got %d", len(wantOrder), len(got))
	}
	for i, want := range wantOrder {
		if got[i].SourceName != want {
			t.Errorf("record %d: got source %q, want %q", i, got[i].SourceName, want)
		}
	}
}

func TestCollector_NoMatchesYieldEmptyList(t *testing.T) {
	reg, mocks := newMockRegistry()
	mocks[source.NameWikipedia].Err = errors.New("timeout")
	c := newTestCollector(reg)

	got := c.Collect(context.Background(), "unknown claim", nil)
	if len(got) != 0 {
		t.Errorf("expected empty evidence, got %d records", len(got))
	}
}
