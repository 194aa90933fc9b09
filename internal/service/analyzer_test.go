package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/store"
)

// mockAnalysisStore implements domain.AnalysisStore for testing.
type mockAnalysisStore struct {
	analyses  map[string]*domain.WebpageAnalysis
	insertErr error
}

func newMockAnalysisStore() *mockAnalysisStore {
	return &mockAnalysisStore{analyses: make(map[string]*domain.WebpageAnalysis)}
}

func (m *mockAnalysisStore) Insert(ctx context.Context, a *domain.WebpageAnalysis) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	a.ID = uuid.New()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	m.analyses[a.URL] = a
	return nil
}

func (m *mockAnalysisStore) FindByURL(ctx context.Context, url string) (*domain.WebpageAnalysis, error) {
	a, ok := m.analyses[url]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (m *mockAnalysisStore) ListSince(ctx context.Context, since time.Time) ([]domain.WebpageAnalysis, error) {
	var out []domain.WebpageAnalysis
	for _, a := range m.analyses {
		if !a.CreatedAt.Before(since) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type mockFetcher struct {
	content    *domain.WebpageContent
	err        error
	fetchCalls []string
}

func (f *mockFetcher) Fetch(ctx context.Context, url string) (*domain.WebpageContent, error) {
	f.fetchCalls = append(f.fetchCalls, url)
	if f.err != nil {
		return nil, f.err
	}
	content := *f.content
	content.URL = url
	return &content, nil
}

// scriptedLLM replays queued replies in order, repeating the last one.
type scriptedLLM struct {
	replies []string
	err     error
	calls   []string
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls = append(s.calls, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

func setupAnalyzerTest(lc domain.LLMClient) (*AnalyzerService, *mockAnalysisStore, *mockFetcher) {
	reg, _ := newMockRegistry()
	verifier := NewVerifierService(newMockVerdictStore(), newTestCollector(reg), NewSynthesizer(lc, zap.NewNop()), zap.NewNop())
	analyses := newMockAnalysisStore()
	fetcher := &mockFetcher{content: &domain.WebpageContent{Title: "Test Page", TextContent: "Some text."}}
	svc := NewAnalyzerService(analyses, fetcher, verifier, lc, zap.NewNop())
	return svc, analyses, fetcher
}

func TestAnalyzerService_EmptyURL(t *testing.T) {
	svc, _, _ := setupAnalyzerTest(&scriptedLLM{})

	if _, err := svc.AnalyzeWebpage(context.Background(), "  ", nil); err != ErrEmptyURL {
		t.Errorf("expected ErrEmptyURL, got %v", err)
	}
}

func TestAnalyzerService_CachedURLSkipsFetch(t *testing.T) {
	svc, analyses, fetcher := setupAnalyzerTest(&scriptedLLM{})

	stored := &domain.WebpageAnalysis{URL: "https://example.org/article", Title: "Stored"}
	if err := analyses.Insert(context.Background(), stored); err != nil {
		t.Fatal(err)
	}

	got, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/article", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.ID != stored.ID {
		t.Errorf("expected the stored analysis, got %s", got.ID)
	}
	if len(fetcher.fetchCalls) != 0 {
		t.Errorf("cached URL must not be fetched, saw %d fetches", len(fetcher.fetchCalls))
	}
}

func TestAnalyzerService_FetchFailureFatal(t *testing.T) {
	svc, _, fetcher := setupAnalyzerTest(&scriptedLLM{})
	fetcher.err = errors.New("status 404")

	_, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/missing", nil)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("expected ErrFetchFailed, got %v", err)
	}
}

func TestAnalyzerService_FullFlow(t *testing.T) {
	lc := &scriptedLLM{replies: []string{
		`["The Earth is round", "Water boils at 100C"]`,
		`{"status": "true", "confidence": 0.9, "sources": ["https://a"], "reasoning": "r1"}`,
		`{"status": "true", "confidence": 0.9, "sources": ["https://b"], "reasoning": "r2"}`,
		"Accurate page overall.",
	}}
	svc, analyses, fetcher := setupAnalyzerTest(lc)

	got, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/science", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if got.Title != "Test Page" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Claims) != 2 || got.Claims[0] != "The Earth is round" {
		t.Errorf("claims = %v", got.Claims)
	}
	if len(got.Verdicts) != 2 {
		t.Fatalf("expected 2 verdicts, got %d", len(got.Verdicts))
	}
	if got.Summary != "Accurate page overall." {
		t.Errorf("summary = %q", got.Summary)
	}
	if got.Credibility != domain.CredibilityHigh {
		t.Errorf("credibility = %s, want high", got.Credibility)
	}
	if len(analyses.analyses) != 1 {
		t.Errorf("expected the analysis to be stored")
	}
	if len(fetcher.fetchCalls) != 1 {
		t.Errorf("expected exactly one fetch, got %d", len(fetcher.fetchCalls))
	}
}

func TestAnalyzerService_MalformedExtractionFallsBack(t *testing.T) {
	lc := &scriptedLLM{replies: []string{"not json"}}
	svc, _, fetcher := setupAnalyzerTest(lc)
	fetcher.content.TextContent = "The quick brown fox jumps over the lazy dog. Is it true? Not a claim. The mitochondria is the powerhouse of the cell."

	got, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/fox", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{
		"The quick brown fox jumps over the lazy dog.",
		"The mitochondria is the powerhouse of the cell.",
	}
	if len(got.Claims) != len(want) {
		t.Fatalf("claims = %v, want %v", got.Claims, want)
	}
	for i := range want {
		if got.Claims[i] != want[i] {
			t.Errorf("claims[%d] = %q, want %q", i, got.Claims[i], want[i])
		}
	}
}

func TestAnalyzerService_EmptyClaimArrayIsValid(t *testing.T) {
	lc := &scriptedLLM{replies: []string{"[]", "No claims found on this page."}}
	svc, _, _ := setupAnalyzerTest(lc)

	got, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/opinion", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Claims) != 0 {
		t.Errorf("claims = %v, want none", got.Claims)
	}
	if got.Credibility != domain.CredibilityUnknown {
		t.Errorf("credibility = %s, want unknown", got.Credibility)
	}
	if got.Summary != "No claims found on this page." {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestAnalyzerService_ClaimCountCapped(t *testing.T) {
	lc := &scriptedLLM{replies: []string{
		`["c1 claim", "c2 claim", "c3 claim", "c4 claim", "c5 claim", "c6 claim", "c7 claim"]`,
		`{"status": "unverified", "confidence": 0.4, "sources": [], "reasoning": "r"}`,
	}}
	svc, _, _ := setupAnalyzerTest(lc)

	got, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/listicle", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got.Claims) != maxClaimsPerPage {
		t.Errorf("claims capped at %d, got %d", maxClaimsPerPage, len(got.Claims))
	}
	if len(got.Verdicts) != maxClaimsPerPage {
		t.Errorf("verdicts = %d, want %d", len(got.Verdicts), maxClaimsPerPage)
	}
}

func TestAnalyzerService_FocusAreasSteerPrompt(t *testing.T) {
	lc := &scriptedLLM{replies: []string{"[]", "s"}}
	svc, _, _ := setupAnalyzerTest(lc)

	if _, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/health", []string{"health", "finance"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(lc.calls) == 0 || !strings.Contains(lc.calls[0], "Focus on claims about: health, finance.") {
		t.Error("extraction prompt should carry the focus areas")
	}
}

func TestAnalyzerService_InsertFailurePropagates(t *testing.T) {
	svc, analyses, _ := setupAnalyzerTest(&scriptedLLM{replies: []string{"[]", "s"}})
	analyses.insertErr = errors.New("disk full")

	if _, err := svc.AnalyzeWebpage(context.Background(), "https://example.org/x", nil); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected the insert failure, got %v", err)
	}
}
