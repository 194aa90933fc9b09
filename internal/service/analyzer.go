package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/cache"
	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/store"
)

var (
	ErrEmptyURL    = errors.New("url is required")
	ErrFetchFailed = errors.New("webpage fetch failed")
)

// maxClaimsPerPage bounds how many claims one analysis verifies.
const maxClaimsPerPage = 5

// AnalyzerService verifies webpages: fetch, extract checkable claims, verify
// each through the claim pipeline, and grade the page's overall credibility.
// Analyses are cache-first and idempotent per URL.
type AnalyzerService struct {
	analyses domain.AnalysisStore
	fetcher  domain.WebpageFetcher
	verifier *VerifierService
	llm      domain.LLMClient
	cache    *cache.Cache
	logger   *zap.Logger
}

func NewAnalyzerService(as domain.AnalysisStore, fetcher domain.WebpageFetcher, verifier *VerifierService, lc domain.LLMClient, logger *zap.Logger) *AnalyzerService {
	return &AnalyzerService{
		analyses: as,
		fetcher:  fetcher,
		verifier: verifier,
		llm:      lc,
		logger:   logger,
	}
}

func (s *AnalyzerService) SetCache(c *cache.Cache) {
	s.cache = c
}

// AnalyzeWebpage returns the analysis for a URL, reusing a stored one when
// the URL was analyzed before. Unlike source lookups, a failed page fetch is
// fatal: there is nothing to analyze without content.
func (s *AnalyzerService) AnalyzeWebpage(ctx context.Context, url string, focusAreas []string) (*domain.WebpageAnalysis, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyURL
	}

	if a := s.cache.GetAnalysis(ctx, url); a != nil {
		return a, nil
	}
	cached, err := s.analyses.FindByURL(ctx, url)
	if err == nil {
		s.cache.SetAnalysis(ctx, cached)
		return cached, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	content, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	claims := s.extractClaims(ctx, content, focusAreas)

	verdicts := make([]domain.Verdict, 0, len(claims))
	for _, claim := range claims {
		v, err := s.verifier.Verify(ctx, claim, "")
		if err != nil {
			s.logger.Warn("claim verification failed during analysis",
				zap.String("url", url),
				zap.String("claim", claim),
				zap.Error(err))
			continue
		}
		verdicts = append(verdicts, *v)
	}

	analysis := &domain.WebpageAnalysis{
		URL:         url,
		Title:       content.Title,
		Summary:     s.summarize(ctx, content, verdicts),
		Claims:      claims,
		Verdicts:    verdicts,
		Credibility: domain.CredibilityForConfidence(meanVerdictConfidence(verdicts)),
	}
	if err := s.analyses.Insert(ctx, analysis); err != nil {
		return nil, err
	}
	s.cache.SetAnalysis(ctx, analysis)

	s.logger.Info("webpage analyzed",
		zap.String("url", url),
		zap.Int("claims", len(claims)),
		zap.String("credibility", string(analysis.Credibility)))

	return analysis, nil
}

// extractClaims asks the model for checkable claims and falls back to a
// sentence heuristic when the reply is unusable.
func (s *AnalyzerService) extractClaims(ctx context.Context, content *domain.WebpageContent, focusAreas []string) []string {
	if s.llm == nil {
		return fallbackClaims(content.TextContent)
	}

	focus := ""
	if len(focusAreas) > 0 {
		focus = " Focus on claims about: " + strings.Join(focusAreas, ", ") + "."
	}

	raw, err := s.llm.Generate(ctx, fmt.Sprintf(claimExtractionPrompt, maxClaimsPerPage, focus, content.TextContent))
	if err != nil {
		s.logger.Warn("claim extraction failed, using sentence heuristic", zap.Error(err))
		return fallbackClaims(content.TextContent)
	}
	claims, ok := parseClaimList(raw)
	if !ok {
		s.logger.Warn("claim extraction reply unreadable, using sentence heuristic")
		return fallbackClaims(content.TextContent)
	}
	if len(claims) > maxClaimsPerPage {
		claims = claims[:maxClaimsPerPage]
	}
	return claims
}

func (s *AnalyzerService) summarize(ctx context.Context, content *domain.WebpageContent, verdicts []domain.Verdict) string {
	if s.llm == nil {
		return fallbackPageSummary(verdicts)
	}

	var lines strings.Builder
	if len(verdicts) == 0 {
		lines.WriteString("No checkable claims were found.")
	}
	for i, v := range verdicts {
		fmt.Fprintf(&lines, "%d. %q -> %s (confidence %.2f)\n", i+1, v.Claim, v.Status, v.Confidence)
	}

	raw, err := s.llm.Generate(ctx, fmt.Sprintf(pageSummaryPrompt, content.Title, lines.String()))
	if err != nil || strings.TrimSpace(raw) == "" {
		if err != nil {
			s.logger.Warn("page summary failed, using fallback", zap.Error(err))
		}
		return fallbackPageSummary(verdicts)
	}
	return strings.TrimSpace(raw)
}

func fallbackPageSummary(verdicts []domain.Verdict) string {
	counts := make(map[domain.VerdictStatus]int)
	for _, v := range verdicts {
		counts[v.Status]++
	}
	return fmt.Sprintf("Checked %d claims: %d true, %d false, %d mixed, %d unverified.",
		len(verdicts),
		counts[domain.VerdictTrue],
		counts[domain.VerdictFalse],
		counts[domain.VerdictMixed],
		counts[domain.VerdictUnverified])
}

// parseClaimList reads a JSON string array out of a model reply, tolerating
// fences and prose. An empty array is a valid answer, not a failure.
func parseClaimList(raw string) ([]string, bool) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var claims []string
	if err := json.Unmarshal([]byte(text), &claims); err == nil {
		return cleanClaims(claims), true
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		claims = nil
		if err := json.Unmarshal([]byte(text[start:end+1]), &claims); err == nil {
			return cleanClaims(claims), true
		}
	}
	return nil, false
}

func cleanClaims(claims []string) []string {
	var out []string
	for _, c := range claims {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// fallbackClaims takes declarative-looking sentences from the page text when
// the model cannot produce a claim list.
func fallbackClaims(text string) []string {
	var claims []string
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || strings.ContainsAny(sentence, "?!") {
			continue
		}
		words := strings.Fields(sentence)
		if len(words) < 5 || len(words) > 40 {
			continue
		}
		claims = append(claims, sentence+".")
		if len(claims) == maxClaimsPerPage {
			break
		}
	}
	return claims
}

func meanVerdictConfidence(verdicts []domain.Verdict) float32 {
	if len(verdicts) == 0 {
		return 0
	}
	var sum float64
	for _, v := range verdicts {
		sum += float64(v.Confidence)
	}
	return float32(sum / float64(len(verdicts)))
}
