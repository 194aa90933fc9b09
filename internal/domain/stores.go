package domain

import (
	"context"
	"time"
)

type VerdictWithScore struct {
	Verdict
	Score float32 `json:"score"`
}

type VerdictStore interface {
	Insert(ctx context.Context, v *Verdict) error
	// FindByClaim returns the most recent verdict for the exact claim text.
	FindByClaim(ctx context.Context, claim string) (*Verdict, error)
	FindSimilar(ctx context.Context, embedding []float32, threshold float32, limit int) ([]VerdictWithScore, error)
	ListSince(ctx context.Context, since time.Time) ([]Verdict, error)
}

type AnalysisStore interface {
	Insert(ctx context.Context, a *WebpageAnalysis) error
	FindByURL(ctx context.Context, url string) (*WebpageAnalysis, error)
	ListSince(ctx context.Context, since time.Time) ([]WebpageAnalysis, error)
}

type DigestStore interface {
	Insert(ctx context.Context, d *DailyDigest) error
	FindByDate(ctx context.Context, date string) (*DailyDigest, error)
}

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type WebpageFetcher interface {
	Fetch(ctx context.Context, url string) (*WebpageContent, error)
}

// SourceAdapter queries one external knowledge source. Lookup returns
// (nil, nil) when the source has nothing relevant. Lookup errors are
// advisory: the collector logs them and moves on, so one failing source
// never fails a verification.
type SourceAdapter interface {
	Name() string
	Lookup(ctx context.Context, query string) (*EvidenceRecord, error)
}
