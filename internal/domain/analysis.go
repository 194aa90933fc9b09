package domain

import (
	"time"

	"github.com/google/uuid"
)

type Credibility string

const (
	CredibilityHigh    Credibility = "high"
	CredibilityMedium  Credibility = "medium"
	CredibilityLow     Credibility = "low"
	CredibilityUnknown Credibility = "unknown"
)

// CredibilityForConfidence buckets the mean verdict confidence of a page.
func CredibilityForConfidence(mean float32) Credibility {
	switch {
	case mean >= 0.8:
		return CredibilityHigh
	case mean >= 0.6:
		return CredibilityMedium
	case mean >= 0.3:
		return CredibilityLow
	default:
		return CredibilityUnknown
	}
}

// WebpageContent is what the fetcher hands back: markup stripped, text
// truncated to the analysis window.
type WebpageContent struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	TextContent string `json:"text_content"`
}

type WebpageAnalysis struct {
	ID          uuid.UUID   `json:"id"`
	URL         string      `json:"url"`
	Title       string      `json:"title"`
	Summary     string      `json:"summary"`
	Claims      []string    `json:"claims"`
	Verdicts    []Verdict   `json:"verdicts"`
	Credibility Credibility `json:"credibility"`
	CreatedAt   time.Time   `json:"created_at"`
}
