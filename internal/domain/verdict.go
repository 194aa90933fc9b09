package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type VerdictStatus string

const (
	VerdictTrue       VerdictStatus = "true"
	VerdictFalse      VerdictStatus = "false"
	VerdictMixed      VerdictStatus = "mixed"
	VerdictUnverified VerdictStatus = "unverified"
)

func ValidVerdictStatus(s string) bool {
	switch VerdictStatus(s) {
	case VerdictTrue, VerdictFalse, VerdictMixed, VerdictUnverified:
		return true
	}
	return false
}

// NormalizeVerdictStatus maps free-form model output onto the closed status
// set. Anything unrecognized becomes unverified.
func NormalizeVerdictStatus(s string) VerdictStatus {
	s = strings.ToLower(strings.TrimSpace(s))
	if ValidVerdictStatus(s) {
		return VerdictStatus(s)
	}
	return VerdictUnverified
}

type TopicTag string

const (
	TagEsports    TopicTag = "esports"
	TagSports     TopicTag = "sports"
	TagMedical    TopicTag = "medical"
	TagFinancial  TopicTag = "financial"
	TagScientific TopicTag = "scientific"
)

func ValidTopicTag(t string) bool {
	switch TopicTag(t) {
	case TagEsports, TagSports, TagMedical, TagFinancial, TagScientific:
		return true
	}
	return false
}

// EvidenceRecord is the normalized output of one source adapter for one
// query. Verdict is only set when the source itself rates the claim (e.g. a
// fact-check feed item); Confidence is the source-intrinsic weight.
type EvidenceRecord struct {
	SourceName string  `json:"source_name"`
	Verdict    string  `json:"verdict,omitempty"`
	Summary    string  `json:"summary"`
	URL        string  `json:"url"`
	Confidence float32 `json:"confidence"`
}

type ConflictAnalysis struct {
	HasConflicts bool   `json:"has_conflicts"`
	Explanation  string `json:"explanation,omitempty"`
}

type Verdict struct {
	ID         uuid.UUID        `json:"id"`
	Claim      string           `json:"claim"`
	Status     VerdictStatus    `json:"status"`
	Confidence float32          `json:"confidence"`
	Sources    []string         `json:"sources"`
	Reasoning  string           `json:"reasoning"`
	Tags       []TopicTag       `json:"tags,omitempty"`
	Evidence   []EvidenceRecord `json:"evidence,omitempty"`
	Embedding  []float32        `json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
}
