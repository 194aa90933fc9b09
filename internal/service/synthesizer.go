package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/veracityhq/veracity/internal/domain"
	"github.com/veracityhq/veracity/internal/source"
)

const (
	// Evidence raises confidence to at least this fraction of the mean
	// evidence weight.
	evidenceFloorFactor = 0.8
	// Detected conflicts dampen confidence, but never below conflictFloor.
	conflictDampingFactor = 0.7
	conflictFloor         = 0.3
	// A specialized source agreeing without conflict floors confidence here.
	specializedFloor = 0.85
	// An explicit fact-check rating without conflict floors it higher still.
	factCheckFloor = 0.9

	// Fallback confidences when the model reply cannot be used.
	malformedWithEvidenceConfidence = 0.6
	malformedBareConfidence         = 0.3
	failedWithEvidenceConfidence    = 0.4
)

const fallbackReasoning = "The language model did not return a readable verdict; the claim could not be assessed beyond the collected evidence."

// SynthesisInput carries everything one synthesis run consumes.
type SynthesisInput struct {
	Claim     string
	Context   string
	Tags      []domain.TopicTag
	Evidence  []domain.EvidenceRecord
	Conflicts domain.ConflictAnalysis
	Related   []domain.VerdictWithScore
}

// Synthesizer turns a claim, its evidence, and one generative-model call
// into a final verdict. It always produces a verdict: model failures and
// unreadable replies degrade confidence instead of propagating.
type Synthesizer struct {
	llm    domain.LLMClient
	logger *zap.Logger
}

func NewSynthesizer(llm domain.LLMClient, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{llm: llm, logger: logger}
}

func (s *Synthesizer) Synthesize(ctx context.Context, in SynthesisInput) *domain.Verdict {
	verdict := &domain.Verdict{
		Claim:    in.Claim,
		Tags:     in.Tags,
		Evidence: in.Evidence,
	}

	if s.llm == nil {
		verdict.Status = domain.VerdictUnverified
		verdict.Confidence = 0
		if len(in.Evidence) > 0 {
			verdict.Confidence = failedWithEvidenceConfidence
		}
		verdict.Sources = evidenceURLs(in.Evidence)
		verdict.Reasoning = "No language model is configured. Verdict is based on collected evidence only."
		return verdict
	}

	raw, err := s.llm.Generate(ctx, buildVerifyPrompt(in))
	if err != nil {
		s.logger.Warn("model call failed, returning degraded verdict",
			zap.String("claim", in.Claim),
			zap.Error(err))
		verdict.Status = domain.VerdictUnverified
		verdict.Confidence = 0
		if len(in.Evidence) > 0 {
			verdict.Confidence = failedWithEvidenceConfidence
		}
		verdict.Sources = evidenceURLs(in.Evidence)
		verdict.Reasoning = fmt.Sprintf("Language model call failed: %v. Verdict is based on collected evidence only.", err)
		return verdict
	}

	parsed, ok := parseModelVerdict(raw)
	if !ok {
		s.logger.Warn("model reply was not a readable verdict", zap.String("claim", in.Claim))
		verdict.Status = domain.VerdictUnverified
		verdict.Confidence = malformedBareConfidence
		if len(in.Evidence) > 0 {
			verdict.Confidence = malformedWithEvidenceConfidence
		}
		verdict.Sources = evidenceURLs(in.Evidence)
		verdict.Reasoning = strings.TrimSpace(raw)
		if verdict.Reasoning == "" {
			verdict.Reasoning = fallbackReasoning
		}
		return verdict
	}

	verdict.Status = domain.NormalizeVerdictStatus(parsed.Status)
	verdict.Confidence = float32(adjustConfidence(parsed.Confidence, in.Evidence, in.Conflicts))
	verdict.Sources = mergeSources(parsed.Sources, in.Evidence)
	verdict.Reasoning = strings.TrimSpace(parsed.Reasoning)
	if verdict.Reasoning == "" {
		verdict.Reasoning = fallbackReasoning
	}
	return verdict
}

func buildVerifyPrompt(in SynthesisInput) string {
	var b strings.Builder
	b.WriteString(verifyPromptIntro)
	b.WriteString("\n\nClaim: ")
	b.WriteString(in.Claim)
	b.WriteString("\n")

	if in.Context != "" {
		b.WriteString("\nContext: ")
		b.WriteString(in.Context)
		b.WriteString("\n")
	}

	if len(in.Evidence) > 0 {
		fmt.Fprintf(&b, "\nEvidence from %d sources:\n", len(in.Evidence))
		for i, ev := range in.Evidence {
			fmt.Fprintf(&b, "%d. %s: %s", i+1, ev.SourceName, ev.Summary)
			if ev.Verdict != "" {
				fmt.Fprintf(&b, " (rated: %s)", ev.Verdict)
			}
			fmt.Fprintf(&b, " [%s]\n", ev.URL)
		}
	} else {
		b.WriteString("\nNo external evidence was found. Rely on your own knowledge and say so in the reasoning.\n")
	}

	if in.Conflicts.HasConflicts {
		b.WriteString("\nWARNING: the sources disagree. ")
		b.WriteString(in.Conflicts.Explanation)
		b.WriteString(" Weigh source reliability carefully and prefer \"mixed\" when the disagreement is substantive.\n")
	}

	if len(in.Related) > 0 {
		b.WriteString("\nPreviously verified related claims:\n")
		for _, rv := range in.Related {
			fmt.Fprintf(&b, "- %q was rated %s (confidence %.2f)\n", rv.Claim, rv.Status, rv.Confidence)
		}
	}

	for _, tag := range in.Tags {
		if hint, ok := tagEmphasis[tag]; ok {
			b.WriteString("\n")
			b.WriteString(hint)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(verifyPromptFooter)
	return b.String()
}

type modelVerdict struct {
	Status     string   `json:"status"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
	Reasoning  string   `json:"reasoning"`
}

// parseModelVerdict extracts the structured payload from a model reply,
// tolerating markdown fences and surrounding prose. A reply without a status
// field counts as unreadable.
func parseModelVerdict(raw string) (*modelVerdict, bool) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var mv modelVerdict
	if err := json.Unmarshal([]byte(text), &mv); err == nil && mv.Status != "" {
		return &mv, true
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		mv = modelVerdict{}
		if err := json.Unmarshal([]byte(text[start:end+1]), &mv); err == nil && mv.Status != "" {
			return &mv, true
		}
	}
	return nil, false
}

// adjustConfidence applies the evidence floor, conflict damping, and the
// specialized and fact-check floors, in that order, then clamps to [0,1].
func adjustConfidence(confidence float64, evidence []domain.EvidenceRecord, conflicts domain.ConflictAnalysis) float64 {
	if len(evidence) > 0 {
		if floor := evidenceFloorFactor * meanEvidenceConfidence(evidence); confidence < floor {
			confidence = floor
		}
	}

	if conflicts.HasConflicts {
		confidence *= conflictDampingFactor
		if confidence < conflictFloor {
			confidence = conflictFloor
		}
	} else {
		if hasSpecializedEvidence(evidence) && confidence < specializedFloor {
			confidence = specializedFloor
		}
		if hasFactCheckRating(evidence) && confidence < factCheckFloor {
			confidence = factCheckFloor
		}
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

func meanEvidenceConfidence(evidence []domain.EvidenceRecord) float64 {
	if len(evidence) == 0 {
		return 0
	}
	var sum float64
	for _, ev := range evidence {
		sum += float64(ev.Confidence)
	}
	return sum / float64(len(evidence))
}

func hasSpecializedEvidence(evidence []domain.EvidenceRecord) bool {
	for _, ev := range evidence {
		if source.Specialized(ev.SourceName) {
			return true
		}
	}
	return false
}

func hasFactCheckRating(evidence []domain.EvidenceRecord) bool {
	for _, ev := range evidence {
		if ev.SourceName == source.NameFactCheck && ev.Verdict != "" {
			return true
		}
	}
	return false
}

// mergeSources keeps model-reported sources first, then unseen evidence
// URLs, dropping duplicates while preserving first-seen order.
func mergeSources(modelSources []string, evidence []domain.EvidenceRecord) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}
	for _, u := range modelSources {
		add(u)
	}
	for _, ev := range evidence {
		add(ev.URL)
	}
	return out
}

func evidenceURLs(evidence []domain.EvidenceRecord) []string {
	return mergeSources(nil, evidence)
}
