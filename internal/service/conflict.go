package service

import (
	"fmt"
	"strings"

	"github.com/veracityhq/veracity/internal/domain"
)

// antonymPairs drives the pairwise summary scan. The matching is coarse by
// design and tolerates false positives on unrelated sentences.
var antonymPairs = [][2]string{
	{"won", "lost"},
	{"true", "false"},
	{"yes", "no"},
}

// AnalyzeConflicts inspects an evidence list for disagreement between
// sources. Explicit verdict labels are checked first; only when those agree
// does the pairwise antonym scan over summaries run.
func AnalyzeConflicts(evidence []domain.EvidenceRecord) domain.ConflictAnalysis {
	if len(evidence) < 2 {
		return domain.ConflictAnalysis{}
	}

	if opposingVerdictLabels(evidence) {
		return domain.ConflictAnalysis{
			HasConflicts: true,
			Explanation:  "Sources provide conflicting verdicts.",
		}
	}

	var pairs []string
	for i := 0; i < len(evidence); i++ {
		for j := i + 1; j < len(evidence); j++ {
			a := strings.ToLower(evidence[i].Summary)
			b := strings.ToLower(evidence[j].Summary)
			if summariesOppose(a, b) {
				pairs = append(pairs, fmt.Sprintf("%s vs %s", evidence[i].SourceName, evidence[j].SourceName))
			}
		}
	}
	if len(pairs) == 0 {
		return domain.ConflictAnalysis{}
	}
	return domain.ConflictAnalysis{
		HasConflicts: true,
		Explanation:  "Conflicting information between: " + strings.Join(pairs, ", "),
	}
}

// opposingVerdictLabels reports whether two different records carry a
// "true"-containing and a "false"-containing label. A single record whose
// label mentions both does not count as a conflict.
func opposingVerdictLabels(evidence []domain.EvidenceRecord) bool {
	var trueIdx, falseIdx []int
	for i, ev := range evidence {
		if ev.Verdict == "" {
			continue
		}
		label := strings.ToLower(ev.Verdict)
		if strings.Contains(label, "true") {
			trueIdx = append(trueIdx, i)
		}
		if strings.Contains(label, "false") {
			falseIdx = append(falseIdx, i)
		}
	}
	for _, ti := range trueIdx {
		for _, fi := range falseIdx {
			if ti != fi {
				return true
			}
		}
	}
	return false
}

func summariesOppose(a, b string) bool {
	for _, pair := range antonymPairs {
		if (strings.Contains(a, pair[0]) && strings.Contains(b, pair[1])) ||
			(strings.Contains(a, pair[1]) && strings.Contains(b, pair[0])) {
			return true
		}
	}
	return false
}
