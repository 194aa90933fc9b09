package domain

import "testing"

func TestNormalizeVerdictStatus(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want VerdictStatus
	}{
		{"true passes through", "true", VerdictTrue},
		{"false passes through", "false", VerdictFalse},
		{"mixed passes through", "mixed", VerdictMixed},
		{"unverified passes through", "unverified", VerdictUnverified},
		{"uppercase normalized", "TRUE", VerdictTrue},
		{"whitespace trimmed", "  false  ", VerdictFalse},
		{"unknown label", "probably", VerdictUnverified},
		{"empty", "", VerdictUnverified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVerdictStatus(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeVerdictStatus(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
