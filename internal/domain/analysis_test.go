package domain

import "testing"

func TestCredibilityForConfidence(t *testing.T) {
	tests := []struct {
		name string
		mean float32
		want Credibility
	}{
		{"high - 0.95", 0.95, CredibilityHigh},
		{"high boundary - 0.80", 0.80, CredibilityHigh},
		{"medium - 0.79", 0.79, CredibilityMedium},
		{"medium boundary - 0.60", 0.60, CredibilityMedium},
		{"low - 0.59", 0.59, CredibilityLow},
		{"low boundary - 0.30", 0.30, CredibilityLow},
		{"unknown - 0.29", 0.29, CredibilityUnknown},
		{"unknown - zero", 0, CredibilityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CredibilityForConfidence(tt.mean)
			if got != tt.want {
				t.Errorf("CredibilityForConfidence(%v) = %v, want %v", tt.mean, got, tt.want)
			}
		})
	}
}
