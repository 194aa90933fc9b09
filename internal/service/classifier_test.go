package service

import (
	"reflect"
	"testing"

	"github.com/veracityhq/veracity/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		claim string
		want  []domain.TopicTag
	}{
		{
			name:  "esports claim",
			claim: "Team Spirit won The International Dota 2 tournament in 2021",
			want:  []domain.TopicTag{domain.TagEsports},
		},
		{
			name:  "sports claim",
			claim: "France won the World Cup final at a packed stadium",
			want:  []domain.TopicTag{domain.TagSports},
		},
		{
			name:  "medical claim case insensitive",
			claim: "COVID vaccines are SAFE",
			want:  []domain.TopicTag{domain.TagMedical},
		},
		{
			name:  "financial claim",
			claim: "Apple's quarterly revenue grew ten percent",
			want:  []domain.TopicTag{domain.TagFinancial},
		},
		{
			name:  "multiple tags keep declaration order",
			claim: "The new vaccine study reduced transmission",
			want:  []domain.TopicTag{domain.TagMedical, domain.TagScientific},
		},
		{
			name:  "esports and financial",
			claim: "Esports gaming revenue hit record highs",
			want:  []domain.TopicTag{domain.TagEsports, domain.TagFinancial},
		},
		{
			name:  "no keywords yields no tags",
			claim: "The sky is blue",
			want:  nil,
		},
		{
			name:  "empty claim",
			claim: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.claim)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify(%q) = %v, want %v", tt.claim, got, tt.want)
			}
		})
	}
}

func TestClassify_KeywordInsideWord(t *testing.T) {
	// Substring matching is deliberate: "vaccines" still matches "vaccine".
	got := Classify("New vaccines announced")
	if !reflect.DeepEqual(got, []domain.TopicTag{domain.TagMedical}) {
		t.Errorf("expected medical tag, got %v", got)
	}
}
