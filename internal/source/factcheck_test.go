package source

import "testing"

func TestExtractRating(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain false", "FALSE: The moon landing was staged", "false"},
		{"plain true", "Claim about turnout rated True", "true"},
		{"mostly true beats true", "Rated Mostly True by reviewers", "mostly true"},
		{"mostly false beats false", "This one is Mostly False", "mostly false"},
		{"pants on fire", "Pants on Fire! No evidence at all", "pants on fire"},
		{"half true", "The senator's statement is Half True", "half true"},
		{"hyphenated half-true", "Rated Half-True on balance", "half-true"},
		{"no rating", "A report on the hearing schedule", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractRating(tt.text); got != tt.want {
				t.Errorf("extractRating(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
