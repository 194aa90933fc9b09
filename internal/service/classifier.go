package service

import (
	"strings"

	"github.com/veracityhq/veracity/internal/domain"
)

// topicKeywords drives claim classification. Matching is case-insensitive
// substring containment, so every keyword stays lowercase. Slice order fixes
// the tag order on multi-topic claims.
var topicKeywords = []struct {
	tag      domain.TopicTag
	keywords []string
}{
	{domain.TagEsports, []string{"tournament", "cs:go", "dota", "league", "valorant", "esports", "gaming"}},
	{domain.TagSports, []string{"football", "soccer", "basketball", "tennis", "cricket", "olympic", "championship", "playoff", "stadium", "world cup"}},
	{domain.TagMedical, []string{"health", "vaccine", "covid", "disease", "medical", "medicine", "clinical", "treatment", "symptom", "virus", "cancer"}},
	{domain.TagFinancial, []string{"stock", "market", "revenue", "earnings", "profit", "shares", "investor", "dividend", "inflation", "crypto", "quarterly"}},
	{domain.TagScientific, []string{"study", "research", "scientist", "physics", "quantum", "climate", "experiment", "discovery", "genome", "species", "telescope"}},
}

// Classify inspects claim text for domain-indicating keywords and returns
// the matching topical tags. A claim may carry several tags or none; there
// is no failure mode.
func Classify(claim string) []domain.TopicTag {
	lower := strings.ToLower(claim)
	var tags []domain.TopicTag
	for _, topic := range topicKeywords {
		for _, kw := range topic.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, topic.tag)
				break
			}
		}
	}
	return tags
}

func hasTag(tags []domain.TopicTag, t domain.TopicTag) bool {
	for _, tag := range tags {
		if tag == t {
			return true
		}
	}
	return false
}
