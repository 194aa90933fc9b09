package service

import "github.com/veracityhq/veracity/internal/domain"

const verifyPromptIntro = `You are a fact verification system. Assess the claim below using the evidence provided and your own knowledge.`

const verifyPromptFooter = `Respond ONLY with JSON, no markdown fences:
{"status":"true|false|mixed|unverified","confidence":0.0,"sources":["url"],"reasoning":"brief explanation"}

Rules:
- status "true" only when the evidence clearly supports the claim
- status "false" only when the evidence clearly refutes it
- status "mixed" when credible sources genuinely disagree
- status "unverified" when the evidence is insufficient either way
- confidence is your calibrated belief in the status, between 0.0 and 1.0`

// tagEmphasis adds one guidance line per matched topic so the model leans on
// the specialized source for that domain.
var tagEmphasis = map[domain.TopicTag]string{
	domain.TagEsports:    "Guidance: weight the PandaScore esports data highly for match and tournament results.",
	domain.TagSports:     "Guidance: weight TheSportsDB and ESPN entries highly for scores, fixtures and results.",
	domain.TagMedical:    "Guidance: weight PubMed literature and WHO guidance over general sources for health claims.",
	domain.TagFinancial:  "Guidance: weight SEC EDGAR filings highly for financial figures and corporate disclosures.",
	domain.TagScientific: "Guidance: weight arXiv preprints for scientific findings, noting they may not be peer reviewed.",
}

const claimExtractionPrompt = `Extract up to %d distinct, verifiable factual claims from this webpage text.%s

Each claim must be a single self-contained sentence that can be checked against external sources. Skip opinions, predictions, and vague statements.

Respond ONLY with a JSON array of strings, no markdown fences:
["claim one", "claim two"]

If no checkable claims are present, respond with an empty array: []

Text:
%s`

const pageSummaryPrompt = `Summarize this webpage in 2-3 sentences, noting how well its claims held up against verification.

Title: %s

Verification results:
%s

Respond with ONLY the summary text. No explanation, no formatting.`

const digestPrompt = `Write a short narrative digest of one day of fact-checking activity.

Date: %s
Claims verified: %d (%s)
Webpages analyzed: %d
Trending topics:
%s

Respond with ONLY the digest text, 2-4 sentences. No formatting.`
