package source

import (
	"context"
	"strings"

	"github.com/mmcdole/gofeed"
)

// minFeedMatches caps how many query words a feed item must contain; short
// queries only need to match every word they have.
const minFeedMatches = 2

// queryWords splits a query into lowercase words longer than 3 characters.
func queryWords(query string) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) > 3 {
			words = append(words, w)
		}
	}
	return words
}

// matchFeedItem returns the first item whose combined title and description
// contains at least min(minFeedMatches, len(words)) query words.
func matchFeedItem(items []*gofeed.Item, query string) *gofeed.Item {
	words := queryWords(query)
	if len(words) == 0 {
		return nil
	}

	needed := minFeedMatches
	if len(words) < needed {
		needed = len(words)
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		haystack := strings.ToLower(item.Title + " " + item.Description)
		matched := 0
		for _, w := range words {
			if strings.Contains(haystack, w) {
				matched++
			}
		}
		if matched >= needed {
			return item
		}
	}
	return nil
}

func fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	return gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
}

func feedSummary(item *gofeed.Item) string {
	summary := strings.TrimSpace(item.Title)
	if desc := strings.TrimSpace(item.Description); desc != "" {
		if summary != "" {
			summary += " - "
		}
		summary += desc
	}
	return truncate(summary, 500)
}
