package source

import (
	"reflect"
	"testing"

	"github.com/mmcdole/gofeed"
)

func TestQueryWords(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"drops short words", "is the moon made of cheese", []string{"moon", "made", "cheese"}},
		{"lowercases", "COVID Vaccine Causes Magnetism", []string{"covid", "vaccine", "causes", "magnetism"}},
		{"all short", "is it so", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queryWords(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("queryWords(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestMatchFeedItem(t *testing.T) {
	items := []*gofeed.Item{
		{Title: "Markets rally on rate cut hopes", Description: "Stocks climbed on Friday"},
		{Title: "Vaccine rollout reaches rural areas", Description: "Health workers expand COVID vaccine coverage"},
		{Title: "Championship final set for Sunday", Description: "The league title decider"},
	}

	t.Run("accepts first item with two word matches", func(t *testing.T) {
		got := matchFeedItem(items, "covid vaccine misinformation")
		if got == nil || got.Title != "Vaccine rollout reaches rural areas" {
			t.Fatalf("matchFeedItem = %+v, want the vaccine item", got)
		}
	})

	t.Run("single usable word only needs one match", func(t *testing.T) {
		got := matchFeedItem(items, "the championship")
		if got == nil || got.Title != "Championship final set for Sunday" {
			t.Fatalf("matchFeedItem = %+v, want the championship item", got)
		}
	})

	t.Run("one of two words is not enough", func(t *testing.T) {
		if got := matchFeedItem(items, "vaccine skeptics"); got != nil {
			t.Fatalf("matchFeedItem = %+v, want nil", got)
		}
	})

	t.Run("match is case-insensitive across title and description", func(t *testing.T) {
		got := matchFeedItem(items, "RATE CUT stocks")
		if got == nil || got.Title != "Markets rally on rate cut hopes" {
			t.Fatalf("matchFeedItem = %+v, want the markets item", got)
		}
	})

	t.Run("no usable words", func(t *testing.T) {
		if got := matchFeedItem(items, "is it so"); got != nil {
			t.Fatalf("matchFeedItem = %+v, want nil", got)
		}
	})

	t.Run("first matching item wins", func(t *testing.T) {
		dup := []*gofeed.Item{
			{Title: "Vaccine study published", Description: "covid research"},
			{Title: "Vaccine recall issued", Description: "covid alert"},
		}
		got := matchFeedItem(dup, "covid vaccine")
		if got == nil || got.Title != "Vaccine study published" {
			t.Fatalf("matchFeedItem = %+v, want the first item", got)
		}
	})
}

func TestFeedSummary(t *testing.T) {
	item := &gofeed.Item{Title: "Headline", Description: "Body text"}
	if got := feedSummary(item); got != "Headline - Body text" {
		t.Errorf("feedSummary = %q", got)
	}

	titleOnly := &gofeed.Item{Title: "Just a headline"}
	if got := feedSummary(titleOnly); got != "Just a headline" {
		t.Errorf("feedSummary = %q", got)
	}
}
