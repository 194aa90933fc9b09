package webpage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchExtractsTitleAndText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Solar Panel Efficiency Claims</title></head>
<body><article>
<p>A widely shared post claims new panels convert 90 percent of sunlight.</p>
<p>Researchers at the national laboratory said the record for this cell type is far lower.</p>
<p>The manufacturer has not published peer reviewed results supporting the figure.</p>
</article></body></html>`)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	content, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if content.Title != "Solar Panel Efficiency Claims" {
		t.Errorf("Title = %q", content.Title)
	}
	if !strings.Contains(content.TextContent, "90 percent of sunlight") {
		t.Errorf("TextContent missing body text: %q", content.TextContent)
	}
	if content.URL != srv.URL {
		t.Errorf("URL = %q, want %q", content.URL, srv.URL)
	}
}

func TestFetchTruncatesLongPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><head><title>Long</title></head><body><article><p>")
		fmt.Fprint(w, strings.Repeat("The committee reviewed the filing in detail. ", 300))
		fmt.Fprint(w, "</p></article></body></html>")
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	content, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(content.TextContent) > maxTextChars {
		t.Errorf("TextContent length = %d, want <= %d", len(content.TextContent), maxTextChars)
	}
	if !strings.HasPrefix(content.TextContent, "The committee reviewed") {
		t.Errorf("unexpected TextContent prefix: %.60q", content.TextContent)
	}
}

func TestFetchFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("Fetch() expected error on 404, got nil")
	}
}

func TestFetchRejectsInvalidURL(t *testing.T) {
	f := NewFetcher(5 * time.Second)
	if _, err := f.Fetch(context.Background(), "not a url"); err == nil {
		t.Fatal("Fetch() expected error for invalid url, got nil")
	}
}
