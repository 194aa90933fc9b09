package webpage

import (
	"context"
	"fmt"
	"net/http"
	nurl "net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/veracityhq/veracity/internal/domain"
)

// maxTextChars bounds how much page text downstream analysis sees.
const maxTextChars = 5000

// Fetcher downloads a page and reduces it to title plus readable text.
// Unlike source adapters, fetch failures propagate: there is nothing to
// analyze without content.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*domain.WebpageContent, error) {
	parsed, err := nurl.ParseRequestURI(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) > maxTextChars {
		text = text[:maxTextChars]
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL
	}

	return &domain.WebpageContent{
		URL:         pageURL,
		Title:       title,
		TextContent: text,
	}, nil
}
