package tool

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
)

const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	spaceRe   = regexp.MustCompile(`[ \t]+`)
	newlineRe = regexp.MustCompile(`\n{3,}`)
)

// FetchResult is the outcome of one page fetch. Errors are reported in
// Content so the model always receives renderable text.
type FetchResult struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        int    `json:"status"`
	ContentLength int    `json:"content_length"`
}

// Fetcher retrieves web pages and extracts readable text. Extracted pages
// are kept in a small LRU cache keyed by URL, before per-call truncation.
type Fetcher struct {
	client *http.Client
	cache  *lru.Cache[string, FetchResult]
}

// FetcherOptions configure a Fetcher.
type FetcherOptions struct {
	Timeout   time.Duration
	CacheSize int
	Client    *http.Client
}

// NewFetcher creates a Fetcher.
func NewFetcher(optFns ...func(o *FetcherOptions)) *Fetcher {
	opts := FetcherOptions{Timeout: 20 * time.Second, CacheSize: 64}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	cache, _ := lru.New[string, FetchResult](opts.CacheSize)
	return &Fetcher{client: client, cache: cache}
}

// Fetch retrieves a URL and returns cleaned page text truncated to maxChars.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, maxChars int) FetchResult {
	if maxChars <= 0 {
		maxChars = 8000
	}

	result, ok := f.cache.Get(rawURL)
	if !ok {
		result = f.fetch(ctx, rawURL)
		if result.Status >= 200 && result.Status < 300 {
			f.cache.Add(rawURL, result)
		}
	}

	if len(result.Content) > maxChars {
		result.Content = result.Content[:maxChars] + "\n\n[... truncated]"
	}
	result.ContentLength = len(result.Content)
	return result
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) FetchResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fetchError(rawURL, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return fetchError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return FetchResult{
			URL:     rawURL,
			Content: fmt.Sprintf("HTTP Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			Status:  resp.StatusCode,
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fetchError(rawURL, err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, nav, footer").Remove()
	text := cleanText(doc.Find("body").Text())
	if text == "" {
		text = cleanText(doc.Text())
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return FetchResult{
		URL:           finalURL,
		Title:         title,
		Content:       text,
		Status:        resp.StatusCode,
		ContentLength: len(text),
	}
}

func fetchError(rawURL string, err error) FetchResult {
	return FetchResult{URL: rawURL, Content: fmt.Sprintf("Fetch error: %v", err)}
}

func cleanText(s string) string {
	s = spaceRe.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = newlineRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// FormatFetchResult renders a fetched page for model context.
func FormatFetchResult(result FetchResult) string {
	return fmt.Sprintf("<web_page>\n  <url>%s</url>\n  <title>%s</title>\n  <content>\n%s\n  </content>\n</web_page>",
		result.URL, result.Title, result.Content)
}
