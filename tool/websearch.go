package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/agentcrew/core"
)

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher queries a SearXNG instance's JSON API.
type Searcher struct {
	baseURL string
	client  *http.Client
}

// SearcherOptions configure a Searcher.
type SearcherOptions struct {
	Timeout time.Duration
	Client  *http.Client
}

// NewSearcher creates a Searcher against the given SearXNG base URL.
func NewSearcher(baseURL string, optFns ...func(o *SearcherOptions)) *Searcher {
	opts := SearcherOptions{Timeout: 15 * time.Second}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Searcher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Search runs a query and returns up to maxResults hits. Failures come back
// as a single error result so the caller can always render something for the
// model.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) []SearchResult {
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("engines", "google,duckduckgo,brave")
	params.Set("language", "auto")
	params.Set("safesearch", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return errorResult(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errorResult(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorResult(fmt.Errorf("search returned status %d", resp.StatusCode))
	}

	var payload struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return errorResult(err)
	}

	var results []SearchResult
	for _, item := range payload.Results {
		if len(results) >= maxResults {
			break
		}
		results = append(results, SearchResult{
			Title:   item.Title,
			URL:     item.URL,
			Snippet: core.Truncate(item.Content, 500),
		})
	}
	return results
}

func errorResult(err error) []SearchResult {
	return []SearchResult{{Title: "Search Error", Snippet: err.Error()}}
}

// FormatSearchResults renders search hits for model context.
func FormatSearchResults(results []SearchResult) string {
	if len(results) == 0 {
		return "<search_results>\n  No results found.\n</search_results>"
	}
	var lines []string
	for i, r := range results {
		lines = append(lines, "  ["+strconv.Itoa(i+1)+"] "+r.Title)
		lines = append(lines, "      URL: "+r.URL)
		lines = append(lines, "      "+r.Snippet)
	}
	return "<search_results>\n" + strings.Join(lines, "\n") + "\n</search_results>"
}
