package tool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetcher_ExtractsReadableText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Chrome")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Test Page</title>
			<script>var hidden = true;</script>
			<style>body { color: red; }</style></head>
			<body><nav>menu items</nav><p>Real   article    text.</p><footer>footer junk</footer></body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher()
	result := f.Fetch(context.Background(), srv.URL, 8000)

	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "Test Page", result.Title)
	assert.Contains(t, result.Content, "Real article text.")
	assert.NotContains(t, result.Content, "hidden")
	assert.NotContains(t, result.Content, "color: red")
	assert.NotContains(t, result.Content, "menu items")
	assert.NotContains(t, result.Content, "footer junk")
}

func TestFetcher_Truncation(t *testing.T) {
	long := strings.Repeat("word ", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	result := f.Fetch(context.Background(), srv.URL, 100)

	assert.True(t, strings.HasSuffix(result.Content, "[... truncated]"))
	assert.Equal(t, len(result.Content), result.ContentLength)
}

func TestFetcher_CachesSuccessfulFetches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Cached</title></head><body><p>page body</p></body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	first := f.Fetch(context.Background(), srv.URL, 8000)
	second := f.Fetch(context.Background(), srv.URL, 8000)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first.Content, second.Content)

	// truncation is applied per call, after the cache read
	short := f.Fetch(context.Background(), srv.URL, 4)
	assert.Equal(t, int32(1), hits.Load())
	assert.True(t, strings.HasSuffix(short.Content, "[... truncated]"))
}

func TestFetcher_HTTPErrorNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher()
	result := f.Fetch(context.Background(), srv.URL, 8000)
	assert.Equal(t, http.StatusNotFound, result.Status)
	assert.Equal(t, "HTTP Error 404: Not Found", result.Content)

	f.Fetch(context.Background(), srv.URL, 8000)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	f := NewFetcher()
	result := f.Fetch(context.Background(), srv.URL, 8000)
	assert.Contains(t, result.Content, "Fetch error:")
}

func TestFormatFetchResult(t *testing.T) {
	out := FormatFetchResult(FetchResult{
		URL:     "https://x.example",
		Title:   "X",
		Content: "body text",
	})
	assert.Contains(t, out, "<web_page>")
	assert.Contains(t, out, "<url>https://x.example</url>")
	assert.Contains(t, out, "<title>X</title>")
	assert.Contains(t, out, "body text")
}

func TestCleanText(t *testing.T) {
	in := "a   b\t\tc\n\n\n\n\nd\n  e  "
	assert.Equal(t, "a b c\n\nd\ne", cleanText(in))
}
