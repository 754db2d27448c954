// Package memory provides persistent agent memory stores: an in-memory
// implementation for tests and single-process use, and a SQL-backed one for
// durable storage. Recall ranks entries by keyword relevance with a recency
// bonus.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/agentcrew/core"
)

// scoreEntry ranks one memory entry against a query. Keyword hits count 2,
// a full-query substring match counts 5, tag overlap counts 2, and entries
// saved within the last day or week get a small recency bonus.
func scoreEntry(e core.MemoryEntry, query string, now time.Time) float64 {
	queryLower := strings.ToLower(query)
	contentLower := strings.ToLower(e.Content)

	score := 0.0
	for _, word := range queryWords(queryLower) {
		if strings.Contains(contentLower, word) {
			score += 2.0
		}
	}
	if strings.Contains(contentLower, queryLower) {
		score += 5.0
	}
	for _, tag := range e.Tags {
		tagLower := strings.ToLower(tag)
		if strings.Contains(queryLower, tagLower) || strings.Contains(tagLower, queryLower) {
			score += 2.0
		}
	}
	if score == 0 {
		return 0 // recency alone never makes an entry relevant
	}

	age := now.Sub(e.CreatedAt)
	switch {
	case age < 24*time.Hour:
		score += 2.0
	case age < 168*time.Hour:
		score += 1.0
	}
	return score
}

// queryWords splits a query into significant lowercase words. Words of two
// characters or fewer are dropped; if nothing survives the whole query is
// used as a single keyword.
func queryWords(queryLower string) []string {
	var words []string
	for _, w := range strings.Fields(queryLower) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		words = []string{queryLower}
	}
	return words
}

// rank sorts candidates by score (descending) and returns up to maxResults
// entries with a positive score.
func rank(candidates []core.MemoryEntry, query string, maxResults int) []core.MemoryEntry {
	now := time.Now().UTC()
	type scored struct {
		score float64
		entry core.MemoryEntry
	}
	var matches []scored
	for _, e := range candidates {
		if s := scoreEntry(e, query, now); s > 0 {
			matches = append(matches, scored{score: s, entry: e})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	out := make([]core.MemoryEntry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}

// FormatRecallResults renders recalled memories for model context.
func FormatRecallResults(results []core.MemoryEntry) string {
	if len(results) == 0 {
		return "No relevant memories found."
	}
	parts := []string{fmt.Sprintf("Found %d relevant memories:\n", len(results))}
	for i, mem := range results {
		tags := strings.Join(mem.Tags, ", ")
		if tags == "" {
			tags = "none"
		}
		agent := mem.SourceAgent
		if agent == "" {
			agent = "unknown"
		}
		parts = append(parts, fmt.Sprintf("%d. [%s] %s\n   Tags: %s | Agent: %s | Date: %s",
			i+1, mem.Category, core.Truncate(mem.Content, 300), tags, agent,
			mem.CreatedAt.UTC().Format("2006-01-02")))
	}
	return strings.Join(parts, "\n")
}
