package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hupe1980/agentcrew/core"
)

// InMemoryStore is a process-local core.MemoryStore. Entries live only as
// long as the process; it is the default store and the one tests use.
type InMemoryStore struct {
	mu      sync.Mutex
	nextID  int64
	entries []core.MemoryEntry
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{nextID: 1}
}

// Save implements core.MemoryStore.
func (s *InMemoryStore) Save(_ context.Context, content, category string, tags []string, sourceAgent string) (core.MemoryEntry, error) {
	if category == "" {
		category = "general"
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := core.MemoryEntry{
		ID:          s.nextID,
		Content:     content,
		Category:    category,
		Tags:        append([]string{}, tags...),
		SourceAgent: sourceAgent,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry, nil
}

// Recall implements core.MemoryStore. Matched entries get their access count
// bumped.
func (s *InMemoryStore) Recall(_ context.Context, query, category string, maxResults int) ([]core.MemoryEntry, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []core.MemoryEntry
	for _, e := range s.entries {
		if category != "" && e.Category != category {
			continue
		}
		candidates = append(candidates, e)
	}

	results := rank(candidates, query, maxResults)
	for _, r := range results {
		for i := range s.entries {
			if s.entries[i].ID == r.ID {
				s.entries[i].AccessCount++
			}
		}
	}
	return results, nil
}
