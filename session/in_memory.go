package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/agentcrew/core"
)

// InMemoryStore keeps threads in a process-local map, stored as encoded
// documents so loaded threads never alias live ones.
type InMemoryStore struct {
	mu      sync.RWMutex
	threads map[string][]byte
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{threads: map[string][]byte{}}
}

// Save implements core.ThreadStore.
func (s *InMemoryStore) Save(_ context.Context, t *core.Thread) error {
	data, err := encodeThread(t)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.threads[t.ID] = data
	s.mu.Unlock()
	return nil
}

// Load implements core.ThreadStore.
func (s *InMemoryStore) Load(_ context.Context, id string) (*core.Thread, error) {
	s.mu.RLock()
	data, ok := s.threads[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("thread %s not found", id)
	}
	return decodeThread(data)
}

// List implements core.ThreadStore. Threads are listed newest first.
func (s *InMemoryStore) List(_ context.Context, limit int) ([]core.ThreadInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]core.ThreadInfo, 0, len(s.threads))
	for _, data := range s.threads {
		t, err := decodeThread(data)
		if err != nil {
			return nil, err
		}
		infos = append(infos, threadInfo(t))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

// Delete implements core.ThreadStore. Deleting a missing thread is a no-op.
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.threads, id)
	s.mu.Unlock()
	return nil
}
