package core

import (
	"context"
	"time"
)

// Skill describes one named block of static instructional knowledge that can
// be injected into an agent's context to specialize its behavior.
type Skill struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Relevance   float64 `json:"relevance_score,omitempty"`
}

// SkillStore looks up skills by query or id. Implementations are read-only
// lookup tables; the pipeline engine and agents consume them through this
// interface.
type SkillStore interface {
	// Find returns up to maxResults skills ranked by relevance to query.
	Find(query string, maxResults int) []Skill

	// Knowledge returns the full instructional text for a skill id.
	Knowledge(id string) (string, bool)
}

// MemoryEntry is one stored piece of persistent agent memory.
type MemoryEntry struct {
	ID          int64     `json:"id"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	SourceAgent string    `json:"source_agent,omitempty"`
	AccessCount int       `json:"access_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// MemoryStore persists agent memories across threads and recalls them by
// keyword relevance. Category filtering is optional (empty string matches
// all categories).
type MemoryStore interface {
	Save(ctx context.Context, content, category string, tags []string, sourceAgent string) (MemoryEntry, error)
	Recall(ctx context.Context, query, category string, maxResults int) ([]MemoryEntry, error)
}

// ThreadInfo is a lightweight listing entry for persisted threads.
type ThreadInfo struct {
	ID         string    `json:"id"`
	Preview    string    `json:"preview"`
	CreatedAt  time.Time `json:"created_at"`
	TaskCount  int       `json:"task_count"`
	EventCount int       `json:"event_count"`
}

// ThreadStore persists threads as single opaque documents keyed by id. A
// loaded thread must be fully reconstructable with all its events, tasks and
// metrics intact.
type ThreadStore interface {
	Save(ctx context.Context, t *Thread) error
	Load(ctx context.Context, id string) (*Thread, error)
	List(ctx context.Context, limit int) ([]ThreadInfo, error)
	Delete(ctx context.Context, id string) error
}
