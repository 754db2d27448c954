package core

import (
	"sync"
	"time"
)

// AgentMetrics accumulates per-role call counters for one Thread. Counters
// are never reset within a thread's lifetime; derived values (average
// latency, success rate) are computed, not stored.
type AgentMetrics struct {
	TotalCalls     int        `json:"total_calls"`
	TotalTokens    int        `json:"total_tokens"`
	TotalLatencyMS float64    `json:"total_latency_ms"`
	SuccessCount   int        `json:"success_count"`
	ErrorCount     int        `json:"error_count"`
	LastActive     *time.Time `json:"last_active,omitempty"`
}

// AvgLatencyMS returns the mean latency across all calls, or 0 before the
// first call.
func (m AgentMetrics) AvgLatencyMS() float64 {
	if m.TotalCalls == 0 {
		return 0
	}
	return m.TotalLatencyMS / float64(m.TotalCalls)
}

// SuccessRate returns successes over total outcomes, or 0 before the first
// outcome.
func (m AgentMetrics) SuccessRate() float64 {
	total := m.SuccessCount + m.ErrorCount
	if total == 0 {
		return 0
	}
	return float64(m.SuccessCount) / float64(total)
}

// Thread is the full durable state of one conversation: the append-only
// event log, the ordered task list, and cumulative per-agent metrics. One
// thread equals one session, owned by whichever process drives the
// conversation.
//
// A Thread is shared by concurrently running pipeline branches, so every
// mutation is serialized behind a single mutex. When branches run
// concurrently the append order of their events is not guaranteed to match
// sub-task declaration order; event timestamps are the only reliable order
// across branches.
type Thread struct {
	ID        string                 `json:"id"`
	Events    []Event                `json:"events"`
	Tasks     []*Task                `json:"tasks"`
	Metrics   map[Role]*AgentMetrics `json:"agent_metrics"`
	CreatedAt time.Time              `json:"created_at"`

	mu sync.RWMutex
}

// NewThread creates an empty thread. An empty id gets a generated one.
func NewThread(id string) *Thread {
	if id == "" {
		id = NewID()
	}
	return &Thread{
		ID:        id,
		Events:    []Event{},
		Tasks:     []*Task{},
		Metrics:   map[Role]*AgentMetrics{},
		CreatedAt: time.Now().UTC(),
	}
}

// AddEvent appends a new event to the log and returns it. This is the only
// way events enter a thread; the append is mutex-serialized so concurrent
// pipeline branches never interleave partial records.
func (t *Thread) AddEvent(kind EventKind, role Role, content string, metadata map[string]any) Event {
	ev := NewEvent(kind, role, content, metadata)
	t.mu.Lock()
	t.Events = append(t.Events, ev)
	t.mu.Unlock()
	return ev
}

// GetEvents returns a defensive copy of the full event log.
func (t *Thread) GetEvents() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	events := make([]Event, len(t.Events))
	copy(events, t.Events)
	return events
}

// LastEvent returns the most recent event, or a zero Event and false when
// the log is empty.
func (t *Thread) LastEvent() (Event, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.Events) == 0 {
		return Event{}, false
	}
	return t.Events[len(t.Events)-1], true
}

// RecentEvents returns a copy of up to max most recent events, optionally
// filtered to the given kinds. A nil kind set means no filtering. The window
// is taken before filtering, mirroring how context building caps its token
// budget.
func (t *Thread) RecentEvents(max int, kinds map[EventKind]bool) []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	start := 0
	if len(t.Events) > max {
		start = len(t.Events) - max
	}
	window := t.Events[start:]
	out := make([]Event, 0, len(window))
	for _, ev := range window {
		if kinds != nil && !kinds[ev.Kind] {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// AddTask appends a task to the thread. Tasks are never removed.
func (t *Thread) AddTask(task *Task) {
	t.mu.Lock()
	t.Tasks = append(t.Tasks, task)
	t.mu.Unlock()
}

// CurrentTask returns the most recently added task, or nil.
func (t *Thread) CurrentTask() *Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.Tasks) == 0 {
		return nil
	}
	return t.Tasks[len(t.Tasks)-1]
}

// UpdateMetrics records one agent call outcome. Called after every executor
// invocation, success or failure.
func (t *Thread) UpdateMetrics(role Role, tokens int, latencyMS float64, success bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.Metrics[role]
	if !ok {
		m = &AgentMetrics{}
		t.Metrics[role] = m
	}
	m.TotalCalls++
	m.TotalTokens += tokens
	m.TotalLatencyMS += latencyMS
	if success {
		m.SuccessCount++
	} else {
		m.ErrorCount++
	}
	now := time.Now().UTC()
	m.LastActive = &now
}

// MetricsFor returns a copy of the accumulated metrics for a role.
func (t *Thread) MetricsFor(role Role) AgentMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if m, ok := t.Metrics[role]; ok {
		return *m
	}
	return AgentMetrics{}
}
