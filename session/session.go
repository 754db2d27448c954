// Package session persists threads as opaque JSON documents. Three stores
// implement core.ThreadStore: an in-memory map, a JSON-file directory, and a
// Redis-backed store.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/agentcrew/core"
)

// threadInfo builds the listing entry for a thread: id, creation time,
// counters, and a preview taken from the first user message.
func threadInfo(t *core.Thread) core.ThreadInfo {
	info := core.ThreadInfo{
		ID:         t.ID,
		CreatedAt:  t.CreatedAt,
		TaskCount:  len(t.Tasks),
		EventCount: len(t.Events),
	}
	for _, ev := range t.Events {
		if ev.Kind == core.EventUserMessage {
			info.Preview = core.Truncate(ev.Content, 80)
			break
		}
	}
	return info
}

func encodeThread(t *core.Thread) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode thread %s: %w", t.ID, err)
	}
	return data, nil
}

func decodeThread(data []byte) (*core.Thread, error) {
	var t core.Thread
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode thread: %w", err)
	}
	if t.Metrics == nil {
		t.Metrics = map[core.Role]*core.AgentMetrics{}
	}
	return &t, nil
}
