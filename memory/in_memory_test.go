package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_SaveAndRecall(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	entry, err := s.Save(ctx, "use exponential backoff for flaky APIs", "solution", []string{"api", "retry"}, "thinker")
	require.NoError(t, err)
	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, "solution", entry.Category)

	_, err = s.Save(ctx, "user prefers concise answers", "preference", nil, "orchestrator")
	require.NoError(t, err)

	results, err := s.Recall(ctx, "flaky api backoff", "", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, entry.ID, results[0].ID)
}

func TestInMemoryStore_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, _ = s.Save(ctx, "backoff pattern for requests", "solution", nil, "")
	_, _ = s.Save(ctx, "backoff preference noted by user", "preference", nil, "")

	results, err := s.Recall(ctx, "backoff", "preference", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "preference", results[0].Category)
}

func TestInMemoryStore_DefaultCategory(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	entry, err := s.Save(ctx, "something", "", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "general", entry.Category)
}

func TestInMemoryStore_FullQueryBonusRanksFirst(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, _ = s.Save(ctx, "redis connection handling notes", "general", nil, "")
	exact, _ := s.Save(ctx, "redis connection pooling is the fix", "general", nil, "")

	results, err := s.Recall(ctx, "redis connection pooling", "", 5)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, exact.ID, results[0].ID)
}

func TestInMemoryStore_RecallBumpsAccessCount(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	_, _ = s.Save(ctx, "golang channels deadlock fix", "solution", nil, "")

	_, err := s.Recall(ctx, "golang channels", "", 5)
	require.NoError(t, err)

	results, err := s.Recall(ctx, "golang channels", "", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].AccessCount)
}

func TestInMemoryStore_MaxResults(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		_, _ = s.Save(ctx, "kubernetes deployment tips", "general", nil, "")
	}

	results, err := s.Recall(ctx, "kubernetes deployment", "", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFormatRecallResults(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	_, _ = s.Save(ctx, "remember this fact", "research", []string{"facts"}, "researcher")

	results, _ := s.Recall(ctx, "remember fact", "", 5)
	out := FormatRecallResults(results)
	assert.Contains(t, out, "Found 1 relevant memories:")
	assert.Contains(t, out, "[research] remember this fact")
	assert.Contains(t, out, "Tags: facts")
	assert.Contains(t, out, "Agent: researcher")

	assert.Equal(t, "No relevant memories found.", FormatRecallResults(nil))
}
