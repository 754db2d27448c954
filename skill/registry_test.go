package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_FindRanksByRelevance(t *testing.T) {
	r := NewRegistry()

	skills := r.Find("debug this error in my code", 3)
	require.NotEmpty(t, skills)
	assert.Equal(t, "debugging", skills[0].ID)
	assert.Greater(t, skills[0].Relevance, 0.0)
	assert.LessOrEqual(t, len(skills), 3)
}

func TestRegistry_FindRespectsMaxResults(t *testing.T) {
	r := NewRegistry()

	skills := r.Find("analyze data and research the performance of the system architecture", 2)
	assert.Len(t, skills, 2)

	// zero falls back to the default of 3
	skills = r.Find("analyze data and research the performance of the system architecture", 0)
	assert.LessOrEqual(t, len(skills), 3)
}

func TestRegistry_FindNoMatch(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Find("xyzzy plugh", 3))
}

func TestRegistry_Knowledge(t *testing.T) {
	r := NewRegistry()

	knowledge, ok := r.Knowledge("deep-research")
	require.True(t, ok)
	assert.Contains(t, knowledge, "DEEP RESEARCH PROTOCOL")

	_, ok = r.Knowledge("nope")
	assert.False(t, ok)
}

func TestFormatFindResults(t *testing.T) {
	r := NewRegistry()

	out := FormatFindResults(r.Find("security vulnerability", 1))
	assert.Contains(t, out, "<available_skills>")
	assert.Contains(t, out, "[security-review]")
	assert.Contains(t, out, "Relevance:")

	assert.Equal(t, "<skills>\n  No matching skills found.\n</skills>", FormatFindResults(nil))
}

func TestFormatKnowledge(t *testing.T) {
	out := FormatKnowledge("debugging", "DEBUGGING PROTOCOL")
	assert.Equal(t, "<skill id=\"debugging\">\nDEBUGGING PROTOCOL\n</skill>", out)
}
