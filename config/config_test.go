package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/agentcrew/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "file", cfg.Storage.Threads)
	assert.Equal(t, "info", cfg.LogLevel)

	require.Len(t, cfg.Models, 5)
	for _, role := range append(core.SpecialistRoles(), core.RoleOrchestrator) {
		mc, ok := cfg.Models[role]
		require.True(t, ok, role)
		assert.NotEmpty(t, mc.ID, role)
		assert.Greater(t, mc.MaxTokens, int64(0), role)
	}

	assert.Equal(t, "qwen/qwen3-next-80b-a3b-instruct", cfg.Models[core.RoleOrchestrator].ID)
	assert.NotNil(t, cfg.Models[core.RoleReasoner].Extra["reasoning_budget"])
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `base_url: http://localhost:8080/v1
log_level: debug
storage:
  threads: redis
  redis_addr: localhost:6379
models:
  speed:
    provider: openai
    id: my/local-model
    max_tokens: 2048
    temperature: 0.5
    top_p: 0.8
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v1", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Storage.Threads)
	assert.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)

	// the overridden role is replaced, the others keep their defaults
	assert.Equal(t, "my/local-model", cfg.Models[core.RoleSpeed].ID)
	assert.Equal(t, int64(2048), cfg.Models[core.RoleSpeed].MaxTokens)
	assert.Equal(t, "qwen/qwen3-next-80b-a3b-instruct", cfg.Models[core.RoleOrchestrator].ID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuildModels(t *testing.T) {
	cfg := Default()
	models, err := cfg.BuildModels()
	require.NoError(t, err)
	assert.Len(t, models, 5)

	cfg.Models[core.RoleSpeed].Provider = "anthropic"
	models, err = cfg.BuildModels()
	require.NoError(t, err)
	assert.NotNil(t, models[core.RoleSpeed])
}

func TestBuildModels_UnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Models[core.RoleSpeed].Provider = "cohere"

	_, err := cfg.BuildModels()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}
