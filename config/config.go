// Package config loads the crew configuration: per-role model settings, the
// search endpoint, and storage backends. Configuration comes from an
// optional YAML file merged over built-in defaults, with API keys taken from
// the environment.
package config

import (
	"fmt"
	"os"

	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/model"
	"github.com/hupe1980/agentcrew/model/anthropic"
	"github.com/hupe1980/agentcrew/model/openai"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the OpenAI-compatible endpoint used when none is set.
const DefaultBaseURL = "https://integrate.api.nvidia.com/v1"

// ModelConfig describes one role's model settings. Provider is "openai"
// (any OpenAI-compatible endpoint) or "anthropic". Extra is merged into the
// request body for provider-specific parameters.
type ModelConfig struct {
	Provider    string         `yaml:"provider"`
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	MaxTokens   int64          `yaml:"max_tokens"`
	Temperature float64        `yaml:"temperature"`
	TopP        float64        `yaml:"top_p"`
	Extra       map[string]any `yaml:"extra,omitempty"`
}

// StorageConfig selects the thread and memory backends.
type StorageConfig struct {
	// Threads is "file", "redis" or "memory".
	Threads string `yaml:"threads"`
	// ThreadsDir is the directory for the file backend.
	ThreadsDir string `yaml:"threads_dir"`
	// RedisAddr is the address for the redis backend.
	RedisAddr string `yaml:"redis_addr"`
	// MemoryDSN enables the SQL memory store when set; empty keeps memory
	// in-process.
	MemoryDSN string `yaml:"memory_dsn"`
}

// Config is the full crew configuration.
type Config struct {
	BaseURL    string                     `yaml:"base_url"`
	APIKey     string                     `yaml:"api_key"`
	SearxngURL string                     `yaml:"searxng_url"`
	Models     map[core.Role]*ModelConfig `yaml:"models"`
	Storage    StorageConfig              `yaml:"storage"`
	LogLevel   string                     `yaml:"log_level"`
}

// Default returns the built-in configuration: five NVIDIA-hosted models on
// the OpenAI-compatible endpoint, file-backed threads, in-process memory.
func Default() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		APIKey:     os.Getenv("NVIDIA_API_KEY"),
		SearxngURL: os.Getenv("SEARXNG_URL"),
		Models: map[core.Role]*ModelConfig{
			core.RoleOrchestrator: {
				Provider:    "openai",
				ID:          "qwen/qwen3-next-80b-a3b-instruct",
				Name:        "Qwen3 Next 80B",
				MaxTokens:   4096,
				Temperature: 0.6,
				TopP:        0.7,
			},
			core.RoleThinker: {
				Provider:    "openai",
				ID:          "minimaxai/minimax-m2.1",
				Name:        "MiniMax M2.1",
				MaxTokens:   4096,
				Temperature: 0.7,
				TopP:        0.95,
			},
			core.RoleSpeed: {
				Provider:    "openai",
				ID:          "stepfun-ai/step-3.5-flash",
				Name:        "Step 3.5 Flash",
				MaxTokens:   16384,
				Temperature: 1.0,
				TopP:        0.9,
			},
			core.RoleResearcher: {
				Provider:    "openai",
				ID:          "z-ai/glm4.7",
				Name:        "GLM 4.7",
				MaxTokens:   16384,
				Temperature: 1.0,
				TopP:        1.0,
				Extra: map[string]any{
					"chat_template_kwargs": map[string]any{
						"enable_thinking": false,
						"clear_thinking":  true,
					},
				},
			},
			core.RoleReasoner: {
				Provider:    "openai",
				ID:          "nvidia/nemotron-3-nano-30b-a3b",
				Name:        "Nemotron 3 Nano",
				MaxTokens:   16384,
				Temperature: 1.0,
				TopP:        1.0,
				Extra: map[string]any{
					"reasoning_budget": 8192,
					"chat_template_kwargs": map[string]any{
						"enable_thinking": true,
					},
				},
			},
		},
		Storage: StorageConfig{
			Threads:    "file",
			ThreadsDir: "data/threads",
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// BuildModels constructs one provider adapter per configured role.
func (c *Config) BuildModels() (map[core.Role]model.Model, error) {
	models := make(map[core.Role]model.Model, len(c.Models))
	for role, mc := range c.Models {
		switch mc.Provider {
		case "", "openai":
			models[role] = openai.NewModel(func(o *openai.Options) {
				o.Model = mc.ID
				o.MaxTokens = mc.MaxTokens
				o.Temperature = mc.Temperature
				o.TopP = mc.TopP
				o.BaseURL = c.BaseURL
				o.APIKey = c.APIKey
				o.Extra = mc.Extra
			})
		case "anthropic":
			models[role] = anthropic.NewModel(func(o *anthropic.Options) {
				o.Model = mc.ID
				o.MaxTokens = mc.MaxTokens
				o.Temperature = mc.Temperature
				o.TopP = mc.TopP
				o.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			})
		default:
			return nil, fmt.Errorf("unknown provider %q for role %s", mc.Provider, role)
		}
	}
	return models, nil
}
