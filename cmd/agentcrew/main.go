// Command agentcrew runs the multi-agent crew from the terminal: an
// interactive chat against the orchestrator plus thread management
// subcommands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/agentcrew"
	"github.com/hupe1980/agentcrew/config"
	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/logging"
	"github.com/hupe1980/agentcrew/memory"
	"github.com/hupe1980/agentcrew/session"
	"github.com/hupe1980/agentcrew/tool"
	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "agentcrew",
		Short:         "Multi-agent orchestration: one orchestrator, four specialists",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")

	rootCmd.AddCommand(newChatCmd(), newThreadsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs after wiring.
type app struct {
	cfg     *config.Config
	crew    *agentcrew.Crew
	threads core.ThreadStore
	logger  logging.Logger
}

// buildApp wires models, tools, stores and the pipeline from configuration.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(logLevel(cfg.LogLevel), "text", os.Stderr)

	models, err := cfg.BuildModels()
	if err != nil {
		return nil, err
	}

	threads, err := buildThreadStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var memStore core.MemoryStore
	if cfg.Storage.MemoryDSN != "" {
		memStore, err = memory.NewSQLStore(ctx, cfg.Storage.MemoryDSN)
		if err != nil {
			return nil, err
		}
	}

	var searcher *tool.Searcher
	if cfg.SearxngURL != "" {
		searcher = tool.NewSearcher(cfg.SearxngURL)
	}

	crew := agentcrew.New(models, func(o *agentcrew.Options) {
		o.Threads = threads
		o.Memory = memStore
		o.Searcher = searcher
		o.Logger = logger
	})

	return &app{cfg: cfg, crew: crew, threads: threads, logger: logger}, nil
}

func buildThreadStore(ctx context.Context, cfg *config.Config) (core.ThreadStore, error) {
	switch cfg.Storage.Threads {
	case "redis":
		return session.NewRedisStore(ctx, cfg.Storage.RedisAddr)
	case "memory":
		return session.NewInMemoryStore(), nil
	default:
		return session.NewFileStore(cfg.Storage.ThreadsDir)
	}
}

func logLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LogLevelDebug
	case "warn":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}
