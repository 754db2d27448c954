package main

import (
	"fmt"

	"github.com/hupe1980/agentcrew/core"
	"github.com/spf13/cobra"
)

func newThreadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threads",
		Short: "Manage persisted conversation threads",
	}
	cmd.AddCommand(newThreadsListCmd(), newThreadsShowCmd(), newThreadsDeleteCmd())
	return cmd
}

func newThreadsListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List persisted threads, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			infos, err := a.threads.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Println("No threads found.")
				return nil
			}
			for _, info := range infos {
				fmt.Printf("%s  %s  events=%d tasks=%d  %s\n",
					info.ID, info.CreatedAt.Format("2006-01-02 15:04"),
					info.EventCount, info.TaskCount, info.Preview)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of threads to list")
	return cmd
}

func newThreadsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <thread-id>",
		Short: "Print a thread's event timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			thread, err := a.threads.Load(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Thread %s (created %s)\n\n", thread.ID, thread.CreatedAt.Format("2006-01-02 15:04:05"))
			for _, ev := range thread.GetEvents() {
				role := string(ev.Role)
				if role == "" {
					role = "-"
				}
				fmt.Printf("[%s] %-12s %-18s %s\n",
					ev.Timestamp.Format("15:04:05"), role, ev.Kind, core.Truncate(ev.Content, 120))
			}

			if len(thread.Metrics) > 0 {
				fmt.Println("\nAgent metrics:")
				for role, m := range thread.Metrics {
					fmt.Printf("  %-12s calls=%d tokens=%d avg_latency=%.0fms success=%.0f%%\n",
						role, m.TotalCalls, m.TotalTokens, m.AvgLatencyMS(), m.SuccessRate()*100)
				}
			}
			return nil
		},
	}
}

func newThreadsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <thread-id>",
		Short: "Delete a persisted thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			if err := a.threads.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted", args[0])
			return nil
		},
	}
}
