package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hupe1980/agentcrew/core"
	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	var threadID string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat with the agent crew",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}

			var thread *core.Thread
			if threadID != "" {
				thread, err = a.threads.Load(ctx, threadID)
				if err != nil {
					return err
				}
				fmt.Printf("Resumed thread %s (%d events)\n", thread.ID, len(thread.Events))
			} else {
				thread = core.NewThread("")
				fmt.Printf("Started thread %s\n", thread.ID)
			}
			fmt.Println("Type a message, or 'exit' to quit.")

			scanner := bufio.NewScanner(os.Stdin)
			scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				input := strings.TrimSpace(scanner.Text())
				if input == "" {
					continue
				}
				if input == "exit" || input == "quit" {
					break
				}

				answer, err := a.crew.Ask(ctx, thread, input)
				if err != nil {
					fmt.Fprintln(os.Stderr, "Error:", err)
					continue
				}
				fmt.Println()
				fmt.Println(answer)
				fmt.Println()
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&threadID, "thread", "", "resume an existing thread by id")
	return cmd
}
