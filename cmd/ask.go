package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/curalinkai/curalink/internal"
	"github.com/spf13/cobra"
)

var (
	askSession    string
	askNewSession bool
)

// askCmd sends one question and prints the answer
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question",
	Long: `Send one question in a session and print the answer with its sources.

The question is asked in the most recently active session unless --session
or --new is given. The exchange is saved like any other.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, kv, cfg, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		switch {
		case askNewSession:
			chat.CreateSession()
		case askSession != "":
			if err := chat.SelectSession(askSession); err != nil {
				return fmt.Errorf("session not found: %s", askSession)
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var outcome internal.Outcome
		err = internal.ShowProgress(ctx, fmt.Sprintf("Asking %s", cfg.Endpoint), func() error {
			done, err := chat.Submit(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			outcome = <-done
			return outcome.Err
		})

		out := cmd.OutOrStdout()
		if outcome.Message.ID != 0 {
			displayMessage(out, len(chat.Messages()), outcome.Message, len(chat.Messages()))
		}
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askSession, "session", "s", "", "Session to ask in")
	askCmd.Flags().BoolVar(&askNewSession, "new", false, "Ask in a new session")
}
