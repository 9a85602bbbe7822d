package cmd

import (
	"fmt"
	"strings"

	"github.com/curalinkai/curalink/internal"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Start a new chat session",
	Long:  `Create an empty chat session, optionally named, and print its ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, kv, _, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		id := chat.CreateSession()
		if name := strings.Join(args, " "); name != "" {
			chat.RenameSession(id, name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <session-id> <name>",
	Short: "Rename a chat session",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, kv, _, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		id, name := args[0], strings.Join(args[1:], " ")
		if !chat.Store().HasSession(id) {
			return fmt.Errorf("session not found: %s", id)
		}
		if !chat.RenameSession(id, name) {
			return fmt.Errorf("name must not be blank")
		}
		internal.PrintSuccess(fmt.Sprintf("Renamed %s to %q", id, strings.TrimSpace(name)))
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a chat session",
	Long: `Delete a chat session and its messages. If it was the last session an
empty one is created in its place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, kv, _, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		if err := chat.DeleteSession(args[0]); err != nil {
			return fmt.Errorf("failed to delete %s: %w", args[0], err)
		}
		internal.PrintSuccess(fmt.Sprintf("Deleted %s (active: %s)", args[0], chat.CurrentSessionID()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
}
