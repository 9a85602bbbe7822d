package cmd

import (
	"github.com/curalinkai/curalink/internal"
	"github.com/curalinkai/curalink/internal/tui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat",
	Long: `Open the full screen chat. The session list is on the left and the
active conversation on the right.

Keys: enter send, tab / shift+tab switch session, ctrl+n new session,
ctrl+r rename, ctrl+d delete, esc or ctrl+c quit.

Log output is written to the data directory while the chat is open.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, kv, _, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		paths, err := internal.DetectDataPaths()
		if err != nil {
			return err
		}
		return tui.Run(chat, paths.LogPath())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
