package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/curalinkai/curalink/internal"
	"github.com/spf13/cobra"
)

var (
	limit int
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	referenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Padding(0, 2)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show messages for a session",
	Long:  `Display the messages of a chat session. Without an ID the most recent session is shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, kv, _, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		id := chat.CurrentSessionID()
		if len(args) == 1 {
			id = args[0]
		}
		session, ok := chat.Store().Session(id)
		if !ok {
			return fmt.Errorf("session not found: %s (use 'curalink list' to see available sessions)", id)
		}

		out := cmd.OutOrStdout()
		displaySessionHeader(out, session)

		messages := session.Messages
		total := len(messages)
		if limit > 0 && limit < total {
			messages = messages[total-limit:]
			fmt.Fprintln(out, timestampStyle.Render(fmt.Sprintf("... (%d earlier message(s))", total-limit)))
			fmt.Fprintln(out)
		}

		offset := total - len(messages)
		for i, msg := range messages {
			displayMessage(out, offset+i+1, msg, total)
		}
		return nil
	},
}

func displaySessionHeader(out io.Writer, session internal.Session) {
	fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", session.Label())))
	meta := []string{
		fmt.Sprintf("ID: %s", session.ID),
		fmt.Sprintf("Messages: %d", len(session.Messages)),
	}
	fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(meta, " • ")))
	fmt.Fprintln(out)
}

func displayMessage(out io.Writer, index int, msg internal.Message, total int) {
	var label string
	switch {
	case msg.Role == internal.RoleUser:
		label = userMessageStyle.Render("👤 You")
	case msg.Error:
		label = errorStyle.Render("⚠️  Assistant")
	default:
		label = assistantMessageStyle.Render("🩺 Assistant")
	}

	header := label + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	header += " " + timestampStyle.Render(formatActivity(msg.ID, nowFunc()))
	fmt.Fprintln(out, header)

	content := strings.TrimSpace(msg.Content)
	if content == "" {
		content = "(empty message)"
	}
	fmt.Fprintln(out, messageContentStyle.Render(wrapText(content, 80)))

	for _, ref := range msg.References {
		fmt.Fprintln(out, referenceStyle.Render("• "+formatReference(ref)))
	}
	if len(msg.References) > 0 {
		fmt.Fprintln(out)
	}
}

// formatReference renders a source as "Title (Match: NN%) url"
func formatReference(ref internal.Reference) string {
	s := ref.DisplayTitle()
	if pct, ok := ref.RelevancePercent(); ok {
		s += fmt.Sprintf(" (Match: %d%%)", pct)
	}
	if ref.URL != "" {
		s += " " + ref.URL
	}
	if ref.Snippet != "" {
		s += "\n  " + ref.Snippet
	}
	return s
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the last n messages")
}
