package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/curalinkai/curalink/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)
)

var nowFunc = time.Now

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions",
	Long:  `List all chat sessions, most recently active first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chat, kv, _, err := openChat()
		if err != nil {
			return err
		}
		defer kv.Close()

		displaySessions(cmd.OutOrStdout(), chat.Sessions(), nowFunc())
		return nil
	},
}

func displaySessions(out io.Writer, items []internal.SessionListItem, now time.Time) {
	header := headerStyle.Render(fmt.Sprintf("📋 %d session(s)", len(items)))
	fmt.Fprintln(out, header)
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, " \t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Last active")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 90))

	for _, item := range items {
		marker := " "
		if item.IsActive {
			marker = activeStyle.Render("*")
		}

		name := item.Label
		if len(name) > 40 {
			name = name[:37] + "..."
		}

		msgCount := "0"
		if item.MessageCount > 0 {
			msgCount = countStyle.Render(strconv.Itoa(item.MessageCount))
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			marker, idStyle.Render(item.ID), name, msgCount, dateStyle.Render(formatActivity(item.LastActivity, now)))
	}
	_ = w.Flush()
}

// formatActivity renders a millisecond message id as a relative date
func formatActivity(ms int64, now time.Time) string {
	if ms <= 0 {
		return "—"
	}
	t := time.UnixMilli(ms)
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
