package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/curalinkai/curalink/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return fmt.Errorf("nil session")
	}
	_, _ = fmt.Fprintf(w, "# %s\n\n", session.Label())
	_, _ = fmt.Fprintf(w, "**Session:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range session.Messages {
		marker := ""
		if msg.Error {
			marker = " _(error)_"
		}

		content := escapeMarkdown(msg.Content)
		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", msg.Role, marker, content)

		if len(msg.References) > 0 {
			_, _ = fmt.Fprintf(w, "**References:**\n\n")
			for _, ref := range msg.References {
				_, _ = fmt.Fprintf(w, "- %s\n", formatReference(ref))
			}
			_, _ = fmt.Fprintln(w)
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func formatReference(ref internal.Reference) string {
	line := ref.DisplayTitle()
	if ref.URL != "" {
		line = fmt.Sprintf("[%s](%s)", line, ref.URL)
	}
	if pct, ok := ref.RelevancePercent(); ok {
		line += fmt.Sprintf(" (Match: %d%%)", pct)
	}
	if ref.Snippet != "" {
		line += fmt.Sprintf(": %s", ref.Snippet)
	}
	return line
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
