package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/curalinkai/curalink/internal"
)

const sidebarWidth = 28

// outcomeMsg carries a finished request back into the update loop
type outcomeMsg internal.Outcome

// ---------- styles ----------

var (
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	activeSessionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)

	sessionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	referenceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Model is the bubbletea model for the interactive chat
type Model struct {
	chat     *internal.Chat
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	width    int
	height   int
	renaming bool
	status   string
}

// New creates a model bound to chat
func New(chat *internal.Chat) Model {
	ti := textinput.New()
	ti.Prompt = "❯ "
	ti.Placeholder = "Ask a medical question"
	ti.CharLimit = 4096
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		chat:     chat,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(80-sidebarWidth, 18),
		width:    80,
		height:   24,
	}
	m.refresh()
	return m
}

// Run starts the interactive chat. Log output goes to logPath while the
// screen is owned by the UI.
func Run(chat *internal.Chat, logPath string) error {
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		internal.SetLogOutput(f)
		defer internal.SetLogOutput(os.Stderr)
	}

	_, err := tea.NewProgram(New(chat), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.width - sidebarWidth - 6
		m.viewport.Width = m.width - sidebarWidth - 2
		m.viewport.Height = m.height - 4
		m.refresh()

	case spinner.TickMsg:
		if m.chat.Processing() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case outcomeMsg:
		switch {
		case msg.Dropped:
			m.status = "Reply discarded, its conversation was deleted"
		case msg.Err != nil:
			m.status = "Request failed: " + msg.Err.Error()
		default:
			m.status = ""
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.renaming {
				m.renaming = false
				m.input.SetValue(m.chat.Controller().Input())
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if m.renaming {
				return m.finishRename(), nil
			}
			return m.submit()
		case "ctrl+n":
			m.chat.CreateSession()
			m.status = ""
			m.refresh()
			return m, nil
		case "ctrl+d":
			if err := m.chat.DeleteSession(m.chat.CurrentSessionID()); err != nil {
				m.status = err.Error()
			}
			m.refresh()
			return m, nil
		case "ctrl+r":
			if session, ok := m.chat.Store().Session(m.chat.CurrentSessionID()); ok {
				m.renaming = true
				m.input.SetValue(session.Name)
				m.input.CursorEnd()
			}
			return m, nil
		case "tab":
			m.cycle(1)
			return m, nil
		case "shift+tab":
			m.cycle(-1)
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if !m.renaming {
			m.chat.Controller().SetInput(m.input.Value())
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	controller := m.chat.Controller()
	controller.SetInput(m.input.Value())

	done, err := m.chat.Submit(context.Background(), controller.Input())
	switch {
	case errors.Is(err, internal.ErrEmptyInput):
		return m, nil
	case errors.Is(err, internal.ErrBusy):
		m.status = "Still waiting for the previous answer"
		return m, nil
	case err != nil:
		m.status = err.Error()
		return m, nil
	}

	m.input.SetValue(controller.Input())
	m.status = ""
	m.refresh()
	return m, tea.Batch(waitForOutcome(done), m.spinner.Tick)
}

func (m Model) finishRename() Model {
	m.chat.RenameSession(m.chat.CurrentSessionID(), m.input.Value())
	m.renaming = false
	m.input.SetValue(m.chat.Controller().Input())
	m.refresh()
	return m
}

// cycle moves the selection through the session list in display order
func (m *Model) cycle(step int) {
	items := m.chat.Sessions()
	if len(items) < 2 {
		return
	}
	current := 0
	for i, item := range items {
		if item.IsActive {
			current = i
			break
		}
	}
	next := (current + step + len(items)) % len(items)
	if err := m.chat.SelectSession(items[next].ID); err != nil {
		m.status = err.Error()
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(renderMessages(m.chat.Messages(), m.viewport.Width))
	m.viewport.GotoBottom()
}

func waitForOutcome(done <-chan internal.Outcome) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(<-done)
	}
}

func (m Model) View() string {
	sidebar := sidebarStyle.
		Width(sidebarWidth).
		Height(m.height - 1).
		Render(renderSessions(m.chat.Sessions()))

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	switch {
	case m.chat.Processing():
		b.WriteString(m.spinner.View() + " Thinking...")
	case m.status != "":
		b.WriteString(errorStyle.Render(m.status))
	}
	b.WriteString("\n")
	if m.renaming {
		b.WriteString(hintStyle.Render("Rename: "))
	}
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter send · tab switch · ctrl+n new · ctrl+r rename · ctrl+d delete · esc quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, b.String())
}

func renderSessions(items []internal.SessionListItem) string {
	var b strings.Builder
	for _, item := range items {
		label := truncateLabel(item.Label, sidebarWidth-4)
		if item.IsActive {
			b.WriteString(activeSessionStyle.Render("▸ " + label))
		} else {
			b.WriteString(sessionStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// truncateLabel shortens label to at most limit cells, cutting on rune boundaries
func truncateLabel(label string, limit int) string {
	if lipgloss.Width(label) <= limit {
		return label
	}
	runes := []rune(label)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func renderMessages(messages []internal.Message, width int) string {
	if len(messages) == 0 {
		return hintStyle.Render("No messages yet. Ask something below.")
	}

	wrap := lipgloss.NewStyle().Width(max(width-2, 20))
	var b strings.Builder
	for _, msg := range messages {
		switch {
		case msg.Role == internal.RoleUser:
			b.WriteString(userStyle.Render("You"))
		case msg.Error:
			b.WriteString(errorStyle.Render("Assistant"))
		default:
			b.WriteString(assistantStyle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(msg.Content))
		b.WriteString("\n")

		for i, ref := range msg.References {
			line := fmt.Sprintf("  [%d] %s", i+1, ref.DisplayTitle())
			if pct, ok := ref.RelevancePercent(); ok {
				line += fmt.Sprintf(" (Match: %d%%)", pct)
			}
			b.WriteString(referenceStyle.Render(line))
			b.WriteString("\n")
			if ref.URL != "" {
				b.WriteString(referenceStyle.Render("      " + ref.URL))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
