package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/curalinkai/curalink/internal"
)

func TestListCommand(t *testing.T) {
	dbPath := isolate(t)
	seedDatabase(t, dbPath)

	out, err := runCommand(t, "list", "--storage", dbPath)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	for _, want := range []string{"2 session(s)", "Headaches", "chat-2", "main", internal.UntitledSessionLabel} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// most recent activity first
	if strings.Index(out, "chat-2") > strings.Index(out, "main") {
		t.Errorf("sessions not ordered by activity:\n%s", out)
	}
}

func TestListCommand_FreshDatabase(t *testing.T) {
	dbPath := isolate(t)

	out, err := runCommand(t, "list", "--storage", dbPath)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "1 session(s)") || !strings.Contains(out, internal.DefaultSessionID) {
		t.Errorf("expected the default session:\n%s", out)
	}
}

func TestDisplaySessions_MarksActive(t *testing.T) {
	var buf bytes.Buffer
	displaySessions(&buf, []internal.SessionListItem{
		{ID: "a", Label: "Alpha", IsActive: true, MessageCount: 2, LastActivity: 1},
		{ID: "b", Label: strings.Repeat("x", 60)},
	}, time.Now())

	out := buf.String()
	if !strings.Contains(out, "*") {
		t.Error("active session not marked")
	}
	if !strings.Contains(out, strings.Repeat("x", 37)+"...") {
		t.Error("long label not truncated")
	}
}

func TestFormatActivity(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		at   time.Time
		zero bool
		want string
	}{
		{name: "none", zero: true, want: "—"},
		{name: "today", at: now.Add(-2 * time.Hour), want: "Today 10:00"},
		{name: "this week", at: now.Add(-3 * 24 * time.Hour), want: "Thu 12:00"},
		{name: "this year", at: now.Add(-60 * 24 * time.Hour), want: "Apr 16 12:00"},
		{name: "old", at: now.AddDate(-2, 0, 0), want: "2023-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ms int64
			if !tt.zero {
				ms = tt.at.UnixMilli()
			}
			if got := formatActivity(ms, now); got != tt.want {
				t.Errorf("formatActivity() = %q, want %q", got, tt.want)
			}
		})
	}
}
