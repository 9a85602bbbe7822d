package cmd

import (
	"net/http"
	"strings"
	"testing"

	"github.com/curalinkai/curalink/internal"
	"github.com/curalinkai/curalink/testutil"
)

func TestAskCommand(t *testing.T) {
	dbPath := isolate(t)
	seedDatabase(t, dbPath)
	server := testutil.NewAnswerServer(t, http.StatusOK, testutil.FeverResponse)

	out, err := runCommand(t, "ask", "What", "causes", "a", "fever?",
		"--session", "main", "--storage", dbPath, "--endpoint", server.Endpoint())
	if err != nil {
		t.Fatalf("ask error = %v", err)
	}
	for _, want := range []string{"Fever is most often caused by infection.", "Match: 90%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	requests := server.Requests()
	if len(requests) != 1 {
		t.Fatalf("server saw %d requests", len(requests))
	}
	req := requests[0]
	if req.Question != "What causes a fever?" || len(req.ChatHistory) != 3 {
		t.Errorf("request = %+v", req)
	}
	if req.ChatHistory[1].Role != "assistant" {
		t.Errorf("history[1].Role = %q", req.ChatHistory[1].Role)
	}

	main := loadSessions(t, dbPath)[0]
	if len(main.Messages) != 4 || main.Messages[3].Status != internal.StatusDelivered {
		t.Errorf("main after ask: %+v", main.Messages)
	}
}

func TestAskCommand_NewSession(t *testing.T) {
	dbPath := isolate(t)
	server := testutil.NewAnswerServer(t, http.StatusOK, testutil.FeverResponse)

	if _, err := runCommand(t, "ask", "hello", "--new", "--storage", dbPath, "--endpoint", server.Endpoint()); err != nil {
		t.Fatalf("ask error = %v", err)
	}
	sessions := loadSessions(t, dbPath)
	if len(sessions) != 2 || len(sessions[1].Messages) != 2 {
		t.Errorf("sessions = %+v", sessions)
	}
	if len(server.Requests()[0].ChatHistory) != 1 {
		t.Error("new session should send only the question as history")
	}
}

func TestAskCommand_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := isolate(t)
			server := testutil.NewAnswerServer(t, tt.status, tt.body)

			out, err := runCommand(t, "ask", "hello", "--storage", dbPath, "--endpoint", server.Endpoint())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(out, internal.ApologyText) {
				t.Errorf("apology not shown:\n%s", out)
			}

			msgs := loadSessions(t, dbPath)[0].Messages
			if len(msgs) != 2 || !msgs[1].Error || msgs[1].Status != internal.StatusError {
				t.Errorf("stored messages = %+v", msgs)
			}
		})
	}
}

func TestAskCommand_UnknownSession(t *testing.T) {
	dbPath := isolate(t)
	if _, err := runCommand(t, "ask", "hello", "--session", "missing", "--storage", dbPath); err == nil {
		t.Error("expected an error for an unknown session")
	}
}
