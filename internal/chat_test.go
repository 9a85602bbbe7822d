package internal

import (
	"context"
	"errors"
	"testing"
)

func TestChat_Flow(t *testing.T) {
	kv := NewMemoryKV()
	answerer := &StubAnswerer{AskFunc: func(req AnswerRequest) (*Answer, error) {
		return &Answer{Text: "echo: " + req.Question}, nil
	}}
	chat := OpenChat(kv, answerer)

	if chat.CurrentSessionID() != DefaultSessionID {
		t.Fatalf("CurrentSessionID() = %q", chat.CurrentSessionID())
	}

	done, err := chat.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	outcome := <-done
	if outcome.Err != nil || outcome.Message.Content != "echo: hello" {
		t.Fatalf("outcome = %+v", outcome)
	}
	if chat.Processing() {
		t.Error("still processing after outcome")
	}

	second := chat.CreateSession()
	if chat.CurrentSessionID() != second {
		t.Errorf("CreateSession() did not select %q", second)
	}
	if len(chat.Messages()) != 0 {
		t.Error("new session has messages")
	}
	if !chat.RenameSession(second, "Second") {
		t.Error("RenameSession() = false")
	}

	items := chat.Sessions()
	if len(items) != 2 || items[0].ID != DefaultSessionID || !items[1].IsActive {
		t.Errorf("Sessions() = %+v", items)
	}

	// A fresh Chat over the same storage sees the same sessions
	reopened := OpenChat(kv, answerer)
	if reopened.Store().Len() != 2 {
		t.Fatalf("reopened Len() = %d", reopened.Store().Len())
	}
	if reopened.CurrentSessionID() != DefaultSessionID {
		t.Errorf("reopened active = %q, want most recent", reopened.CurrentSessionID())
	}
	if s, _ := reopened.Store().Session(second); s.Name != "Second" {
		t.Errorf("name not restored: %+v", s)
	}

	if err := chat.DeleteSession(second); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if chat.CurrentSessionID() != DefaultSessionID {
		t.Errorf("active after delete = %q", chat.CurrentSessionID())
	}
	if err := chat.SelectSession("missing"); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("SelectSession(missing) error = %v", err)
	}
}
