package export

import (
	"bytes"
	"testing"

	"github.com/curalinkai/curalink/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("test1")

	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.Session
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Export() produced invalid YAML: %v", err)
	}

	if decoded.ID != session.ID {
		t.Errorf("ID = %q, want %q", decoded.ID, session.ID)
	}
	if decoded.Name != "Test Conversation" {
		t.Errorf("Name = %q, want %q", decoded.Name, "Test Conversation")
	}
	if len(decoded.Messages) != 4 {
		t.Fatalf("got %d messages, want 4", len(decoded.Messages))
	}
	if decoded.Messages[0].Role != internal.RoleUser {
		t.Errorf("first role = %q, want user", decoded.Messages[0].Role)
	}
	if decoded.Messages[3].Status != internal.StatusError {
		t.Errorf("last status = %q, want error", decoded.Messages[3].Status)
	}
}
