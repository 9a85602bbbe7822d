package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/curalinkai/curalink/internal"
)

func TestJSONExporter_Export(t *testing.T) {
	session := internal.CreateTestSession("test1")

	var buf bytes.Buffer
	exporter := &JSONExporter{}
	if err := exporter.Export(session, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded internal.Session
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Export() produced invalid JSON: %v", err)
	}

	if decoded.ID != "test1" {
		t.Errorf("ID = %q, want %q", decoded.ID, "test1")
	}
	if len(decoded.Messages) != len(session.Messages) {
		t.Fatalf("got %d messages, want %d", len(decoded.Messages), len(session.Messages))
	}
	refs := decoded.Messages[1].References
	if len(refs) != 1 || refs[0].Score == nil || *refs[0].Score != 0.9 {
		t.Errorf("references not exported: %+v", refs)
	}
	if !decoded.Messages[3].Error {
		t.Error("error flag lost in export")
	}
}

func TestJSONExporter_Indented(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(internal.CreateTestSession("x"), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  \"id\"")) {
		t.Errorf("expected indented output, got:\n%s", buf.String())
	}
}

func TestJSONExporter_Envelope(t *testing.T) {
	tests := []struct {
		name      string
		session   *internal.Session
		wantLabel string
		wantCount int
	}{
		{name: "named", session: internal.CreateTestSession("a"), wantLabel: "Test Conversation", wantCount: 4},
		{name: "unnamed empty", session: &internal.Session{ID: "b"}, wantLabel: internal.UntitledSessionLabel, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := (&JSONExporter{}).Export(tt.session, &buf); err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			var doc struct {
				Label        string            `json:"label"`
				MessageCount int               `json:"message_count"`
				Messages     []json.RawMessage `json:"messages"`
			}
			if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if doc.Label != tt.wantLabel || doc.MessageCount != tt.wantCount {
				t.Errorf("label=%q count=%d", doc.Label, doc.MessageCount)
			}
			if doc.Messages == nil {
				t.Error("messages should be an array, not null")
			}
		})
	}
}

func TestJSONExporter_NilSession(t *testing.T) {
	if err := (&JSONExporter{}).Export(nil, &bytes.Buffer{}); err == nil {
		t.Error("Export(nil) should fail")
	}
}
