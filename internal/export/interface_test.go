package export

import (
	"strings"
	"testing"

	"github.com/curalinkai/curalink/internal"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		wantExt string
		wantErr bool
	}{
		{format: "json", wantExt: "json"},
		{format: "jsonl", wantExt: "jsonl"},
		{format: "yaml", wantExt: "yaml"},
		{format: "md", wantExt: "md"},
		{format: "markdown", wantExt: "md"},
		{format: "JSON", wantErr: true},
		{format: "csv", wantErr: true},
		{format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if tt.wantErr {
				if err == nil || exporter != nil {
					t.Fatalf("NewExporter(%q) = %T, %v; want error", tt.format, exporter, err)
				}
				if !strings.Contains(err.Error(), "supported: jsonl, md, yaml, json") {
					t.Errorf("error %q does not list supported formats", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExporter(%q) error = %v", tt.format, err)
			}
			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", got, tt.wantExt)
			}
		})
	}
}

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name      string
		session   *internal.Session
		wantLabel string
		wantCount int
		wantErr   bool
	}{
		{
			name:    "nil session",
			wantErr: true,
		},
		{
			name:      "unnamed session without messages",
			session:   &internal.Session{ID: "main"},
			wantLabel: internal.UntitledSessionLabel,
		},
		{
			name:      "blank name uses placeholder",
			session:   &internal.Session{ID: "chat-1", Name: "   ", Messages: []internal.Message{}},
			wantLabel: internal.UntitledSessionLabel,
		},
		{
			name:      "named session",
			session:   internal.CreateTestSession("chat-2"),
			wantLabel: "Test Conversation",
			wantCount: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newDocument(tt.session)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if doc.ID != tt.session.ID {
				t.Errorf("ID = %q, want %q", doc.ID, tt.session.ID)
			}
			if doc.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", doc.Label, tt.wantLabel)
			}
			if doc.Messages == nil {
				t.Error("Messages is nil, want empty slice")
			}
			if doc.MessageCount != tt.wantCount || len(doc.Messages) != tt.wantCount {
				t.Errorf("MessageCount = %d with %d messages, want %d", doc.MessageCount, len(doc.Messages), tt.wantCount)
			}
		})
	}
}

func TestExporters_RejectNilSession(t *testing.T) {
	for _, format := range []string{"json", "jsonl", "yaml", "md"} {
		t.Run(format, func(t *testing.T) {
			exporter, err := NewExporter(format)
			if err != nil {
				t.Fatalf("NewExporter() error = %v", err)
			}
			var sb strings.Builder
			if err := exporter.Export(nil, &sb); err == nil {
				t.Error("Export(nil) error = nil, want error")
			}
		})
	}
}
