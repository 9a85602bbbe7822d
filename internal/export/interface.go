package export

import (
	"fmt"
	"io"

	"github.com/curalinkai/curalink/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(session *internal.Session, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: jsonl, md, yaml, json)", format)
	}
}

// document is the envelope written by the structured exporters
type document struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name,omitempty" yaml:"name,omitempty"`
	Label        string             `json:"label" yaml:"label"`
	MessageCount int                `json:"message_count" yaml:"message_count"`
	Messages     []internal.Message `json:"messages" yaml:"messages"`
}

func newDocument(session *internal.Session) (document, error) {
	if session == nil {
		return document{}, fmt.Errorf("nil session")
	}
	messages := session.Messages
	if messages == nil {
		messages = []internal.Message{}
	}
	return document{
		ID:           session.ID,
		Name:         session.Name,
		Label:        session.Label(),
		MessageCount: len(messages),
		Messages:     messages,
	}, nil
}
