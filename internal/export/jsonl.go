package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/curalinkai/curalink/internal"
)

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	if session == nil {
		return fmt.Errorf("nil session")
	}
	enc := json.NewEncoder(w)

	for _, msg := range session.Messages {
		obj := map[string]interface{}{
			"id":      msg.ID,
			"role":    msg.Role,
			"content": msg.Content,
			"status":  msg.Status,
		}
		if msg.Error {
			obj["error"] = true
		}
		if len(msg.References) > 0 {
			obj["references"] = msg.References
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
