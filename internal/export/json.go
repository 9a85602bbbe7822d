package export

import (
	"encoding/json"
	"io"

	"github.com/curalinkai/curalink/internal"
)

// JSONExporter writes a session as one indented JSON document
type JSONExporter struct{}

func (e *JSONExporter) Export(session *internal.Session, w io.Writer) error {
	doc, err := newDocument(session)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
