package export

import (
	"io"

	"github.com/curalinkai/curalink/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes a session as a YAML document
type YAMLExporter struct{}

func (e *YAMLExporter) Export(session *internal.Session, w io.Writer) error {
	doc, err := newDocument(session)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
