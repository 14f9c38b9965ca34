package export

import (
	"encoding/json"
	"io"

	"github.com/dogechoco/messageboard/core"
)

// JSONExporter writes the list as one pretty-printed array
type JSONExporter struct{}

func (e *JSONExporter) Export(messages []core.Message, w io.Writer) error {
	if messages == nil {
		messages = []core.Message{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(messages)
}

func (e *JSONExporter) Extension() string {
	return "json"
}

// JSONLExporter writes one message per line
type JSONLExporter struct{}

func (e *JSONLExporter) Export(messages []core.Message, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, m := range messages {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
