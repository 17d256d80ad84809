package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes the document envelope as pretty-printed JSON.
type JSONWriter struct {
	w *bufio.Writer
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: bufio.NewWriter(w)}
}

// Write outputs the document envelope.
func (w *JSONWriter) Write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.w.Write(data); err != nil {
		return err
	}
	_, err = w.w.WriteString("\n")
	return err
}

// Flush flushes the buffer.
func (w *JSONWriter) Flush() error {
	return w.w.Flush()
}
