package output

import (
	"bufio"
	"io"
)

// TextWriter writes the document content verbatim, terminated by a single
// newline.
type TextWriter struct {
	w *bufio.Writer
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// Write outputs the document content.
func (w *TextWriter) Write(doc Document) error {
	if _, err := w.w.WriteString(doc.Content); err != nil {
		return err
	}
	_, err := w.w.WriteString("\n")
	return err
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}
