// Package output writes assembled conversation documents.
package output

import (
	"fmt"
	"io"
)

// Format represents output serialization types.
type Format string

const (
	// FormatText writes the document verbatim.
	FormatText Format = "text"

	// FormatJSON and FormatYAML wrap the document in an envelope with
	// platform, URL, and message count.
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Document is the export envelope for structured formats.
type Document struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
	Messages int    `json:"messages" yaml:"messages"`
	Content  string `json:"content" yaml:"content"`
}

// Writer serializes a document to its destination.
type Writer interface {
	// Write outputs the document.
	Write(doc Document) error

	// Flush ensures all data is written.
	Flush() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatText:
		return NewTextWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
