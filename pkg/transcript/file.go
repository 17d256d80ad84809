package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// File is a saved conversation ready for export: the record shape an
// extractor (or a previous capture run) writes to disk.
type File struct {
	Platform string    `json:"platform,omitempty" yaml:"platform,omitempty"`
	URL      string    `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	Messages []Message `json:"messages" yaml:"messages" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadFile reads a transcript from a JSON or YAML file, chosen by
// extension, and validates it.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var f File
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON transcript: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML transcript: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported transcript file format: %s", ext)
	}

	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid transcript file: %w", err)
	}

	if f.Platform == "" {
		f.Platform = "unknown"
	}
	return &f, nil
}
