package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a subject import file.
type ImportSchema struct {
	Subjects []SubjectImport `json:"subjects" yaml:"subjects"`
	Session  *SessionImport  `json:"session,omitempty" yaml:"session,omitempty"`
}

// SubjectImport is one subject with its SRS progress. Times are RFC 3339.
type SubjectImport struct {
	ID            int64   `json:"id" yaml:"id"`
	Type          string  `json:"type" yaml:"type"`
	Level         int     `json:"level" yaml:"level"`
	Characters    string  `json:"characters,omitempty" yaml:"characters,omitempty"`
	Meaning       string  `json:"meaning" yaml:"meaning"`
	Stage         string  `json:"stage,omitempty" yaml:"stage,omitempty"`
	AvailableAt   *string `json:"available_at,omitempty" yaml:"available_at,omitempty"`
	PassedAt      *string `json:"passed_at,omitempty" yaml:"passed_at,omitempty"`
	ResurrectedAt *string `json:"resurrected_at,omitempty" yaml:"resurrected_at,omitempty"`
}

// SessionImport replaces the current study session.
type SessionImport struct {
	Type  string              `json:"type" yaml:"type"`
	Items []SessionItemImport `json:"items" yaml:"items"`
}

type SessionItemImport struct {
	SubjectID     int64  `json:"subject_id" yaml:"subject_id"`
	State         string `json:"state,omitempty" yaml:"state,omitempty"`
	QuestionsDone int    `json:"questions_done,omitempty" yaml:"questions_done,omitempty"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from the file extension; anything that is
// not .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadImportSchema reads and parses an import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatForPath(path))
}

// ParseImportSchema decodes data, rejecting unknown fields.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&schema); err != nil {
			return nil, fmt.Errorf("parsing YAML import file: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&schema); err != nil {
			return nil, fmt.Errorf("parsing JSON import file: %w", err)
		}
	}
	return &schema, nil
}
