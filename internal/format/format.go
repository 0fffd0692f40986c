// Package format encodes and decodes document streams in the supported
// file formats.
package format

import (
	"fmt"

	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
)

// Format handles marshaling and unmarshaling for a specific file format
type Format struct {
	Name            string
	MarshalStream   func([]any) ([]byte, error)
	UnmarshalStream func([]byte) ([]any, error)
}

var formatByExtension = map[string]Format{
	"json": {
		MarshalStream:   jsonMarshalStream,
		UnmarshalStream: jsonUnmarshalStream,
	},
	"jsonl": {
		MarshalStream:   jsonMarshalStream,
		UnmarshalStream: jsonUnmarshalStream,
	},
	"json-pretty": {
		MarshalStream:   jsonMarshalStreamPretty,
		UnmarshalStream: jsonUnmarshalStream,
	},
	"toml": {
		MarshalStream:   tomlMarshalStream,
		UnmarshalStream: tomlUnmarshalStream,
	},
	"yaml": {
		MarshalStream:   yamlMarshalStream,
		UnmarshalStream: yamlUnmarshalStream,
	},
	"yml": {
		MarshalStream:   yamlMarshalStream,
		UnmarshalStream: yamlUnmarshalStream,
	},
	"properties": {
		MarshalStream:   propertiesMarshalStream,
		UnmarshalStream: propertiesUnmarshalStream,
	},
}

// Get retrieves a format by name from the registry
func Get(name string) (*Format, error) {
	ft, found := formatByExtension[name]
	if !found {
		return nil, fmt.Errorf("%s: %w", name, errors.ErrUnknownFormat)
	}

	ft.Name = name

	return &ft, nil
}

// ForPath picks the format from a file extension, falling back to def for
// stdin and extensionless paths.
func ForPath(path, def string) (*Format, error) {
	ext := utils.Ext(path)
	if ext == "" || utils.IsStdin(path) {
		ext = def
	}

	return Get(ext)
}

// Extensions returns all supported format extensions
func Extensions() []string {
	return utils.SortedKeys(formatByExtension)
}

// Marshal encodes a single document.
func (f *Format) Marshal(v any) ([]byte, error) {
	out, err := f.MarshalStream([]any{v})
	if err != nil {
		return nil, fmt.Errorf("%s: %w (%w)", f.Name, err, errors.ErrEncode)
	}

	return out, nil
}

// Unmarshal decodes a stream that must hold exactly one document.
func (f *Format) Unmarshal(in []byte) (any, error) {
	docs, err := f.UnmarshalStream(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w (%w)", f.Name, err, errors.ErrDecode)
	}

	if len(docs) != 1 {
		return nil, fmt.Errorf("%s: %d documents, want 1 (%w)", f.Name, len(docs), errors.ErrDecode)
	}

	return docs[0], nil
}

// UnmarshalMap decodes a single document that must be a map.
func (f *Format) UnmarshalMap(in []byte) (map[string]any, error) {
	doc, err := f.Unmarshal(in)
	if err != nil {
		return nil, err
	}

	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: top level is %T, not a map (%w)", f.Name, doc, errors.ErrDecode)
	}

	return m, nil
}
