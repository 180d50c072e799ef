// Package fs provides file-based catalog storage: reading and writing line
// records as JSON or YAML, and watching a catalog file for changes.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/marketway"
	"gopkg.in/yaml.v3"
)

// Format identifies a catalog file encoding.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension.
// Anything other than .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Ensure LineSource implements marketway.LineSource at compile time.
var _ marketway.LineSource = (*LineSource)(nil)

// LineSource reads line records from a catalog file.
//
// Two layouts are accepted. A list of records:
//
//	[{"id": "l1", "name": "Mothers Line", "aisle": 1, "order": 1, "items": ["bags"]}]
//
// or a map keyed by line ID:
//
//	{"l1": {"line_name": "Mothers Line", "aisle": 1, "order": 1, "items_sold": ["bags"]}}
//
// Record order in the file is preserved in both layouts.
type LineSource struct {
	path string
}

// NewLineSource creates a LineSource for the file at path.
func NewLineSource(path string) *LineSource {
	return &LineSource{path: path}
}

// Path returns the catalog file path.
func (s *LineSource) Path() string {
	return s.path
}

// Lines reads and decodes the catalog file.
// Returns EUNAVAILABLE if the file is missing or cannot be decoded.
func (s *LineSource) Lines(ctx context.Context) ([]*marketway.Line, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "catalog file %q not found", s.path)
	} else if err != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "read catalog file %q: %v", s.path, err)
	}

	lines, err := DecodeLines(data, FormatFromPath(s.path))
	if err != nil {
		return nil, marketway.Errorf(marketway.EUNAVAILABLE, "decode catalog file %q: %v", s.path, err)
	}
	return lines, nil
}

// record accepts both the list layout field names and the keyed layout's.
type record struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	LineName  string   `json:"line_name" yaml:"line_name"`
	Aisle     int      `json:"aisle" yaml:"aisle"`
	Order     int      `json:"order" yaml:"order"`
	Items     []string `json:"items" yaml:"items"`
	ItemsSold []string `json:"items_sold" yaml:"items_sold"`
}

func (r *record) line(key string) *marketway.Line {
	l := &marketway.Line{
		ID:    r.ID,
		Name:  r.Name,
		Aisle: r.Aisle,
		Order: r.Order,
		Items: r.Items,
	}
	if l.ID == "" {
		l.ID = key
	}
	if l.Name == "" {
		l.Name = r.LineName
	}
	if l.Items == nil {
		l.Items = r.ItemsSold
	}
	return l
}

// DecodeLines decodes catalog data in the given format.
func DecodeLines(data []byte, format Format) ([]*marketway.Line, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) ([]*marketway.Line, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, errors.New("empty catalog")
	} else if err != nil {
		return nil, err
	}

	var lines []*marketway.Line
	switch tok {
	case json.Delim('['):
		for dec.More() {
			var r record
			if err := dec.Decode(&r); err != nil {
				return nil, err
			}
			lines = append(lines, r.line(""))
		}
	case json.Delim('{'):
		// Walk keys by hand; decoding into a map would lose file order.
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			var r record
			if err := dec.Decode(&r); err != nil {
				return nil, err
			}
			lines = append(lines, r.line(key))
		}
	default:
		return nil, errors.New("catalog must be a JSON array or object")
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	// Nothing may follow the top-level value.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after catalog")
		}
		return nil, err
	}
	return lines, nil
}

func decodeYAML(data []byte) ([]*marketway.Line, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("empty catalog")
	}

	doc := root.Content[0]
	var lines []*marketway.Line
	switch doc.Kind {
	case yaml.SequenceNode:
		for _, n := range doc.Content {
			var r record
			if err := n.Decode(&r); err != nil {
				return nil, err
			}
			lines = append(lines, r.line(""))
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(doc.Content); i += 2 {
			var r record
			if err := doc.Content[i+1].Decode(&r); err != nil {
				return nil, err
			}
			lines = append(lines, r.line(doc.Content[i].Value))
		}
	default:
		return nil, errors.New("catalog must be a YAML sequence or mapping")
	}
	return lines, nil
}
