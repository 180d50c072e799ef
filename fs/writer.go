package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/marketway"
	"gopkg.in/yaml.v3"
)

// WriteLines writes lines to path in the list layout, choosing JSON or YAML
// from the extension. The file is written to a temporary sibling and
// renamed into place so readers and watchers never see a partial catalog.
func WriteLines(path string, lines []*marketway.Line) error {
	if lines == nil {
		lines = []*marketway.Line{}
	}

	var data []byte
	var err error
	switch FormatFromPath(path) {
	case FormatYAML:
		data, err = yaml.Marshal(toRecords(lines))
	default:
		data, err = json.MarshalIndent(lines, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// yamlRecord is the list layout with YAML field names.
type yamlRecord struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Aisle int      `yaml:"aisle"`
	Order int      `yaml:"order"`
	Items []string `yaml:"items"`
}

func toRecords(lines []*marketway.Line) []yamlRecord {
	records := make([]yamlRecord, len(lines))
	for i, l := range lines {
		records[i] = yamlRecord{ID: l.ID, Name: l.Name, Aisle: l.Aisle, Order: l.Order, Items: l.Items}
	}
	return records
}
