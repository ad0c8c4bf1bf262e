package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed samples/catalogos.yaml
var samplesFS embed.FS

// Samples returns the bundled demo catalogs keyed by table name.
func Samples() (StaticFetcher, error) {
	data, err := samplesFS.ReadFile("samples/catalogos.yaml")
	if err != nil {
		return nil, fmt.Errorf("catalog: read samples: %w", err)
	}
	return DecodeYAML(data)
}

// DecodeYAML parses a table -> entries YAML document.
func DecodeYAML(data []byte) (StaticFetcher, error) {
	var raw map[string][]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	out := make(StaticFetcher, len(raw))
	for table, rows := range raw {
		entries := make([]Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, Entry(row))
		}
		out[table] = entries
	}
	return out, nil
}
