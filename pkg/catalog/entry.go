package catalog

import (
	"strings"

	"github.com/goliatone/go-plantillas/internal/model"
)

// Catalog table names understood by the resolver.
const (
	TableCandidateTypes = model.CandidateTypesCatalog
	TableBranches       = "sucursales"
	TableCostCenters    = "centros_costo"
	TableCities         = "ciudades"
)

const (
	defaultLabelKey = "nombre"
	idKey           = "id"
)

// Tables lists the fixed dispatch table in a stable order.
func Tables() []string {
	return []string{TableCandidateTypes, TableBranches, TableCostCenters, TableCities}
}

// KnownTable reports whether table belongs to the dispatch table.
func KnownTable(table string) bool {
	switch table {
	case TableCandidateTypes, TableBranches, TableCostCenters, TableCities:
		return true
	}
	return false
}

// Entry is an opaque catalog record. Only the projected label and value are
// interpreted.
type Entry map[string]any

// Option is the projected label/value pair of an Entry.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Projection names the entry keys used for an option's label and value.
type Projection struct {
	LabelKey string
	ValueKey string
}

// DefaultProjection reads both label and value from "nombre".
func DefaultProjection() Projection {
	return Projection{LabelKey: defaultLabelKey, ValueKey: defaultLabelKey}
}

// ProjectionFor returns the projection configured on a field, applying the
// "nombre" defaults.
func ProjectionFor(field model.Field) Projection {
	p := Projection{
		LabelKey: strings.TrimSpace(field.DatabaseField),
		ValueKey: strings.TrimSpace(field.DatabaseValueField),
	}
	if p.LabelKey == "" {
		p.LabelKey = defaultLabelKey
	}
	if p.ValueKey == "" {
		p.ValueKey = defaultLabelKey
	}
	return p
}

// Project extracts the label and value of the entry. A missing value falls
// back to the "id" key and then to the label; a missing label falls back to
// the value.
func (e Entry) Project(labelKey, valueKey string) Option {
	label := e.text(labelKey)
	value := e.text(valueKey)
	if value == "" {
		value = e.text(idKey)
	}
	if value == "" {
		value = label
	}
	if label == "" {
		label = value
	}
	return Option{Value: value, Label: label}
}

// ProjectAll projects every entry, dropping those with neither label nor value.
func ProjectAll(entries []Entry, projection Projection) []Option {
	if len(entries) == 0 {
		return nil
	}
	out := make([]Option, 0, len(entries))
	for _, entry := range entries {
		option := entry.Project(projection.LabelKey, projection.ValueKey)
		if option.Value == "" && option.Label == "" {
			continue
		}
		out = append(out, option)
	}
	return out
}

func (e Entry) text(key string) string {
	if e == nil || key == "" {
		return ""
	}
	raw, ok := e[key]
	if !ok {
		return ""
	}
	text, ok := model.CanonicalizeValue(raw)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

func cloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
