package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser converts untrusted schema documents into FormStructure values.
type Parser struct {
	opts Options
}

// New creates a Parser with the supplied options.
func New(options Options) *Parser {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Parser{opts: opts}
}

// ParseJSON decodes a JSON document and normalises it. Only syntactically
// invalid payloads produce an error; malformed nodes are skipped.
func (p *Parser) ParseJSON(data []byte) (FormStructure, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return FormStructure{}, nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return FormStructure{}, fmt.Errorf("model parser: decode json: %w", err)
	}
	return p.Parse(raw), nil
}

// ParseYAML decodes a YAML document and normalises it.
func (p *Parser) ParseYAML(data []byte) (FormStructure, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return FormStructure{}, nil
	}
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return FormStructure{}, fmt.Errorf("model parser: decode yaml: %w", err)
	}
	return p.Parse(raw), nil
}

// Parse normalises a decoded schema. The section list wins whenever it is
// non-empty; otherwise the legacy flat field list is used.
func (p *Parser) Parse(raw any) FormStructure {
	root, ok := toAnyMap(raw)
	if !ok {
		return FormStructure{}
	}

	if sections, ok := root["secciones"].([]any); ok && len(sections) > 0 {
		out := FormStructure{}
		for idx, entry := range sections {
			section, ok := p.parseSection(entry, idx)
			if !ok {
				continue
			}
			out.Sections = append(out.Sections, section)
		}
		return out
	}

	if fields, ok := root["campos"].([]any); ok && len(fields) > 0 {
		return FormStructure{Fields: p.parseFields(fields)}
	}

	return FormStructure{}
}

func (p *Parser) parseSection(raw any, index int) (Section, bool) {
	node, ok := toAnyMap(raw)
	if !ok {
		return Section{}, false
	}

	section := Section{
		Title: firstString(node, "titulo", "title"),
		Icon:  Icon(strings.TrimSpace(firstString(node, "icono", "icon"))),
	}
	if section.Title == "" {
		section.Title = sectionTitlePrefix + strconv.Itoa(index+1)
	}
	if !KnownIcon(section.Icon) {
		section.Icon = IconDefault
	}

	if fields, ok := node["campos"].([]any); ok {
		section.Fields = p.parseFields(fields)
	}
	return section, true
}

func (p *Parser) parseFields(entries []any) []Field {
	fields := make([]Field, 0, len(entries))
	for _, entry := range entries {
		field, ok := p.parseField(entry)
		if !ok {
			continue
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}

func (p *Parser) parseField(raw any) (Field, bool) {
	node, ok := toAnyMap(raw)
	if !ok {
		return Field{}, false
	}

	name := strings.TrimSpace(firstString(node, "name", "nombre", "id"))
	if name == "" {
		return Field{}, false
	}

	field := Field{
		Name:               name,
		Label:              strings.TrimSpace(firstString(node, "label", "etiqueta")),
		Type:               normalizeFieldType(strings.TrimSpace(strings.ToLower(firstString(node, "type", "tipo")))),
		Required:           toBool(firstPresent(node, "required", "requerido")),
		Placeholder:        firstString(node, "placeholder"),
		DataSource:         DataSourceStatic,
		DatabaseTable:      strings.TrimSpace(firstString(node, "databaseTable")),
		DatabaseField:      strings.TrimSpace(firstString(node, "databaseField")),
		DatabaseValueField: strings.TrimSpace(firstString(node, "databaseValueField")),
		Validation:         firstString(node, "validacion"),
		Width:              widthHint(node),
	}

	if field.Label == "" {
		field.Label = p.opts.Labeler(name)
	}
	if field.Placeholder == "" {
		field.Placeholder = placeholderPrefix + strings.ToLower(field.Label)
	}
	if strings.EqualFold(strings.TrimSpace(firstString(node, "dataSource")), string(DataSourceDatabase)) {
		field.DataSource = DataSourceDatabase
	}
	if field.DatabaseField == "" {
		field.DatabaseField = defaultProjectionField
	}
	if field.DatabaseValueField == "" {
		field.DatabaseValueField = defaultProjectionField
	}

	field.Options, field.LegacyCatalog = parseOptions(firstPresent(node, "opciones", "options"))
	if toBool(node["legacyCatalog"]) {
		field.LegacyCatalog = true
	}

	if value, ok := toIntValue(node["minLength"]); ok {
		field.MinLength = &value
	}
	if value, ok := toIntValue(node["diasMinimos"]); ok {
		field.MinDays = &value
	}
	if value, ok := toIntValue(node["order"]); ok {
		field.Order = value
	}

	return field, true
}

func parseOptions(raw any) ([]Option, bool) {
	switch v := raw.(type) {
	case string:
		return nil, strings.TrimSpace(v) == CandidateTypesCatalog
	case []any:
		out := make([]Option, 0, len(v))
		for _, entry := range v {
			if entry == nil {
				continue
			}
			out = append(out, projectOption(entry))
		}
		if len(out) == 0 {
			return nil, false
		}
		return out, false
	default:
		return nil, false
	}
}

// projectOption reads label/nombre/valor for the label and valor/value/id
// for the value. Each side falls back to the other, then to the entry's
// string form.
func projectOption(entry any) Option {
	node, ok := toAnyMap(entry)
	if !ok {
		text := stringForm(entry)
		return Option{Label: text, Value: text}
	}

	label := firstString(node, "label", "nombre", "valor")
	value := firstString(node, "valor", "value", "id")
	if label == "" {
		label = value
	}
	if value == "" {
		value = label
	}
	if label == "" {
		label = stringForm(entry)
		value = label
	}
	return Option{Label: label, Value: value}
}

// widthHint applies the colspan, dimension, gridColumnSpan precedence. Empty
// strings count as absent.
func widthHint(node map[string]any) any {
	for _, key := range []string{"colspan", "dimension", "gridColumnSpan"} {
		value, ok := node[key]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return value
	}
	return nil
}

func firstPresent(node map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := node[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func firstString(node map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := node[key]
		if !ok || value == nil {
			continue
		}
		if _, isMap := toAnyMap(value); isMap {
			continue
		}
		if text, ok := CanonicalizeValue(value); ok && strings.TrimSpace(text) != "" {
			return text
		}
	}
	return ""
}

func toBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		if n, ok := toIntValue(v); ok {
			return n != 0
		}
		return false
	}
}

func toAnyMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, v != nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = item
		}
		return out, true
	default:
		return nil, false
	}
}

func stringForm(value any) string {
	if text, ok := CanonicalizeValue(value); ok {
		return text
	}
	return fmt.Sprint(value)
}
