package render

import (
	"fmt"
	"sort"
	"strings"
)

// Hidden input names used by the plantillas HTTP surface.
const (
	HiddenPlantillaID = "plantilla_id"
	HiddenEmpresaID   = "empresa_id"
	HiddenCSRF        = "_csrf"
)

// HiddenField is a hidden form input emitted alongside the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken carries a CSRF token under the conventional "_csrf" name.
func CSRFToken(token string) HiddenField {
	return Hidden(HiddenCSRF, token)
}

// PlantillaRef identifies the plantilla (and optionally the company) a
// submission belongs to.
func PlantillaRef(plantillaID, empresaID string) []HiddenField {
	fields := []HiddenField{Hidden(HiddenPlantillaID, plantillaID)}
	if strings.TrimSpace(empresaID) != "" {
		fields = append(fields, Hidden(HiddenEmpresaID, empresaID))
	}
	return fields
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// rendering.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	clean := MergeHiddenFields(fields)
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}
