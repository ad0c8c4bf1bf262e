package form

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-plantillas/pkg/model"
)

// ValueMap is the field-name keyed value store of one form instance. Set is
// the only mutation path; Values hands out copies.
type ValueMap struct {
	values map[string]any
}

// NewValueMap seeds a value map from initial data. Every field of structure
// gets a key; fields without initial data start as the empty string.
func NewValueMap(structure model.FormStructure, initial map[string]any) *ValueMap {
	vm := &ValueMap{}
	vm.seed(structure, initial)
	return vm
}

// Set writes a single value.
func (v *ValueMap) Set(name string, value any) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("form: field name is required")
	}
	if v.values == nil {
		v.values = make(map[string]any)
	}
	v.values[name] = value
	return nil
}

// Get returns the value stored for name.
func (v *ValueMap) Get(name string) (any, bool) {
	value, ok := v.values[name]
	return value, ok
}

// Values returns a copy of the current values.
func (v *ValueMap) Values() map[string]any {
	return cloneValues(v.values)
}

// Len reports the number of keys.
func (v *ValueMap) Len() int {
	return len(v.values)
}

// Reset overwrites the map wholesale from new initial data.
func (v *ValueMap) Reset(structure model.FormStructure, initial map[string]any) {
	v.seed(structure, initial)
}

func (v *ValueMap) seed(structure model.FormStructure, initial map[string]any) {
	values := cloneValues(initial)
	for _, field := range structure.AllFields() {
		if _, ok := values[field.Name]; !ok {
			values[field.Name] = ""
		}
	}
	v.values = values
}

func cloneValues(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, val := range src {
		out[k] = deepCopy(val)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}
