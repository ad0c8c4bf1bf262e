package tui

import (
	"fmt"
	"strings"
)

// State collects the values answered during a terminal session. It satisfies
// render.ValueSetter so planned fields can bind straight into it.
type State struct {
	values map[string]any
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]any) *State {
	values := make(map[string]any, len(prefill))
	for k, v := range prefill {
		values[k] = v
	}
	return &State{values: values}
}

// Set records the answer for a field.
func (s *State) Set(name string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("tui: field name is required")
	}
	s.values[name] = value
	return nil
}

// Value returns the current answer for name.
func (s *State) Value(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}

// Values returns a copy of the collected values.
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
