package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-plantillas/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetCandidateSelect = "candidate-select"
	WidgetSelect          = "select"
	WidgetDate            = "date"
	WidgetCheckbox        = "checkbox"
	WidgetNumber          = "number"
	WidgetEmail           = "email"
	WidgetTextarea        = "textarea"
	WidgetText            = "text"
)

const cargoKeyword = "cargo"

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on registered matchers. Higher
// priority wins; ties fall back to registration order. Fields no matcher
// accepts resolve to the plain text widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field.
func (r *Registry) Resolve(field model.Field) string {
	if r == nil {
		return WidgetText
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name
		}
	}
	return WidgetText
}

// IsCargoField reports whether a text field should be upgraded to the
// candidate-type select: its name is "cargo" or its label mentions "cargo",
// ignoring case.
func IsCargoField(field model.Field) bool {
	if field.Type != model.FieldTypeText {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(field.Name), cargoKeyword) {
		return true
	}
	return strings.Contains(strings.ToLower(field.Label), cargoKeyword)
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCandidateSelect, 100, IsCargoField)
	r.Register(WidgetSelect, 80, typeIs(model.FieldTypeSelect))
	r.Register(WidgetDate, 70, typeIs(model.FieldTypeDate))
	r.Register(WidgetCheckbox, 60, typeIs(model.FieldTypeCheckbox))
	r.Register(WidgetNumber, 50, typeIs(model.FieldTypeNumber))
	r.Register(WidgetEmail, 40, typeIs(model.FieldTypeEmail))
	r.Register(WidgetTextarea, 30, typeIs(model.FieldTypeTextarea))
}

func typeIs(kind model.FieldType) Matcher {
	return func(field model.Field) bool {
		return field.Type == kind
	}
}
