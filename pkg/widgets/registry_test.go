package widgets

import (
	"testing"

	"github.com/goliatone/go-plantillas/pkg/model"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{
			name:   "cargo by name",
			field:  model.Field{Name: "Cargo", Type: model.FieldTypeText},
			expect: WidgetCandidateSelect,
		},
		{
			name:   "cargo by label",
			field:  model.Field{Name: "puesto", Label: "Cargo al que aplica", Type: model.FieldTypeText},
			expect: WidgetCandidateSelect,
		},
		{
			name:   "cargo rule only upgrades text",
			field:  model.Field{Name: "cargo", Type: model.FieldTypeTextarea},
			expect: WidgetTextarea,
		},
		{
			name:   "select",
			field:  model.Field{Name: "genero", Type: model.FieldTypeSelect},
			expect: WidgetSelect,
		},
		{
			name:   "date",
			field:  model.Field{Name: "fecha", Type: model.FieldTypeDate},
			expect: WidgetDate,
		},
		{
			name:   "checkbox",
			field:  model.Field{Name: "acepta", Type: model.FieldTypeCheckbox},
			expect: WidgetCheckbox,
		},
		{
			name:   "number",
			field:  model.Field{Name: "documento", Type: model.FieldTypeNumber},
			expect: WidgetNumber,
		},
		{
			name:   "email",
			field:  model.Field{Name: "correo", Type: model.FieldTypeEmail},
			expect: WidgetEmail,
		},
		{
			name:   "text fallback",
			field:  model.Field{Name: "nombre", Type: model.FieldTypeText},
			expect: WidgetText,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reg.Resolve(tc.field); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestResolve_PriorityAndOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register("rich-text", 35, func(field model.Field) bool {
		return field.Type == model.FieldTypeTextarea
	})
	if got := reg.Resolve(model.Field{Type: model.FieldTypeTextarea}); got != "rich-text" {
		t.Fatalf("expected higher priority matcher to win, got %q", got)
	}

	reg.Register("first", 200, func(model.Field) bool { return true })
	reg.Register("second", 200, func(model.Field) bool { return true })
	if got := reg.Resolve(model.Field{}); got != "first" {
		t.Fatalf("expected registration order to break ties, got %q", got)
	}
}

func TestSourceFor(t *testing.T) {
	cases := []struct {
		name   string
		widget string
		field  model.Field
		expect OptionSource
	}{
		{"candidate select ignores options", WidgetCandidateSelect, model.Field{Options: []model.Option{{Label: "x", Value: "x"}}}, SourceCandidateTypes},
		{"database wins over sentinel", WidgetSelect, model.Field{DataSource: model.DataSourceDatabase, LegacyCatalog: true}, SourceResolver},
		{"legacy sentinel", WidgetSelect, model.Field{DataSource: model.DataSourceStatic, LegacyCatalog: true}, SourceCandidateTypes},
		{"static list", WidgetSelect, model.Field{DataSource: model.DataSourceStatic}, SourceStatic},
		{"non select", WidgetDate, model.Field{}, SourceNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SourceFor(tc.widget, tc.field); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}
