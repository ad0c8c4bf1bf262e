package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/validation"
)

func intPtr(v int) *int { return &v }

func structure() model.FormStructure {
	return model.FormStructure{Sections: []model.Section{
		{
			Title: "Contacto",
			Fields: []model.Field{
				{Name: "nombre", Label: "Nombre", Type: model.FieldTypeText, Required: true},
				{Name: "correo", Label: "Correo", Type: model.FieldTypeEmail, Required: true},
			},
		},
		{
			Title: "Documento",
			Fields: []model.Field{
				{Name: "cedula", Label: "Cédula", Type: model.FieldTypeNumber, Required: true, MinLength: intPtr(6)},
				{Name: "acepta", Label: "Acepta términos", Type: model.FieldTypeCheckbox, Required: true},
				{Name: "nota", Label: "Nota", Type: model.FieldTypeTextarea},
			},
		},
	}}
}

func TestValidate_CollectsEveryViolationInVisualOrder(t *testing.T) {
	values := map[string]any{
		"nombre": "   ",
		"correo": "ana@",
		"cedula": "123",
		"acepta": false,
	}

	got := validation.Validate(structure(), values)
	want := []string{
		`El campo "Nombre" es requerido`,
		`El campo "Correo" debe ser un email válido`,
		`El campo "Cédula" debe tener al menos 6 dígitos`,
		`El campo "Acepta términos" es requerido`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(got, validation.Validate(structure(), values)); diff != "" {
		t.Fatalf("validation must be idempotent (-first +second):\n%s", diff)
	}
}

func TestValidate_ValidValues(t *testing.T) {
	values := map[string]any{
		"nombre": "Ana",
		"correo": "ana@example.com",
		"cedula": 1234567,
		"acepta": true,
	}
	if got := validation.Validate(structure(), values); len(got) != 0 {
		t.Fatalf("expected no errors, got %v", got)
	}
}

func TestValidate_EmptyOptionalFieldsSkipFormatRules(t *testing.T) {
	s := model.FormStructure{Fields: []model.Field{
		{Name: "correo", Label: "Correo", Type: model.FieldTypeEmail},
		{Name: "codigo", Label: "Código", Type: model.FieldTypeText, MinLength: intPtr(4)},
	}}
	if got := validation.Validate(s, map[string]any{"correo": ""}); len(got) != 0 {
		t.Fatalf("expected no errors for blank optional fields, got %v", got)
	}
	got := validation.Validate(s, map[string]any{"codigo": "ñandú"})
	if len(got) != 0 {
		t.Fatalf("length must count characters, got %v", got)
	}
}

func TestValidate_WhitespaceOnlyValuesReachFormatRules(t *testing.T) {
	s := model.FormStructure{Fields: []model.Field{
		{Name: "correo", Label: "Correo", Type: model.FieldTypeEmail},
		{Name: "cedula", Label: "Cédula", Type: model.FieldTypeText, MinLength: intPtr(6)},
		{Name: "nombre", Label: "Nombre", Type: model.FieldTypeText, Required: true},
	}}
	got := validation.Validate(s, map[string]any{"correo": "   ", "cedula": "  ", "nombre": "   "})
	want := []string{
		`El campo "Correo" debe ser un email válido`,
		`El campo "Cédula" debe tener al menos 6 dígitos`,
		`El campo "Nombre" es requerido`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_RequiredAndLengthBothReported(t *testing.T) {
	s := model.FormStructure{Fields: []model.Field{
		{Name: "correo", Label: "Correo", Type: model.FieldTypeEmail, Required: true, MinLength: intPtr(10)},
	}}
	got := validation.Validate(s, map[string]any{"correo": "a@b"})
	want := []string{
		`El campo "Correo" debe tener al menos 10 dígitos`,
		`El campo "Correo" debe ser un email válido`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckAndFieldErrors(t *testing.T) {
	issues := validation.Check(structure(), map[string]any{"correo": "x"})
	grouped := validation.FieldErrors(issues)
	want := map[string][]string{
		"nombre": {`El campo "Nombre" es requerido`},
		"correo": {`El campo "Correo" debe ser un email válido`},
		"cedula": {`El campo "Cédula" es requerido`},
		"acepta": {`El campo "Acepta términos" es requerido`},
	}
	if diff := cmp.Diff(want, grouped); diff != "" {
		t.Fatalf("grouped errors mismatch (-want +got):\n%s", diff)
	}
	if issues[0].Rule != validation.RuleRequired {
		t.Fatalf("unexpected rule %q", issues[0].Rule)
	}
}
