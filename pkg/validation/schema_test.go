package validation_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/validation"
)

func TestSubmissionSchema(t *testing.T) {
	schema := validation.SubmissionSchema(structure())
	if err := schema.Validate(context.Background()); err != nil {
		t.Fatalf("schema must be valid: %v", err)
	}
	if diff := cmp.Diff([]string{"nombre", "correo", "cedula", "acepta"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("expected one property per field, got %d", len(schema.Properties))
	}
	if got := schema.Properties["cedula"].Value.Extensions["x-min-length"]; got != 6 {
		t.Fatalf("unexpected min length extension %#v", got)
	}

	raw, err := validation.SubmissionSchemaJSON(structure())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("schema json must decode: %v", err)
	}
	if _, ok := decoded["properties"].(map[string]any); !ok {
		t.Fatalf("expected properties object, got %#v", decoded["properties"])
	}
}

func TestCheckPayload(t *testing.T) {
	s := model.FormStructure{Fields: []model.Field{
		{Name: "edad", Label: "Edad", Type: model.FieldTypeNumber, Required: true},
		{Name: "fecha", Label: "Fecha", Type: model.FieldTypeDate},
		{Name: "acepta", Label: "Acepta", Type: model.FieldTypeCheckbox},
		{Name: "nombre", Label: "Nombre", Type: model.FieldTypeText},
	}}

	valid := map[string]any{"edad": "31", "fecha": "2024-02-01", "acepta": true, "nombre": nil, "extra": 1}
	if issues := validation.CheckPayload(s, valid); len(issues) != 0 {
		t.Fatalf("expected valid payload, got %+v", issues)
	}

	blank := map[string]any{"edad": "", "fecha": "", "acepta": ""}
	if issues := validation.CheckPayload(s, blank); len(issues) != 0 {
		t.Fatalf("blank values must pass the type check, got %+v", issues)
	}

	if issues := validation.CheckPayload(s, map[string]any{}); len(issues) != 0 {
		t.Fatalf("missing keys are left to Validate, got %+v", issues)
	}

	invalid := map[string]any{"edad": "treinta", "fecha": "01/02/2024", "acepta": "quizas", "nombre": "Ana"}
	issues := validation.CheckPayload(s, invalid)
	got := map[string]bool{}
	for _, issue := range issues {
		got[issue.Field] = true
		if issue.Rule != validation.RuleType {
			t.Fatalf("unexpected rule %q", issue.Rule)
		}
	}
	if diff := cmp.Diff(map[string]bool{"edad": true, "fecha": true, "acepta": true}, got); diff != "" {
		t.Fatalf("flagged fields mismatch (-want +got):\n%s", diff)
	}
}
