package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	structure := model.FormStructure{Sections: []model.Section{
		{Title: "Datos", Fields: []model.Field{{Name: "nombre"}, {Name: "correo"}}},
		{Title: "Cargo", Fields: []model.Field{{Name: "cargo"}}},
	}}

	payload := map[string][]string{
		"nombre":            {" El campo \"Nombre\" es requerido ", "El campo \"Nombre\" es requerido"},
		"/body/correo":      {"Email invalido"},
		"$.campos[2].cargo": {"Cargo desconocido"},
		"non_field_errors":  {"Plantilla inactiva"},
		"data.telefono":     {"Se pierde como error general"},
		"":                  {"  "},
	}

	mapped := render.MapErrorPayload(structure, payload)

	wantFields := map[string][]string{
		"nombre": {`El campo "Nombre" es requerido`},
		"correo": {"Email invalido"},
		"cargo":  {"Cargo desconocido"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Plantilla inactiva", "Se pierde como error general"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
