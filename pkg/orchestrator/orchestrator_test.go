package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/orchestrator"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/testsupport"
)

const yamlSchema = `
secciones:
  - titulo: Vinculación
    icono: briefcase
    campos:
      - name: cargo
        label: Cargo
        type: text
      - name: ciudad
        label: Ciudad
        type: select
        dataSource: database
        databaseTable: ciudades
        databaseValueField: id
      - name: documento
        label: Documento
        type: number
`

func TestOrchestrator_RendersYAMLWithCatalogs(t *testing.T) {
	resolver := catalog.NewSyncResolver(testsupport.SampleCatalogs(t))
	orch := orchestrator.New(orchestrator.WithResolver(resolver))

	result, err := orch.Render(context.Background(), orchestrator.Request{
		Schema:        []byte(yamlSchema),
		RenderOptions: render.RenderOptions{Now: testsupport.FixedNow, Values: map[string]any{"ciudad": "05001"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result.ContentType != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	html := string(result.Output)
	for _, want := range []string{
		"Vinculación",
		`<option value="Operativo">Operativo</option>`,
		`<option value="05001" selected>Medellín</option>`,
		`type="number"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}

	cargo, ok := result.Form.Field("cargo")
	if !ok || cargo.Widget != "candidate-select" {
		t.Fatalf("expected cargo to be a candidate select, got %+v", cargo)
	}
}

func TestOrchestrator_AppliesTransformers(t *testing.T) {
	fsys := fstest.MapFS{
		"preset.yaml": {Data: []byte("fields:\n  documento:\n    label: Cédula\n    required: true\n    colspan: 6\n")},
	}
	preset, err := orchestrator.NewPresetTransformerFromFS(fsys, "preset.yaml")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	called := false
	orch := orchestrator.New(
		orchestrator.WithTransformer(preset),
		orchestrator.WithTransformer(orchestrator.TransformerFunc(func(_ context.Context, s *model.FormStructure) error {
			called = true
			s.Sections[0].Title = "Datos laborales"
			return nil
		})),
	)

	original, err := orch.Parse([]byte(yamlSchema))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	structure, form, err := orch.Plan(context.Background(), orchestrator.Request{Structure: &original})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !called {
		t.Fatalf("expected function transformer to run")
	}
	documento, _ := form.Field("documento")
	if documento.Field.Label != "Cédula" || !documento.Field.Required {
		t.Fatalf("preset not applied: %+v", documento.Field)
	}
	if documento.Width.Style() != "width: 45%" {
		t.Fatalf("expected patched width, got %q", documento.Width.Style())
	}
	if structure.Sections[0].Title != "Datos laborales" {
		t.Fatalf("expected transformed title")
	}
	if original.Sections[0].Title != "Vinculación" || original.Sections[0].Fields[2].Label != "Documento" {
		t.Fatalf("transformers must not mutate the caller's structure")
	}
}

func TestOrchestrator_PresetUnknownField(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`{"fields":{"missing":{"label":"x"}}}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	orch := orchestrator.New(orchestrator.WithTransformer(preset))
	_, err = orch.Generate(context.Background(), orchestrator.Request{Schema: []byte(yamlSchema)})
	if err == nil || !strings.Contains(err.Error(), `field "missing" not found`) {
		t.Fatalf("expected missing field error, got %v", err)
	}
}

func TestOrchestrator_UnknownRenderer(t *testing.T) {
	orch := orchestrator.New()
	_, err := orch.Generate(context.Background(), orchestrator.Request{Schema: []byte(yamlSchema), Renderer: "pdf"})
	if err == nil || !strings.Contains(err.Error(), `renderer "pdf"`) {
		t.Fatalf("expected unknown renderer error, got %v", err)
	}
}

func TestOrchestrator_EmptySchemaRendersEmptyState(t *testing.T) {
	orch := orchestrator.New()
	out, err := orch.Generate(context.Background(), orchestrator.Request{Schema: []byte("  ")})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), "Esta plantilla no tiene campos configurados.") {
		t.Fatalf("expected empty state, got %s", out)
	}
}

func TestOrchestrator_InvalidSchema(t *testing.T) {
	orch := orchestrator.New()
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Schema: []byte("campos: [")}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOrchestrator_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orchestrator.New().Generate(ctx, orchestrator.Request{Schema: []byte(yamlSchema)}); err == nil {
		t.Fatalf("expected context error")
	}
}
