package orchestrator

import (
	"context"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/render"
)

func TestOrchestrator_PassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
	}
	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "custom-variant",
		Manifest: manifest,
	}
	selector := &stubThemeSelector{selection: selection}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	_, err := orch.Generate(context.Background(), Request{
		Schema:       []byte(`{"campos":[{"name":"nombre"}]}`),
		ThemeName:    "custom-theme",
		ThemeVariant: "custom-variant",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("expected selector called once, got %d", len(selector.calls))
	}
	if selector.calls[0].name != "custom-theme" || selector.calls[0].variant != "custom-variant" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if renderer.form.Theme != cfg {
		t.Fatalf("expected planned form to carry the same theme config")
	}
	if cfg.Theme != "acme" || cfg.Variant != "custom-variant" {
		t.Fatalf("unexpected theme selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Partials[PartialInput]; got != defaultThemeFallbacks()[PartialInput] {
		t.Fatalf("partials not merged with fallbacks: got %s", got)
	}
	if cfg.CSSVars["--brand"] != "#123456" {
		t.Fatalf("css vars not derived from tokens")
	}
	if cfg.AssetURL == nil || cfg.AssetURL("missing") != "" {
		t.Fatalf("expected an asset resolver returning empty for unknown keys")
	}
}

func TestOrchestrator_WithThemeManifestsUsesDefaults(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":  "#123456",
			"radius": "4px",
		},
		Templates: map[string]string{
			PartialInput: "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"plantillas.css": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					PartialCheckbox: "themes/acme/dark/checkbox.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"plantillas-catalog.js": "catalog.dark.js",
					},
				},
			},
		},
	}

	renderer := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeManifests("acme", "dark", manifest),
	)

	structure := model.FormStructure{Fields: []model.Field{{Name: "nombre", Label: "Nombre", Type: model.FieldTypeText}}}
	if _, err := orch.Generate(context.Background(), Request{Structure: &structure}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("expected theme config passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.Partials[PartialInput] != "themes/acme/input.tmpl" {
		t.Fatalf("expected base template override, got %s", cfg.Partials[PartialInput])
	}
	if cfg.Partials[PartialCheckbox] != "themes/acme/dark/checkbox.tmpl" {
		t.Fatalf("expected variant template override, got %s", cfg.Partials[PartialCheckbox])
	}
	if cfg.Partials[PartialTextarea] != defaultThemeFallbacks()[PartialTextarea] {
		t.Fatalf("fallback partial not applied for textarea")
	}
	if cfg.Tokens["brand"] != "#654321" || cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("variant tokens not applied: %v %v", cfg.Tokens, cfg.CSSVars)
	}
	if cfg.CSSVars["--radius"] != "4px" {
		t.Fatalf("base tokens lost: %v", cfg.CSSVars)
	}
	if got := cfg.AssetURL("plantillas-catalog.js"); got != "/assets/themes/acme/catalog.dark.js" {
		t.Fatalf("unexpected script asset url: %s", got)
	}
	if got := cfg.AssetURL("plantillas.css"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("unexpected stylesheet asset url: %s", got)
	}
}

func TestManifestSelector_UnknownVariantFallsBack(t *testing.T) {
	selector, err := NewManifestSelector(&theme.Manifest{Name: "base", Version: "1.0.0", Tokens: map[string]string{"brand": "#000000"}})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "missing")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if selection.Theme != "base" || selection.Variant != "" {
		t.Fatalf("unexpected selection %+v", selection)
	}
	if _, err := selector.Select("otro", ""); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

type captureRenderer struct {
	options render.RenderOptions
	form    render.RenderedForm
}

func (r *captureRenderer) Name() string        { return "capture" }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, form render.RenderedForm, opts render.RenderOptions) ([]byte, error) {
	r.options = opts
	r.form = form
	return []byte("ok"), nil
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
