package plantillas

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/orchestrator"
	"github.com/goliatone/go-plantillas/pkg/render"
)

// RenderOptions describes per-request overrides such as prefilled values,
// server-side errors and read-only mode.
type RenderOptions = render.RenderOptions

// FormStructure aliases the parsed schema type.
type FormStructure = model.FormStructure

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML parses a JSON or YAML schema document and renders it with the
// named renderer (vanilla HTML when empty).
func GenerateHTML(ctx context.Context, schema []byte, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Schema:        schema,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// GenerateHTMLFromStructure renders an already parsed structure.
func GenerateHTMLFromStructure(ctx context.Context, structure FormStructure, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Structure:     &structure,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// WithResolver forwards a catalog resolver used for database selects.
func WithResolver(resolver catalog.Resolver) orchestrator.Option {
	return orchestrator.WithResolver(resolver)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeManifests registers manifests and selects defaultTheme and
// defaultVariant when a request names none.
func WithThemeManifests(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) orchestrator.Option {
	return orchestrator.WithThemeManifests(defaultTheme, defaultVariant, manifests...)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
