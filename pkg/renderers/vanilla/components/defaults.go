package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/widgets"
)

const (
	templatePrefix = "templates/components/"

	// CatalogScript is the asset that refreshes database selects in the
	// browser.
	CatalogScript = "plantillas-catalog.js"
)

// Partial keys a theme can override.
const (
	PartialInput    = "forms.input"
	PartialTextarea = "forms.textarea"
	PartialSelect   = "forms.select"
	PartialCheckbox = "forms.checkbox"
)

// NewDefaultRegistry returns a registry with a component for every built-in
// widget.
func NewDefaultRegistry() *Registry {
	registry := New()

	input := templateComponent(PartialInput, templatePrefix+"input.tmpl")
	for _, name := range []string{widgets.WidgetText, widgets.WidgetEmail, widgets.WidgetNumber, widgets.WidgetDate} {
		registry.MustRegister(name, Descriptor{Renderer: input})
	}
	registry.MustRegister(widgets.WidgetTextarea, Descriptor{
		Renderer: templateComponent(PartialTextarea, templatePrefix+"textarea.tmpl"),
	})
	registry.MustRegister(widgets.WidgetCheckbox, Descriptor{
		Renderer: templateComponent(PartialCheckbox, templatePrefix+"checkbox.tmpl"),
	})

	selectControl := templateComponent(PartialSelect, templatePrefix+"select.tmpl")
	catalogScripts := []Script{{Src: CatalogScript, Defer: true}}
	registry.MustRegister(widgets.WidgetSelect, Descriptor{
		Renderer: selectControl,
		Scripts:  catalogScripts,
	})
	registry.MustRegister(widgets.WidgetCandidateSelect, Descriptor{
		Renderer: selectControl,
		Scripts:  catalogScripts,
	})

	return registry
}

func templateComponent(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field render.RenderedField, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		name := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			name = candidate
		}

		rendered, err := data.Template.RenderTemplate(name, map[string]any{
			"field":  FieldPayload(field),
			"chrome": ChromePayload(data.Chrome),
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", name, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
