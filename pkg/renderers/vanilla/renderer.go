package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-plantillas/pkg/render"
	rendertemplate "github.com/goliatone/go-plantillas/pkg/render/template"
	gotemplate "github.com/goliatone/go-plantillas/pkg/render/template/gotemplate"
	"github.com/goliatone/go-plantillas/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-plantillas/pkg/widgets"
)

const (
	formTemplate  = "templates/form.tmpl"
	fieldTemplate = "templates/field.tmpl"

	partialForm  = "forms.form"
	partialField = "forms.field"

	defaultAssetBase = "/assets/plantillas"
)

// Renderer produces server-rendered HTML forms.
type Renderer struct {
	templates       rendertemplate.TemplateRenderer
	components      *components.Registry
	icons           IconSet
	classes         Classes
	assetBase       string
	stylesheet      string
	inlineStyles    bool
	catalogEndpoint string
	logger          logrus.FieldLogger
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := config{
		templateFS:   TemplatesFS(),
		components:   components.NewDefaultRegistry(),
		icons:        defaultIconSet(),
		classes:      DefaultClasses,
		assetBase:    defaultAssetBase,
		inlineStyles: true,
		logger:       logger,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if len(cfg.overrides) > 0 {
		registry := cfg.components.Clone()
		for name, descriptor := range cfg.overrides {
			if err := registry.Register(name, descriptor); err != nil {
				return nil, fmt.Errorf("vanilla renderer: %w", err)
			}
		}
		cfg.components = registry
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:       templates,
		components:      cfg.components,
		icons:           cfg.icons,
		classes:         cfg.classes,
		assetBase:       cfg.assetBase,
		stylesheet:      cfg.stylesheet,
		inlineStyles:    cfg.inlineStyles,
		catalogEndpoint: cfg.catalogEndpoint,
		logger:          cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the planned form as an HTML fragment.
func (r *Renderer) Render(ctx context.Context, form render.RenderedForm, _ render.RenderOptions) ([]byte, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	partials := themePartials(form.Theme)
	data := components.ComponentData{
		Template: r.templates,
		Partials: partials,
		Chrome:   form.Chrome,
	}

	used := make(map[string]struct{})
	hasCatalog := false
	sections := make([]any, 0, len(form.Sections))
	for idx, section := range form.Sections {
		fields := make([]any, 0, len(section.Fields))
		for _, field := range section.Fields {
			markup, err := r.renderField(field, data, partials)
			if err != nil {
				return nil, err
			}
			used[field.Widget] = struct{}{}
			if field.Source == widgets.SourceResolver || field.Source == widgets.SourceCandidateTypes {
				hasCatalog = true
			}
			fields = append(fields, markup)
		}
		sections = append(sections, map[string]any{
			"id":       "seccion-" + strconv.Itoa(idx+1),
			"title":    section.Title,
			"icon":     string(section.Icon),
			"iconSVG":  r.icons.markup(section.Icon),
			"untitled": section.Untitled,
			"fields":   fields,
		})
	}

	hidden := make([]any, 0, len(form.Hidden))
	for _, field := range form.Hidden {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	method := strings.ToLower(strings.TrimSpace(form.Method))
	if method == "" {
		method = "post"
	}

	payload := map[string]any{
		"form": map[string]any{
			"empty":       form.Empty,
			"legacy":      form.Legacy,
			"readOnly":    form.ReadOnly,
			"showButtons": form.ShowButtons,
			"action":      form.Action,
			"method":      method,
			"hidden":      hidden,
			"errors":      stringsToAny(form.FormErrors),
			"sections":    sections,
			"style":       cssVarsStyle(form.Theme),
			"theme":       themeName(form.Theme),
			"variant":     themeVariant(form.Theme),
		},
		"chrome":  components.ChromePayload(form.Chrome),
		"classes": r.classes.payload(),
		"styles":  r.stylesPayload(form.Theme),
		"scripts": r.scriptsPayload(form, used, hasCatalog),
	}
	if hasCatalog && !form.ReadOnly && r.catalogEndpoint != "" {
		payload["form"].(map[string]any)["catalogEndpoint"] = r.catalogEndpoint
	}

	name := formTemplate
	if candidate := strings.TrimSpace(partials[partialForm]); candidate != "" {
		name = candidate
	}
	result, err := r.templates.RenderTemplate(name, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"sections": len(form.Sections),
		"readOnly": form.ReadOnly,
	}).Debug("vanilla renderer: rendered form")
	return []byte(result), nil
}

func (r *Renderer) renderField(field render.RenderedField, data components.ComponentData, partials map[string]string) (string, error) {
	descriptor, ok := r.components.Descriptor(field.Widget)
	if !ok {
		r.logger.WithFields(logrus.Fields{
			"widget":     field.Widget,
			"field":      field.Field.Name,
			"registered": r.components.Names(),
		}).Warn("vanilla renderer: unknown widget, using text input")
		descriptor, ok = r.components.Descriptor(widgets.WidgetText)
	}
	if !ok {
		return "", fmt.Errorf("vanilla renderer: no component for widget %q", field.Widget)
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("vanilla renderer: field %q: %w", field.Field.Name, err)
	}

	payload := components.FieldPayload(field)
	payload["control"] = control.String()
	payload["helpHTML"] = SanitizeHelp(field.HelpText)

	name := fieldTemplate
	if candidate := strings.TrimSpace(partials[partialField]); candidate != "" {
		name = candidate
	}
	return r.templates.RenderTemplate(name, map[string]any{
		"field":   payload,
		"chrome":  components.ChromePayload(data.Chrome),
		"classes": r.classes.payload(),
	})
}

// stylesPayload picks, in order: an explicit stylesheet link, a theme
// resolved stylesheet, the inlined embedded stylesheet.
func (r *Renderer) stylesPayload(cfg *theme.RendererConfig) map[string]any {
	out := map[string]any{}
	if r.stylesheet != "" {
		out["href"] = r.stylesheet
		return out
	}
	if !r.inlineStyles {
		return out
	}
	if cfg != nil && cfg.AssetURL != nil {
		if href := strings.TrimSpace(cfg.AssetURL(StylesheetName)); href != "" {
			out["href"] = href
			return out
		}
	}
	out["inline"] = defaultStylesheet()
	return out
}

func (r *Renderer) scriptsPayload(form render.RenderedForm, used map[string]struct{}, hasCatalog bool) []any {
	if form.ReadOnly || !hasCatalog || r.catalogEndpoint == "" {
		return []any{}
	}
	names := make([]string, 0, len(used))
	for name := range used {
		names = append(names, name)
	}
	sort.Strings(names)

	_, scripts := r.components.Assets(names)
	out := make([]any, 0, len(scripts))
	for _, script := range scripts {
		out = append(out, map[string]any{
			"src":    r.assetURL(form.Theme, script.Src),
			"defer":  script.Defer,
			"async":  script.Async,
			"module": script.Module,
		})
	}
	return out
}

// assetURL resolves an asset through the theme first, then the asset base.
func (r *Renderer) assetURL(cfg *theme.RendererConfig, name string) string {
	if cfg != nil && cfg.AssetURL != nil {
		if resolved := strings.TrimSpace(cfg.AssetURL(name)); resolved != "" {
			return resolved
		}
	}
	return r.assetBase + "/" + name
}

func themePartials(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return cfg.Partials
}

func themeName(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.Theme
}

func themeVariant(cfg *theme.RendererConfig) string {
	if cfg == nil {
		return ""
	}
	return cfg.Variant
}

// cssVarsStyle renders the theme CSS variables as an inline style value,
// sorted by name.
func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := cleanCSS(key)
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+cleanCSS(cfg.CSSVars[key]))
	}
	return strings.Join(parts, "; ")
}

func cleanCSS(value string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\':
			return -1
		}
		return r
	}, value))
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
