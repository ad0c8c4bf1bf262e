package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/renderers/vanilla"
	"github.com/goliatone/go-plantillas/pkg/widgets"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithParser injects a custom structure parser.
func WithParser(parser model.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithResolver sets the catalog resolver used for database selects.
func WithResolver(resolver catalog.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithWidgetRegistry overrides widget dispatch.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.planner = render.NewPlanner(render.WithWidgetRegistry(registry))
		}
	}
}

// WithTransformer registers a Transformer that runs after parsing and before
// planning.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a schema document to rendered
// output. Defaults: JSON/YAML parser, vanilla renderer, no resolver.
type Orchestrator struct {
	parser          model.Parser
	planner         *render.Planner
	registry        *render.Registry
	defaultRenderer string
	resolver        catalog.Resolver
	transformers    []Transformer
	logger          logrus.FieldLogger

	themeSelector  theme.ThemeSelector
	themeFallbacks map[string]string
	defaultTheme   string
	defaultVariant string

	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Structure bypasses parsing when the caller already holds one.
	Structure *model.FormStructure
	// Schema is a raw JSON or YAML structure document.
	Schema []byte

	// Renderer names the renderer; empty selects the default.
	Renderer string

	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant select a theme through the configured
	// selector. Empty values use the defaults.
	ThemeName    string
	ThemeVariant string
}

// Result is the outcome of Generate.
type Result struct {
	Output      []byte
	ContentType string
	Structure   model.FormStructure
	Form        render.RenderedForm
}

// Generate renders req and returns the output bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Render runs the full pipeline, keeping the intermediate structure and plan.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	structure, form, err := o.Plan(ctx, req)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	opts := req.RenderOptions
	opts.Theme = form.Theme
	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	o.logger.WithFields(logrus.Fields{
		"renderer": renderer.Name(),
		"fields":   len(structure.AllFields()),
		"loading":  form.Loading(),
	}).Debug("orchestrator: rendered form")

	return Result{
		Output:      output,
		ContentType: renderer.ContentType(),
		Structure:   structure,
		Form:        form,
	}, nil
}

// Plan parses, transforms and plans req without rendering.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (model.FormStructure, render.RenderedForm, error) {
	if ctx == nil {
		return model.FormStructure{}, render.RenderedForm{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormStructure{}, render.RenderedForm{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormStructure{}, render.RenderedForm{}, err
	}

	structure, err := o.resolveStructure(req)
	if err != nil {
		return model.FormStructure{}, render.RenderedForm{}, err
	}
	for _, transformer := range o.transformers {
		if err := transformer.Transform(ctx, &structure); err != nil {
			return model.FormStructure{}, render.RenderedForm{}, fmt.Errorf("orchestrator: transform structure: %w", err)
		}
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return model.FormStructure{}, render.RenderedForm{}, err
		}
		opts.Theme = cfg
	}

	form := o.planner.Plan(ctx, structure, o.resolver, opts)
	return structure, form, nil
}

// Parse decodes a raw schema document. JSON is tried first, then YAML.
func (o *Orchestrator) Parse(schema []byte) (model.FormStructure, error) {
	trimmed := bytes.TrimSpace(schema)
	if len(trimmed) == 0 {
		return model.FormStructure{}, nil
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		structure, err := o.parser.ParseJSON(trimmed)
		if err == nil {
			return structure, nil
		}
	}
	structure, err := o.parser.ParseYAML(trimmed)
	if err != nil {
		return model.FormStructure{}, fmt.Errorf("orchestrator: parse schema: %w", err)
	}
	return structure, nil
}

func (o *Orchestrator) resolveStructure(req Request) (model.FormStructure, error) {
	if req.Structure != nil {
		return cloneStructure(*req.Structure), nil
	}
	return o.Parse(req.Schema)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := strings.TrimSpace(name)
	if target == "" {
		target = o.defaultRenderer
	}
	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		o.logger = logger
	}
	if o.parser == nil {
		o.parser = model.NewParser()
	}
	if o.planner == nil {
		o.planner = render.NewPlanner()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New(vanilla.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

// cloneStructure copies the section and field slices so transformers never
// touch the caller's structure.
func cloneStructure(in model.FormStructure) model.FormStructure {
	out := model.FormStructure{Fields: append([]model.Field(nil), in.Fields...)}
	if in.Sections != nil {
		out.Sections = make([]model.Section, len(in.Sections))
		for i, section := range in.Sections {
			section.Fields = append([]model.Field(nil), section.Fields...)
			out.Sections[i] = section
		}
	}
	return out
}
