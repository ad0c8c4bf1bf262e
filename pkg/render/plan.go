package render

import (
	"context"
	"regexp"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/layout"
	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/widgets"
)

// RenderedForm is the renderer-neutral view of a form: every field carries its
// widget, width policy, resolved options and current value.
type RenderedForm struct {
	Empty    bool
	Legacy   bool
	Sections []RenderedSection

	ReadOnly        bool
	HideFieldLabels bool
	ShowButtons     bool

	Action     string
	Method     string
	Hidden     []HiddenField
	FormErrors []string
	Chrome     Chrome
	Theme      *theme.RendererConfig
}

// RenderedSection groups planned fields. Legacy structures produce a single
// untitled section.
type RenderedSection struct {
	Title    string
	Icon     model.Icon
	Untitled bool
	Fields   []RenderedField
}

// RenderedField is the planned state of a single control.
type RenderedField struct {
	Field     model.Field
	ID        string
	Widget    string
	InputType string
	Source    widgets.OptionSource
	Width     layout.Policy

	Options []OptionView
	Loading bool

	Value   any
	Text    string
	Checked bool
	Dates   *DateBounds

	Errors          []string
	Disabled        bool
	Badge           string
	ShowDecorations bool
	HelpText        string
}

// OptionView is one entry of a select control.
type OptionView struct {
	Label    string
	Value    string
	Selected bool
	Disabled bool
}

// Fields flattens the planned fields in visual order.
func (f RenderedForm) Fields() []RenderedField {
	var out []RenderedField
	for _, section := range f.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// Field looks up a planned field by name.
func (f RenderedForm) Field(name string) (RenderedField, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.Field.Name == name {
				return field, true
			}
		}
	}
	return RenderedField{}, false
}

// Loading reports whether any field still waits for its options.
func (f RenderedForm) Loading() bool {
	for _, field := range f.Fields() {
		if field.Loading {
			return true
		}
	}
	return false
}

// Planner turns form structures into RenderedForm values.
type Planner struct {
	widgets *widgets.Registry
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithWidgetRegistry overrides the widget registry used for dispatch.
func WithWidgetRegistry(registry *widgets.Registry) PlannerOption {
	return func(p *Planner) {
		if registry != nil {
			p.widgets = registry
		}
	}
}

// NewPlanner constructs a Planner with the built-in widget registry.
func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{widgets: widgets.NewRegistry()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

var defaultPlanner = NewPlanner()

// Plan plans structure with the default planner.
func Plan(ctx context.Context, structure model.FormStructure, resolver catalog.Resolver, opts RenderOptions) RenderedForm {
	return defaultPlanner.Plan(ctx, structure, resolver, opts)
}

// Plan resolves widgets, widths, options, values and date bounds for every
// field. A nil resolver leaves database selects empty.
func (p *Planner) Plan(ctx context.Context, structure model.FormStructure, resolver catalog.Resolver, opts RenderOptions) RenderedForm {
	form := RenderedForm{
		Empty:           structure.Empty(),
		Legacy:          structure.Legacy(),
		ReadOnly:        opts.ReadOnly,
		HideFieldLabels: opts.HideFieldLabels,
		ShowButtons:     opts.ShowButtons && !opts.ReadOnly,
		Action:          opts.Action,
		Method:          opts.Method,
		Hidden:          SortedHiddenFields(opts.Hidden),
		Chrome:          buildChrome(opts),
		Theme:           opts.Theme,
	}
	if form.Empty {
		return form
	}

	mapped := MapErrorPayload(structure, opts.Errors)
	form.FormErrors = mapped.Form

	state := planState{
		ctx:      ctx,
		resolver: resolver,
		opts:     opts,
		now:      opts.now(),
		errors:   mapped.Fields,
		chrome:   form.Chrome,
	}

	if form.Legacy {
		form.Sections = []RenderedSection{{
			Untitled: true,
			Fields:   p.planFields(structure.Fields, state),
		}}
		return form
	}

	form.Sections = make([]RenderedSection, 0, len(structure.Sections))
	for _, section := range structure.Sections {
		form.Sections = append(form.Sections, RenderedSection{
			Title:  section.Title,
			Icon:   section.Icon,
			Fields: p.planFields(section.Fields, state),
		})
	}
	return form
}

type planState struct {
	ctx      context.Context
	resolver catalog.Resolver
	opts     RenderOptions
	now      time.Time
	errors   map[string][]string
	chrome   Chrome
}

func (p *Planner) planFields(fields []model.Field, state planState) []RenderedField {
	out := make([]RenderedField, 0, len(fields))
	for _, field := range fields {
		out = append(out, p.planField(field, state))
	}
	return out
}

func (p *Planner) planField(field model.Field, state planState) RenderedField {
	widget := p.widgets.Resolve(field)
	value := state.opts.Values[field.Name]

	planned := RenderedField{
		Field:           field,
		ID:              FieldID(field.Name),
		Widget:          widget,
		InputType:       inputType(widget),
		Source:          widgets.SourceFor(widget, field),
		Width:           layout.ComputeWidth(field.Width),
		Value:           value,
		Text:            valueText(value),
		Errors:          state.errors[field.Name],
		Disabled:        state.opts.ReadOnly,
		Badge:           TypeBadge(field.Type),
		ShowDecorations: !state.opts.HideFieldLabels,
		HelpText:        strings.TrimSpace(field.Validation),
	}
	switch widget {
	case widgets.WidgetCheckbox:
		planned.Checked = truthy(value)
	case widgets.WidgetDate:
		bounds := NewDateBounds(state.now, field.MinDays)
		planned.Dates = &bounds
	case widgets.WidgetSelect, widgets.WidgetCandidateSelect:
		planned.Options, planned.Loading = resolveOptions(state, field, planned.Source, planned.Text)
	}
	return planned
}

func resolveOptions(state planState, field model.Field, source widgets.OptionSource, current string) ([]OptionView, bool) {
	var options []catalog.Option
	switch source {
	case widgets.SourceStatic:
		options = make([]catalog.Option, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, catalog.Option{Label: option.Label, Value: option.Value})
		}
	case widgets.SourceResolver, widgets.SourceCandidateTypes:
		if state.resolver == nil {
			break
		}
		lookup := field
		projection := catalog.ProjectionFor(field)
		if source == widgets.SourceCandidateTypes {
			lookup = catalog.CandidateTypesField()
			projection = catalog.DefaultProjection()
		}
		result := state.resolver.Resolve(state.ctx, lookup)
		if result.Loading {
			return []OptionView{{Label: state.chrome.Loading, Disabled: true}}, true
		}
		options = catalog.ProjectAll(result.Data, projection)
	}

	views := make([]OptionView, 0, len(options)+1)
	found := false
	for _, option := range options {
		selected := current != "" && option.Value == current
		found = found || selected
		views = append(views, OptionView{Label: option.Label, Value: option.Value, Selected: selected})
	}
	if current != "" && !found {
		views = append(views, OptionView{Label: current, Value: current, Selected: true})
	}
	return views, false
}

func inputType(widget string) string {
	switch widget {
	case widgets.WidgetDate:
		return "date"
	case widgets.WidgetCheckbox:
		return "checkbox"
	case widgets.WidgetNumber:
		return "number"
	case widgets.WidgetEmail:
		return "email"
	default:
		return "text"
	}
}

func valueText(value any) string {
	if t, ok := value.(time.Time); ok {
		return t.Format(dateLayout)
	}
	if b, ok := value.(bool); ok {
		if b {
			return "true"
		}
		return ""
	}
	return model.StringValue(value)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "si", "sí":
			return true
		}
	}
	return false
}

var idUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// FieldID derives the DOM id of a field control.
func FieldID(name string) string {
	return "campo-" + strings.Trim(idUnsafe.ReplaceAllString(name, "-"), "-")
}
