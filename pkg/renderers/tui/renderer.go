package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/validation"
	"github.com/goliatone/go-plantillas/pkg/widgets"
)

const dateLayout = "2006-01-02"

// Renderer implements render.Renderer for terminal sessions. Render prompts
// for every editable field and serializes the answers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	logger            logrus.FieldLogger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		logger:       logger,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for the form and returns the collected values.
func (r *Renderer) Render(ctx context.Context, form render.RenderedForm, opts render.RenderOptions) ([]byte, error) {
	state := NewState(opts.Values)
	if err := r.Fill(ctx, form, state); err != nil {
		return nil, err
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

// Fill prompts for every field of form and writes answers through each
// field's binding into target. Read-only fields are printed, not prompted.
func (r *Renderer) Fill(ctx context.Context, form render.RenderedForm, target render.ValueSetter) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}

	if form.Empty {
		return r.driver.Info(ctx, r.theme.InfoPrefix+form.Chrome.Empty)
	}
	for _, message := range form.FormErrors {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
	}

	for _, section := range form.Sections {
		if !section.Untitled {
			if err := r.driver.Info(ctx, r.theme.SectionPrefix+section.Title); err != nil {
				return err
			}
		}
		for _, field := range section.Fields {
			if err := r.promptField(ctx, form, field, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, form render.RenderedForm, field render.RenderedField, target render.ValueSetter) error {
	onChange := field.Bind(target)
	if onChange == nil {
		return r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.InfoPrefix, field.Field.Label, field.Text))
	}
	for _, message := range field.Errors {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
	}

	label := displayLabel(field)
	help := field.HelpText
	r.logger.WithField("field", field.Field.Name).WithField("widget", field.Widget).Debug("tui: prompting field")

	switch field.Widget {
	case widgets.WidgetCheckbox:
		return r.promptCheckbox(ctx, field, label, help, onChange)
	case widgets.WidgetSelect, widgets.WidgetCandidateSelect:
		return r.promptSelect(ctx, form, field, label, help, onChange)
	case widgets.WidgetDate:
		return r.promptDate(ctx, field, label, help, onChange)
	case widgets.WidgetTextarea:
		return r.promptText(ctx, field, label, help, true, onChange)
	default:
		return r.promptText(ctx, field, label, help, false, onChange)
	}
}

func (r *Renderer) promptText(ctx context.Context, field render.RenderedField, label, help string, multiline bool, onChange func(any) error) error {
	for {
		var response string
		var err error
		if multiline {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: field.Text, Help: help})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{
				Message:   label,
				Default:   field.Text,
				Help:      help,
				Validator: fieldValidator(field.Field),
			})
		}
		if err != nil {
			return err
		}
		if message := checkAnswer(field.Field, response); message != "" {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
			continue
		}
		return onChange(response)
	}
}

func (r *Renderer) promptCheckbox(ctx context.Context, field render.RenderedField, label, help string, onChange func(any) error) error {
	for {
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: field.Checked, Help: help})
		if err != nil {
			return err
		}
		if message := checkAnswer(field.Field, answer); message != "" {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
			continue
		}
		return onChange(answer)
	}
}

func (r *Renderer) promptSelect(ctx context.Context, form render.RenderedForm, field render.RenderedField, label, help string, onChange func(any) error) error {
	if field.Loading {
		return r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.InfoPrefix, field.Field.Label, form.Chrome.Loading))
	}

	labels := make([]string, 0, len(field.Options)+1)
	values := make([]string, 0, len(field.Options)+1)
	labels = append(labels, form.Chrome.Prompt)
	values = append(values, "")
	defaultIdx := 0
	for _, option := range field.Options {
		if option.Disabled {
			continue
		}
		if option.Selected {
			defaultIdx = len(labels)
		}
		labels = append(labels, option.Label)
		values = append(values, option.Value)
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf("Selección inválida para %s", field.Field.Label))
			continue
		}
		if message := checkAnswer(field.Field, values[idx]); message != "" {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
			continue
		}
		return onChange(values[idx])
	}
}

func (r *Renderer) promptDate(ctx context.Context, field render.RenderedField, label, help string, onChange func(any) error) error {
	bounds := field.Dates
	if bounds != nil && help == "" {
		help = "Fecha mínima: " + bounds.MinAttr()
	}
	for {
		response, err := r.driver.Input(ctx, InputConfig{Message: label + " (AAAA-MM-DD)", Default: field.Text, Help: help})
		if err != nil {
			return err
		}
		response = strings.TrimSpace(response)
		if message := checkAnswer(field.Field, response); message != "" {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
			continue
		}
		if response != "" && bounds != nil {
			day, err := time.ParseInLocation(dateLayout, response, bounds.Today.Location())
			if err != nil || bounds.Disabled(day) {
				_ = r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(`El campo "%s" debe ser una fecha desde %s`, field.Field.Label, bounds.MinAttr()))
				continue
			}
		}
		return onChange(response)
	}
}

// checkAnswer runs the submission rules against a single answer and returns
// the first message.
func checkAnswer(field model.Field, answer any) string {
	structure := model.FormStructure{Fields: []model.Field{field}}
	values := map[string]any{field.Name: answer}
	issues := validation.Check(structure, values)
	issues = append(issues, validation.CheckPayload(structure, values)...)
	if len(issues) == 0 {
		return ""
	}
	return issues[0].Message
}

func fieldValidator(field model.Field) func(string) error {
	return func(answer string) error {
		if message := checkAnswer(field, answer); message != "" {
			return errors.New(message)
		}
		return nil
	}
}

func displayLabel(field render.RenderedField) string {
	label := field.Field.Label
	if label == "" {
		label = field.Field.Name
	}
	if field.ShowDecorations && field.Field.Required {
		label += " *"
	}
	return label
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func flattenForm(values map[string]any) string {
	out := url.Values{}
	for key, value := range values {
		out.Set(key, model.StringValue(value))
	}
	return out.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, model.StringValue(values[key]))
	}
	return b.String()
}
