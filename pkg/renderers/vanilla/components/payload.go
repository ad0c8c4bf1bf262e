package components

import (
	"github.com/goliatone/go-plantillas/pkg/catalog"
	"github.com/goliatone/go-plantillas/pkg/render"
	"github.com/goliatone/go-plantillas/pkg/widgets"
)

// FieldPayload flattens a planned field into the template data shared by the
// control templates and the field wrapper.
func FieldPayload(field render.RenderedField) map[string]any {
	f := field.Field
	payload := map[string]any{
		"id":              field.ID,
		"name":            f.Name,
		"label":           f.Label,
		"widget":          field.Widget,
		"inputType":       field.InputType,
		"placeholder":     f.Placeholder,
		"required":        f.Required,
		"disabled":        field.Disabled,
		"value":           field.Text,
		"checked":         field.Checked,
		"loading":         field.Loading,
		"badge":           field.Badge,
		"showDecorations": field.ShowDecorations,
		"errors":          stringsToAny(field.Errors),
		"options":         optionsPayload(field.Options),
	}
	if len(field.Errors) > 0 {
		payload["describedBy"] = field.ID + "-error"
	}
	if field.Width != nil {
		payload["widthClass"] = field.Width.Class()
		payload["widthStyle"] = field.Width.Style()
	}
	if f.MinLength != nil {
		payload["minLength"] = *f.MinLength
		payload["minLengthAttr"] = field.InputType != "number"
	}
	if field.Dates != nil {
		payload["min"] = field.Dates.MinAttr()
	}

	switch field.Source {
	case widgets.SourceResolver:
		projection := catalog.ProjectionFor(f)
		payload["catalog"] = f.DatabaseTable
		payload["labelKey"] = projection.LabelKey
		payload["valueKey"] = projection.ValueKey
	case widgets.SourceCandidateTypes:
		projection := catalog.DefaultProjection()
		payload["catalog"] = catalog.TableCandidateTypes
		payload["labelKey"] = projection.LabelKey
		payload["valueKey"] = projection.ValueKey
	}
	return payload
}

// ChromePayload exposes the localised chrome strings to templates.
func ChromePayload(chrome render.Chrome) map[string]any {
	return map[string]any{
		"loading":  chrome.Loading,
		"prompt":   chrome.Prompt,
		"save":     chrome.Save,
		"cancel":   chrome.Cancel,
		"empty":    chrome.Empty,
		"required": chrome.Required,
	}
}

func optionsPayload(options []render.OptionView) []any {
	out := make([]any, 0, len(options))
	for _, option := range options {
		out = append(out, map[string]any{
			"label":    option.Label,
			"value":    option.Value,
			"selected": option.Selected,
			"disabled": option.Disabled,
		})
	}
	return out
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
