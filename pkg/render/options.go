package render

import (
	"time"

	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that shapes planning and output
// without mutating the form structure.
type RenderOptions struct {
	// HideFieldLabels suppresses the type badge and required marker next to
	// each label.
	HideFieldLabels bool
	// ReadOnly disables every control and drops change bindings.
	ReadOnly bool
	// ShowButtons renders the save and cancel actions.
	ShowButtons bool

	// Values pre-populates controls keyed by field name.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name. Keys that do
	// not match a field are shown as form-level errors.
	Errors map[string][]string
	// Now anchors date bounds. Zero means time.Now().
	Now time.Time

	// Action and Method describe the HTML form submission target.
	Action string
	Method string
	// Hidden carries extra hidden inputs (CSRF tokens, plantilla ids).
	Hidden map[string]string

	// Theme carries the resolved go-theme configuration for the renderer.
	Theme *theme.RendererConfig

	// Locale and Translator localise chrome strings such as button labels
	// and the loading placeholder. Missing translations fall back to the
	// Spanish defaults.
	Locale     string
	Translator Translator
}

func (o RenderOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}
