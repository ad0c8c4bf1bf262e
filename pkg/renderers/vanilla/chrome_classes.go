package vanilla

// Classes names the CSS classes applied to the form chrome.
type Classes struct {
	Form    string
	Section string
	Header  string
	Grid    string
	Field   string
	Actions string
	Errors  string
	Empty   string
}

// DefaultClasses match the embedded stylesheet.
var DefaultClasses = Classes{
	Form:    "pl-form",
	Section: "pl-section",
	Header:  "pl-section-header",
	Grid:    "pl-grid",
	Field:   "pl-field",
	Actions: "pl-actions",
	Errors:  "pl-errors",
	Empty:   "pl-empty",
}

func (c Classes) withDefaults() Classes {
	pick := func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	}
	return Classes{
		Form:    pick(c.Form, DefaultClasses.Form),
		Section: pick(c.Section, DefaultClasses.Section),
		Header:  pick(c.Header, DefaultClasses.Header),
		Grid:    pick(c.Grid, DefaultClasses.Grid),
		Field:   pick(c.Field, DefaultClasses.Field),
		Actions: pick(c.Actions, DefaultClasses.Actions),
		Errors:  pick(c.Errors, DefaultClasses.Errors),
		Empty:   pick(c.Empty, DefaultClasses.Empty),
	}
}

func (c Classes) payload() map[string]any {
	return map[string]any{
		"form":    c.Form,
		"section": c.Section,
		"header":  c.Header,
		"grid":    c.Grid,
		"field":   c.Field,
		"actions": c.Actions,
		"errors":  c.Errors,
		"empty":   c.Empty,
	}
}
