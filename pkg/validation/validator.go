package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-plantillas/pkg/model"
)

// Rule names the check that produced an Issue.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleMinLength Rule = "minLength"
	RuleEmail     Rule = "email"
	RuleType      Rule = "type"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Issue is one violation tied to a field.
type Issue struct {
	Field   string `json:"field"`
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Validate returns the human-readable violations of values against
// structure. An empty result means the values are valid.
func Validate(structure model.FormStructure, values map[string]any) []string {
	issues := Check(structure, values)
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}

// Check is Validate with field attribution.
func Check(structure model.FormStructure, values map[string]any) []Issue {
	var issues []Issue
	for _, field := range structure.AllFields() {
		issues = append(issues, checkField(field, values[field.Name])...)
	}
	return issues
}

func checkField(field model.Field, value any) []Issue {
	var issues []Issue
	label := field.Label
	if label == "" {
		label = field.Name
	}

	if field.Required && isEmpty(value) {
		issues = append(issues, Issue{
			Field:   field.Name,
			Rule:    RuleRequired,
			Message: fmt.Sprintf(`El campo "%s" es requerido`, label),
		})
	}

	text, isText := textValue(value)
	// Whitespace-only text is blank for the required rule but is still
	// a value for the format rules.
	if !isText || text == "" {
		return issues
	}

	if field.MinLength != nil && utf8.RuneCountInString(text) < *field.MinLength {
		issues = append(issues, Issue{
			Field:   field.Name,
			Rule:    RuleMinLength,
			Message: fmt.Sprintf(`El campo "%s" debe tener al menos %d dígitos`, label, *field.MinLength),
		})
	}

	if field.Type == model.FieldTypeEmail && !emailPattern.MatchString(text) {
		issues = append(issues, Issue{
			Field:   field.Name,
			Rule:    RuleEmail,
			Message: fmt.Sprintf(`El campo "%s" debe ser un email válido`, label),
		})
	}
	return issues
}

// isEmpty treats nil, blank strings and false as unanswered.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return strings.TrimSpace(model.StringValue(v)) == ""
	}
}

// textValue returns the string form used by the length and email rules.
// Booleans have no text form.
func textValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil, bool:
		return "", false
	case string:
		return v, true
	default:
		text := model.StringValue(v)
		return text, text != ""
	}
}

// FieldErrors groups issues by field name for inline display.
func FieldErrors(issues []Issue) map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}
