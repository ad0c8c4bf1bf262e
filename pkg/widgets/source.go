package widgets

import "github.com/goliatone/go-plantillas/pkg/model"

// OptionSource identifies where a select widget reads its options from.
type OptionSource string

const (
	SourceNone           OptionSource = ""
	SourceResolver       OptionSource = "resolver"
	SourceCandidateTypes OptionSource = "candidate-types"
	SourceStatic         OptionSource = "static"
)

// SourceFor applies the option source precedence for a resolved widget:
// database declaration, then the legacy catalog sentinel, then the static
// list. The candidate select always reads the candidate-type catalog.
func SourceFor(widget string, field model.Field) OptionSource {
	switch widget {
	case WidgetCandidateSelect:
		return SourceCandidateTypes
	case WidgetSelect:
		switch {
		case field.IsDatabase():
			return SourceResolver
		case field.LegacyCatalog:
			return SourceCandidateTypes
		default:
			return SourceStatic
		}
	default:
		return SourceNone
	}
}
