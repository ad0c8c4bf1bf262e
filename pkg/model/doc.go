// Package model defines the typed form structure consumed by the renderers,
// the validator, and the submission pipeline. Parsing lives in internal/model
// and returns the types re-exported here.
//
// Schemas ("plantillas") are authored in a separate builder UI and arrive as
// untrusted JSON or YAML. Two shapes are accepted: the current
// {"secciones": [{"titulo", "icono", "campos": [...]}]} layout and the legacy
// flat {"campos": [...]} list. When both are present the sections win. Field
// and section nodes that are not objects are skipped rather than reported, so
// a half-edited schema still renders whatever is well formed.
//
// Width hints (colspan, dimension, gridColumnSpan) are kept raw on Field.Width
// in precedence order; pkg/layout turns them into a concrete width policy.
package model
