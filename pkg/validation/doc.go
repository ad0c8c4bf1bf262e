// Package validation checks a value map against a form structure.
//
// Validate walks the fields in visual order (sections, then fields within a
// section) and applies, per field, the required, minimum length and email
// rules. Every violation is collected; nothing short-circuits. Messages are
// the user-facing Spanish strings shown by the submission pipeline.
//
// SubmissionSchema exports the same structure as an OpenAPI schema describing
// the submission payload, and CheckPayload type-checks incoming payloads
// against it before the rules run.
package validation
