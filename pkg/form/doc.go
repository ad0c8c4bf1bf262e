// Package form owns the mutable side of a rendered plantilla: the value map
// edited by the user and the submission session that validates it and hands
// it to the caller's save callback.
//
// A Session moves through Editing, Validating, Invalid, Valid and Submitted.
// Validation failures are reported through a Notifier as a single bulleted
// message and leave the values untouched; a successful validation calls the
// save callback exactly once with the full value map. Submitted is terminal
// until Reset seeds a fresh value map.
package form
