// Package orchestrator wires the parse → transform → plan → render pipeline
// behind a single entry point, resolving themes and catalogs along the way.
package orchestrator
