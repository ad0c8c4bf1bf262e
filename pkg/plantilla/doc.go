// Package plantilla models reusable form templates: a named Form Structure
// that can be assigned to a company. Plantillas are loaded from JSON or YAML
// documents found in an fs.FS, or stored through pkg/store.
package plantilla
