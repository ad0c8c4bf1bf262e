package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-plantillas/pkg/model"
)

// Transformer mutates a FormStructure after parsing and before planning.
type Transformer interface {
	Transform(ctx context.Context, structure *model.FormStructure) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, structure *model.FormStructure) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, structure *model.FormStructure) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, structure)
}

// PresetTransformer applies declarative per-field patches loaded from a JSON
// or YAML document:
//
//	{
//	  "fields": {
//	    "documento": {"label": "Cédula", "required": true, "colspan": 6}
//	  }
//	}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
	Validacion  string `json:"validacion" yaml:"validacion"`
	Required    *bool  `json:"required" yaml:"required"`
	Colspan     any    `json:"colspan" yaml:"colspan"`
	Rename      string `json:"rename" yaml:"rename"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(trimmed, &document); err != nil {
		if yamlErr := yaml.Unmarshal(trimmed, &document); yamlErr != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", yamlErr)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Every patched field must exist.
func (t *PresetTransformer) Transform(ctx context.Context, structure *model.FormStructure) error {
	if structure == nil {
		return errors.New("preset transformer: structure is nil")
	}
	for name, patch := range t.document.Fields {
		if err := ctx.Err(); err != nil {
			return err
		}
		field := findField(structure, name)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", name)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.Validacion != "" {
		field.Validation = patch.Validacion
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Colspan != nil {
		field.Width = patch.Colspan
	}
	if name := strings.TrimSpace(patch.Rename); name != "" {
		field.Name = name
	}
}

func findField(structure *model.FormStructure, name string) *model.Field {
	name = strings.TrimSpace(name)
	for s := range structure.Sections {
		fields := structure.Sections[s].Fields
		for i := range fields {
			if fields[i].Name == name {
				return &fields[i]
			}
		}
	}
	for i := range structure.Fields {
		if structure.Fields[i].Name == name {
			return &structure.Fields[i]
		}
	}
	return nil
}
