package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-plantillas/pkg/model"
)

const (
	numericPattern = `^(-?\d+(\.\d+)?)?$`
	datePattern    = `^(\d{4}-\d{2}-\d{2})?$`
	booleanPattern = `^(|true|false|on)$`

	extMinLength   = "x-min-length"
	extMinDays     = "x-dias-minimos"
	extDataSource  = "x-data-source"
	extTable       = "x-database-table"
	extOptions     = "x-opciones"
	extFieldType   = "x-field-type"
	extLegacyTypes = "x-tipos-candidatos"
)

// SubmissionSchema describes the payload a form produces: one property per
// field keyed by name. Blank values are always accepted; the required, length
// and email rules stay with Validate so messages are reported once.
func SubmissionSchema(structure model.FormStructure) *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	for _, field := range structure.AllFields() {
		root.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			root.Required = append(root.Required, field.Name)
		}
	}
	return root
}

// SubmissionSchemaJSON renders SubmissionSchema as indented JSON.
func SubmissionSchemaJSON(structure model.FormStructure) ([]byte, error) {
	payload, err := json.MarshalIndent(SubmissionSchema(structure), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("validation: encode schema: %w", err)
	}
	return payload, nil
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		schema = openapi3.NewAnyOfSchema(
			nullable(openapi3.NewFloat64Schema()),
			nullable(openapi3.NewStringSchema().WithPattern(numericPattern)),
		)
	case model.FieldTypeCheckbox:
		schema = openapi3.NewAnyOfSchema(
			nullable(openapi3.NewBoolSchema()),
			nullable(openapi3.NewStringSchema().WithPattern(booleanPattern)),
		)
	case model.FieldTypeDate:
		schema = openapi3.NewStringSchema().WithPattern(datePattern)
	default:
		schema = openapi3.NewStringSchema()
	}

	schema.Title = field.Label
	schema.Description = strings.TrimSpace(field.Validation)
	schema.Nullable = true
	schema.Extensions = map[string]any{extFieldType: string(field.Type)}
	if field.MinLength != nil {
		schema.Extensions[extMinLength] = *field.MinLength
	}
	if field.MinDays != nil {
		schema.Extensions[extMinDays] = *field.MinDays
	}
	if field.IsDatabase() {
		schema.Extensions[extDataSource] = string(field.DataSource)
		schema.Extensions[extTable] = field.DatabaseTable
	}
	if field.LegacyCatalog {
		schema.Extensions[extLegacyTypes] = true
	}
	if len(field.Options) > 0 {
		schema.Extensions[extOptions] = field.Options
	}
	return schema
}

func nullable(schema *openapi3.Schema) *openapi3.Schema {
	schema.Nullable = true
	return schema
}

// CheckPayload type-checks payload against the submission schema and returns
// one Issue per offending field.
func CheckPayload(structure model.FormStructure, payload map[string]any) []Issue {
	normalized, err := normalizePayload(payload)
	if err != nil {
		return []Issue{{Rule: RuleType, Message: err.Error()}}
	}

	err = SubmissionSchema(structure).VisitJSON(normalized, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	labels := make(map[string]string)
	for _, field := range structure.AllFields() {
		labels[field.Name] = field.Label
	}

	var issues []Issue
	seen := make(map[string]struct{})
	for _, schemaErr := range flattenSchemaErrors(err) {
		// Missing required keys are reported by Validate.
		if schemaErr.SchemaField == "required" {
			continue
		}
		name := ""
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			name = pointer[0]
		}
		if name != "" {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
		}
		if _, known := labels[name]; !known {
			continue
		}
		label := labels[name]
		if label == "" {
			label = name
		}
		issues = append(issues, Issue{
			Field:   name,
			Rule:    RuleType,
			Message: fmt.Sprintf(`El campo "%s" tiene un formato inválido`, label),
		})
	}
	return issues
}

func normalizePayload(payload map[string]any) (map[string]any, error) {
	if payload == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("validation: encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("validation: decode payload: %w", err)
	}
	return out, nil
}

func flattenSchemaErrors(err error) []*openapi3.SchemaError {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []*openapi3.SchemaError
		for _, inner := range multi {
			out = append(out, flattenSchemaErrors(inner)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return []*openapi3.SchemaError{schemaErr}
	}
	return nil
}
