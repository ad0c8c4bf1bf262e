package model

import (
	"errors"
	"fmt"
)

var (
	errStructureEmpty = errors.New("model check: structure defines no fields")
)

// Check reports structural problems that the parser tolerates but a stored
// plantilla should not carry: no fields at all, or duplicate field names
// within one section (or within the legacy flat list).
func Check(structure FormStructure) error {
	if len(structure.AllFields()) == 0 {
		return errStructureEmpty
	}
	if structure.Legacy() {
		return checkUnique(structure.Fields, "campos")
	}
	for idx, section := range structure.Sections {
		if err := checkUnique(section.Fields, fmt.Sprintf("secciones[%d]", idx)); err != nil {
			return err
		}
	}
	return nil
}

func checkUnique(fields []Field, scope string) error {
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("model check: %s declares field %q more than once", scope, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

// IsEmptyStructure reports whether err came from Check on a structure with no
// fields.
func IsEmptyStructure(err error) bool {
	return errors.Is(err, errStructureEmpty)
}
