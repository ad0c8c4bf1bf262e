package plantilla

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-plantillas/pkg/model"
)

// ErrNotFound is returned when a plantilla id is unknown.
var ErrNotFound = errors.New("plantilla: not found")

// Plantilla is a named Form Structure.
type Plantilla struct {
	ID          string              `json:"id"`
	Nombre      string              `json:"nombre"`
	Descripcion string              `json:"descripcion,omitempty"`
	EmpresaID   string              `json:"empresaId,omitempty"`
	Activa      bool                `json:"activa"`
	Estructura  model.FormStructure `json:"estructura"`
	// Source names the file the plantilla was loaded from.
	Source string `json:"-"`
}

// AvailableTo reports whether the plantilla may be used by empresaID. Global
// plantillas (no company) are available to everyone.
func (p Plantilla) AvailableTo(empresaID string) bool {
	if !p.Activa {
		return false
	}
	owner := strings.TrimSpace(p.EmpresaID)
	return owner == "" || owner == strings.TrimSpace(empresaID)
}

// StructureJSON encodes the form structure in its document shape.
func (p Plantilla) StructureJSON() ([]byte, error) {
	data, err := json.Marshal(p.Estructura)
	if err != nil {
		return nil, fmt.Errorf("plantilla: encode structure %q: %w", p.ID, err)
	}
	return data, nil
}

// Set is an immutable, id-indexed collection of plantillas.
type Set struct {
	items map[string]Plantilla
}

// NewSet indexes plantillas by id. Duplicate or blank ids are rejected.
func NewSet(plantillas ...Plantilla) (*Set, error) {
	set := &Set{items: make(map[string]Plantilla, len(plantillas))}
	for _, p := range plantillas {
		if err := set.add(p); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (s *Set) add(p Plantilla) error {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return fmt.Errorf("plantilla: empty id (source %s)", p.Source)
	}
	if existing, ok := s.items[id]; ok {
		return fmt.Errorf("plantilla: duplicate id %q (%s and %s)", id, existing.Source, p.Source)
	}
	p.ID = id
	s.items[id] = p
	return nil
}

// Get returns the plantilla registered under id.
func (s *Set) Get(id string) (Plantilla, error) {
	if s != nil {
		if p, ok := s.items[strings.TrimSpace(id)]; ok {
			return p, nil
		}
	}
	return Plantilla{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// List returns every plantilla sorted by id.
func (s *Set) List() []Plantilla {
	if s == nil {
		return nil
	}
	out := make([]Plantilla, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ForEmpresa lists the active plantillas available to empresaID.
func (s *Set) ForEmpresa(empresaID string) []Plantilla {
	var out []Plantilla
	for _, p := range s.List() {
		if p.AvailableTo(empresaID) {
			out = append(out, p)
		}
	}
	return out
}

// Len reports the number of plantillas.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
