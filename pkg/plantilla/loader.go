package plantilla

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-plantillas/pkg/model"
)

// LoadFS walks fsys and parses every JSON/YAML plantilla document. A nil
// filesystem yields an empty set.
func LoadFS(fsys fs.FS) (*Set, error) {
	set, _ := NewSet()
	if fsys == nil {
		return set, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocument(name) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("plantilla: read %s: %w", name, err)
		}
		p, err := Decode(data, name)
		if err != nil {
			return err
		}
		return set.add(p)
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Decode parses one plantilla document. Documents either wrap the structure
// under "estructura" with metadata alongside, or are a bare structure with
// "secciones"/"campos" at the root. The id defaults to the file stem.
func Decode(data []byte, source string) (Plantilla, error) {
	root, err := decodeDocument(data, source)
	if err != nil {
		return Plantilla{}, err
	}

	stem := strings.TrimSuffix(path.Base(source), path.Ext(source))
	p := Plantilla{
		ID:     stem,
		Activa: true,
		Source: source,
	}
	if id := text(root["id"]); id != "" {
		p.ID = id
	}
	p.Nombre = text(root["nombre"])
	if p.Nombre == "" {
		p.Nombre = model.HumanizeLabel(p.ID)
	}
	p.Descripcion = text(root["descripcion"])
	p.EmpresaID = text(firstPresent(root, "empresaId", "empresa_id"))
	if active, ok := root["activa"].(bool); ok {
		p.Activa = active
	}

	raw, wrapped := root["estructura"]
	if !wrapped {
		raw = root
	}
	if encoded, ok := raw.(string); ok {
		structure, err := model.ParseJSON([]byte(encoded))
		if err != nil {
			return Plantilla{}, fmt.Errorf("plantilla: %s: %w", source, err)
		}
		p.Estructura = structure
	} else {
		p.Estructura = model.Parse(raw)
	}

	// An empty structure renders the empty state; repeated names would
	// overwrite each other in the submitted values.
	if err := model.Check(p.Estructura); err != nil && !model.IsEmptyStructure(err) {
		return Plantilla{}, fmt.Errorf("plantilla: %s: %w", source, err)
	}
	return p, nil
}

func decodeDocument(data []byte, source string) (map[string]any, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("plantilla: file %s is empty", source)
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err == nil && root != nil {
		return root, nil
	}
	root = nil
	if err := yaml.Unmarshal(data, &root); err == nil && root != nil {
		return root, nil
	}
	return nil, fmt.Errorf("plantilla: parse %s: invalid JSON or YAML", source)
}

func isDocument(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func firstPresent(node map[string]any, keys ...string) any {
	for _, key := range keys {
		if value, ok := node[key]; ok && value != nil {
			return value
		}
	}
	return nil
}

func text(value any) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(model.StringValue(value))
}
