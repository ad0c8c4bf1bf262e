package plantillas

import (
	"io/fs"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/plantilla"
)

// NewParser constructs a schema parser backed by the internal implementation.
func NewParser(options ...model.ParserOption) model.Parser {
	return model.NewParser(options...)
}

// LoadPlantillas reads every JSON/YAML plantilla document found in fsys.
func LoadPlantillas(fsys fs.FS) (*plantilla.Set, error) {
	return plantilla.LoadFS(fsys)
}
