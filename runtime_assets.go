package plantillas

import (
	"io/fs"

	"github.com/goliatone/go-plantillas/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and catalog loader script used by
// rendered forms.
//
// Typical mount:
//
//	mux.Handle("/assets/plantillas/",
//	  http.StripPrefix("/assets/plantillas/",
//	    http.FileServerFS(plantillas.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
