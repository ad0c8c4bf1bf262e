package plantilla

import (
	"embed"
	"io/fs"
)

//go:embed samples/*
var embeddedSamples embed.FS

// SamplesFS returns the bundled sample plantillas.
func SamplesFS() fs.FS {
	sub, err := fs.Sub(embeddedSamples, "samples")
	if err != nil {
		panic(err)
	}
	return sub
}
