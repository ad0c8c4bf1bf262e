package render

import "context"

// Renderer converts a planned form into a byte representation (HTML, a
// terminal transcript, a JSON payload).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form RenderedForm, options RenderOptions) ([]byte, error)
}
