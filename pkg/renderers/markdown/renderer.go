package markdown

import (
	"context"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/docgen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/render"
)

// Renderer emits the canonical Markdown rendition of a documentation
// artifact. It is the default output format and involves no templating, so
// identical artifacts always produce identical bytes.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the markdown renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "markdown"
}

func (r *Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, artifact docgen.Artifact, _ render.RenderOptions) ([]byte, error) {
	return artifact.Markdown(), nil
}
