package render

import (
	"context"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/docgen"
)

// Renderer converts a documentation artifact into a byte representation
// (markdown, HTML, etc.). Renderers must not mutate the artifact.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, artifact docgen.Artifact, options RenderOptions) ([]byte, error)
}
