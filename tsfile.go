package tsfile

import (
	"context"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/orchestrator"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/render"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
)

// Request describes one documentation run; alias exported via the root
// package for convenience.
type Request = orchestrator.Request

// Unit pairs generated declaration text with its unit name and
// descriptions.
type Unit = orchestrator.Unit

// RenderOptions describes per-request overrides renderers can use, such as
// theme tokens or template partials.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module so callers can wire custom loaders, engines or renderers.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateMarkdown loads the schema source, generates declarations for the
// named unit, and returns the Markdown documentation. It is the simplest
// entry point for callers that just want the default output.
func GenerateMarkdown(ctx context.Context, source schema.Source, name string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source: source,
		Name:   name,
	})
}

// GenerateFromDeclarations documents declaration text the caller already
// has, bypassing the loader and the type-generation engine.
func GenerateFromDeclarations(ctx context.Context, declarations, title string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Declarations: declarations,
		Title:        title,
	})
}
