package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to
// customise their output without touching the synthesis pipeline.
type RenderOptions struct {
	// Theme carries the resolved theme configuration for renderers that
	// produce styled output. Styled renderers translate Tokens/CSSVars into
	// inline styles and use AssetURL for linked assets; text renderers
	// ignore it. Nil means unthemed.
	Theme *theme.RendererConfig

	// Metadata surfaces document-level values, such as the schema source
	// location or the generation engine name, that renderers may print in
	// headers or footers.
	Metadata map[string]string
}
