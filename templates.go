package tsfile

import (
	"io/fs"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML page templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// EmbeddedStylesheets exposes the built-in stylesheet bundle for callers
// that serve documentation pages over HTTP.
func EmbeddedStylesheets() fs.FS {
	return html.AssetsFS()
}
