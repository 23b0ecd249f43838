package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/docgen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/render"
	rendertemplate "github.com/weiAX95/auto-create-tsfile-cli/pkg/render/template"
	gotemplate "github.com/weiAX95/auto-create-tsfile-cli/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	defaultStyles    bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the built-in stylesheet into the page so the
// output is presentable without serving assets.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.defaultStyles = true
	}
}

// WithStylesheet links an external stylesheet by URL.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// Renderer lays an artifact out as a standalone HTML page. Theme CSS
// variables from RenderOptions surface as a :root style block; the theme
// asset named "stylesheet" is linked when the theme resolves it.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
	styles     string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	styles := ""
	if cfg.defaultStyles {
		styles = strings.TrimSpace(defaultStylesheet())
	}

	return &Renderer{
		templates:  renderer,
		stylesheet: cfg.stylesheet,
		styles:     styles,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, artifact docgen.Artifact, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	templateName := "templates/page.tmpl"
	if options.Theme != nil {
		if partial := strings.TrimSpace(options.Theme.Partials["docs.page"]); partial != "" {
			templateName = partial
		}
	}

	result, err := r.templates.RenderTemplate(templateName, map[string]any{
		"doc":              artifact,
		"graph":            artifact.MermaidGraph(),
		"stylesheet":       r.stylesheet,
		"theme_stylesheet": themeStylesheetURL(options.Theme),
		"styles":           r.styles,
		"theme_styles":     cssVarsStyle(options.Theme),
		"meta":             metaTags(options.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func themeStylesheetURL(cfg *theme.RendererConfig) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL("stylesheet")
}

func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// metaTags sorts metadata into a stable slice so identical inputs always
// render identical head sections.
func metaTags(metadata map[string]string) []map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tags := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		tags = append(tags, map[string]string{
			"name":    key,
			"content": metadata[key],
		})
	}
	return tags
}
