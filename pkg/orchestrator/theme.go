package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/render"
)

// ThemeSelector resolves a theme selection by name and variant. The
// go-theme registry satisfies this contract.
type ThemeSelector interface {
	Select(name, variant string, options ...theme.QueryOption) (*theme.Selection, error)
}

// WithThemeSelector injects a selector consulted on every request that
// names a theme.
func WithThemeSelector(selector ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider injects a selector together with the theme name and
// variant applied when a request names none.
func WithThemeProvider(provider ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = provider
		o.themeName = name
		o.themeVariant = variant
	}
}

// defaultThemeFallbacks maps logical partial names to the built-in
// templates used when a theme does not override them.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"docs.page": "templates/page.tmpl",
	}
}

// resolveTheme fills options.Theme from the configured selector. Requests
// without a theme name (and no orchestrator-level default) leave the
// options untouched.
func (o *Orchestrator) resolveTheme(options *render.RenderOptions, req Request) error {
	if o.themeSelector == nil || options == nil {
		return nil
	}

	name := strings.TrimSpace(req.ThemeName)
	if name == "" {
		name = o.themeName
	}
	variant := strings.TrimSpace(req.ThemeVariant)
	if variant == "" {
		variant = o.themeVariant
	}
	if name == "" {
		return nil
	}

	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return fmt.Errorf("orchestrator: select theme %q: %w", name, err)
	}
	if selection == nil {
		return nil
	}

	options.Theme = rendererThemeConfig(selection)
	return nil
}

// rendererThemeConfig flattens a selection into the renderer-facing config:
// fallback partials under base then variant overrides, merged tokens, CSS
// variables derived from tokens, and an asset resolver rooted at the
// manifest prefix.
func rendererThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: defaultThemeFallbacks(),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	manifest := selection.Manifest
	var variant theme.Variant
	if manifest != nil {
		if v, ok := manifest.Variants[selection.Variant]; ok {
			variant = v
		}
		mergeInto(cfg.Partials, manifest.Templates)
		mergeInto(cfg.Tokens, manifest.Tokens)
	}
	mergeInto(cfg.Partials, variant.Templates)
	mergeInto(cfg.Tokens, variant.Tokens)

	for token, value := range cfg.Tokens {
		cfg.CSSVars["--"+token] = value
	}

	cfg.AssetURL = assetResolver(manifest, variant)
	return cfg
}

func assetResolver(manifest *theme.Manifest, variant theme.Variant) func(string) string {
	files := map[string]string{}
	prefix := ""
	if manifest != nil {
		prefix = manifest.Assets.Prefix
		mergeInto(files, manifest.Assets.Files)
	}
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	mergeInto(files, variant.Assets.Files)
	prefix = strings.TrimSuffix(prefix, "/")

	return func(name string) string {
		file, ok := files[name]
		if !ok || file == "" {
			return ""
		}
		return prefix + "/" + file
	}
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
