// Package typegen defines the contract for the external type-generation
// engines that turn schema units into declaration text. Implementations
// live under internal/typegen.
package typegen

import "context"

// Options shape how the engine names and renders generated declarations.
type Options struct {
	// Language selects the declaration language. Empty means typescript.
	Language string

	// Prefix and Suffix are affixes applied to the top-level type name.
	// Documentation references generated names verbatim, so the affixed
	// name is what readers see.
	Prefix string
	Suffix string
}

// TypeName returns the affixed top-level type name for a unit.
func (o Options) TypeName(name string) string {
	return o.Prefix + name + o.Suffix
}

// LanguageOrDefault resolves the target declaration language.
func (o Options) LanguageOrDefault() string {
	if o.Language == "" {
		return "typescript"
	}
	return o.Language
}

// Request carries one generation unit to an engine.
type Request struct {
	// Name is the unit name from the schema catalog, before affixes.
	Name string

	// Schema is the raw schema payload for the unit.
	Schema []byte

	// Options adjust naming and language for this request.
	Options Options
}

// Engine produces declaration text for a schema unit. Implementations are
// expected to be safe for sequential reuse across documents.
type Engine interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
