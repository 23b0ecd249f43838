package schema

import "context"

// NamedSchema is one generation unit carved out of a schema document: a
// schema name, the raw schema payload handed to the type-generation engine,
// and any property descriptions harvested along the way. Descriptions are
// keyed by type name, then property name.
type NamedSchema struct {
	Name         string
	Raw          []byte
	Descriptions map[string]map[string]string
}

// Catalog splits a loaded document into named generation units. An OpenAPI
// document yields one unit per component schema; a bare JSON Schema yields a
// single unit.
type Catalog interface {
	Schemas(ctx context.Context, doc Document) ([]NamedSchema, error)
}
