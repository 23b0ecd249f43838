package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
)

type mode int

const (
	modeAuto mode = iota
	modeOpenAPI
	modeJSONSchema
)

// Catalog implements schema.Catalog on top of kin-openapi. OpenAPI
// documents split into one generation unit per component schema; anything
// else is treated as a single bare schema unit.
type Catalog struct {
	mode mode
}

// Ensure the implementation satisfies the public interface.
var _ schema.Catalog = (*Catalog)(nil)

// New constructs a Catalog that detects the document format.
func New() schema.Catalog {
	return &Catalog{}
}

// NewOpenAPI constructs a Catalog that only accepts OpenAPI documents.
func NewOpenAPI() schema.Catalog {
	return &Catalog{mode: modeOpenAPI}
}

// NewJSONSchema constructs a Catalog that only accepts standalone JSON
// Schema documents.
func NewJSONSchema() schema.Catalog {
	return &Catalog{mode: modeJSONSchema}
}

// Schemas splits the document into named generation units in deterministic
// order: component schemas alphabetically, bare schemas as a single unit.
func (c *Catalog) Schemas(ctx context.Context, doc schema.Document) ([]schema.NamedSchema, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("schema catalog: document is empty")
	}

	switch c.mode {
	case modeOpenAPI:
		units, isOpenAPI, err := fromOpenAPI(ctx, raw)
		if err != nil {
			return nil, err
		}
		if !isOpenAPI {
			return nil, errors.New("schema catalog: document is not an OpenAPI specification")
		}
		return units, nil
	case modeJSONSchema:
		if looksLikeOpenAPI(raw) {
			return nil, errors.New("schema catalog: document is an OpenAPI specification, use the openapi format")
		}
		return fromBareSchema(doc, raw)
	default:
		units, isOpenAPI, err := fromOpenAPI(ctx, raw)
		if err != nil || isOpenAPI {
			return units, err
		}
		return fromBareSchema(doc, raw)
	}
}

func looksLikeOpenAPI(raw []byte) bool {
	var probe struct {
		OpenAPI string `json:"openapi"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.OpenAPI != ""
}

// fromOpenAPI handles full OpenAPI documents. Each component schema becomes
// a self-contained JSON Schema: the component under a $ref plus every
// component inlined under definitions, with reference targets rewritten so
// type-generation engines can resolve them without the enclosing document.
func fromOpenAPI(ctx context.Context, raw []byte) ([]schema.NamedSchema, bool, error) {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	spec, err := loader.LoadFromData(raw)
	if err != nil || spec == nil || spec.OpenAPI == "" {
		return nil, false, nil
	}
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, true, errors.New("schema catalog: document has no component schemas")
	}

	names := make([]string, 0, len(spec.Components.Schemas))
	for name := range spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	definitions := make(map[string]json.RawMessage, len(names))
	descriptions := make(map[string]map[string]string, len(names))
	for _, name := range names {
		ref := spec.Components.Schemas[name]
		payload, err := json.Marshal(ref)
		if err != nil {
			return nil, true, fmt.Errorf("schema catalog: marshal component %s: %w", name, err)
		}
		definitions[name] = json.RawMessage(bytes.ReplaceAll(
			payload,
			[]byte("#/components/schemas/"),
			[]byte("#/definitions/"),
		))
		if ref != nil && ref.Value != nil {
			collectPropertyDescriptions(name, ref.Value.Properties, descriptions)
		}
	}

	units := make([]schema.NamedSchema, 0, len(names))
	for _, name := range names {
		envelope, err := json.Marshal(map[string]any{
			"$ref":        "#/definitions/" + name,
			"definitions": definitions,
		})
		if err != nil {
			return nil, true, fmt.Errorf("schema catalog: assemble unit %s: %w", name, err)
		}
		// Generated declarations for one unit can pull in sibling types, so
		// every unit carries the full description table. Top-level entries
		// are copied because callers may add aliases per unit.
		units = append(units, schema.NamedSchema{
			Name:         name,
			Raw:          envelope,
			Descriptions: copyDescriptions(descriptions),
		})
	}
	return units, true, nil
}

// fromBareSchema handles standalone JSON Schema documents and plain JSON
// samples. The payload passes through untouched; the unit name comes from
// the schema title or the source location.
func fromBareSchema(doc schema.Document, raw []byte) ([]schema.NamedSchema, error) {
	var root openapi3.Schema
	if err := root.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("schema catalog: unrecognized document: %w", err)
	}

	name := unitName(root.Title, doc.Location())
	unit := schema.NamedSchema{
		Name:         name,
		Raw:          raw,
		Descriptions: map[string]map[string]string{},
	}
	collectPropertyDescriptions(name, root.Properties, unit.Descriptions)

	// Named subschemas under definitions or $defs document their own types.
	var envelope struct {
		Definitions map[string]json.RawMessage `json:"definitions"`
		Defs        map[string]json.RawMessage `json:"$defs"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		for defName, defRaw := range envelope.Definitions {
			collectRawDescriptions(defName, defRaw, unit.Descriptions)
		}
		for defName, defRaw := range envelope.Defs {
			collectRawDescriptions(defName, defRaw, unit.Descriptions)
		}
	}
	return []schema.NamedSchema{unit}, nil
}

func collectRawDescriptions(name string, raw json.RawMessage, into map[string]map[string]string) {
	var parsed openapi3.Schema
	if err := parsed.UnmarshalJSON(raw); err != nil {
		return
	}
	collectPropertyDescriptions(name, parsed.Properties, into)
}

func collectPropertyDescriptions(name string, properties openapi3.Schemas, into map[string]map[string]string) {
	if len(properties) == 0 {
		return
	}
	fields := map[string]string{}
	for property, ref := range properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		if description := strings.TrimSpace(ref.Value.Description); description != "" {
			fields[property] = description
		}
	}
	if len(fields) > 0 {
		into[name] = fields
	}
}

func copyDescriptions(descriptions map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(descriptions))
	for name, fields := range descriptions {
		out[name] = fields
	}
	return out
}

// unitName picks the generation unit name for a bare schema: the schema
// title when present, otherwise the capitalized source file stem.
func unitName(title, location string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	base := filepath.Base(location)
	if stem, _, _ := strings.Cut(base, "."); stem != "" && stem != "/" {
		return strings.ToUpper(stem[:1]) + stem[1:]
	}
	return "Schema"
}
