package orchestrator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/docgen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/orchestrator"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/render"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/typegen"
)

const petDeclarations = `
interface Pet {
    id: number;
    name: string;
    tag?: string;
}
`

const petSchema = `{"type":"object","properties":{"id":{"type":"integer"}}}`

func TestOrchestrator_GenerateFromDeclarations(t *testing.T) {
	orch := orchestrator.New()

	output, err := orch.Generate(context.Background(), orchestrator.Request{
		Declarations: petDeclarations,
		Name:         "Pet",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	text := string(output)
	if !strings.HasPrefix(text, "# Pet Types\n") {
		t.Fatalf("unexpected heading: %q", firstLine(text))
	}
	if !strings.Contains(text, "## Pet") {
		t.Fatalf("missing type section:\n%s", text)
	}
	if !strings.Contains(text, "| `tag` | `string` | No | - |") {
		t.Fatalf("missing optional property row:\n%s", text)
	}
}

func TestOrchestrator_GenerateFromDocument(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("pet.json"), []byte(petSchema))
	catalog := &stubCatalog{units: []schema.NamedSchema{{
		Name: "Pet",
		Raw:  []byte(petSchema),
		Descriptions: map[string]map[string]string{
			"Pet": {"id": "Unique identifier."},
		},
	}}}
	engine := &stubEngine{text: petDeclarations}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithEngine(engine),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	output, err := orch.Generate(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "ok" {
		t.Fatalf("unexpected renderer output: %s", output)
	}
	if catalog.calls != 1 {
		t.Fatalf("expected one catalog call, got %d", catalog.calls)
	}
	if engine.last.Name != "Pet" || string(engine.last.Schema) != petSchema {
		t.Fatalf("unexpected engine request: %+v", engine.last)
	}
	if renderer.last.Title != "Pet Types" {
		t.Fatalf("unexpected artifact title: %q", renderer.last.Title)
	}
	if len(renderer.last.Types) != 1 || renderer.last.Types[0].Name != "Pet" {
		t.Fatalf("unexpected artifact sections: %+v", renderer.last.Types)
	}
	if got := renderer.last.Types[0].Rows[0].Description; got != "Unique identifier." {
		t.Fatalf("schema description not propagated: %q", got)
	}
}

func TestOrchestrator_LoadsDocumentFromSource(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("pet.json"), []byte(petSchema))
	loader := &stubLoader{document: doc}
	catalog := &stubCatalog{units: []schema.NamedSchema{{Name: "Pet", Raw: []byte(petSchema)}}}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithLoader(loader),
		orchestrator.WithCatalog(catalog),
		orchestrator.WithEngine(&stubEngine{text: petDeclarations}),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Source: schema.SourceFromFile("pet.json"),
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected one loader call, got %d", loader.calls)
	}
}

func TestOrchestrator_RequiresAnInput(t *testing.T) {
	orch := orchestrator.New()

	_, err := orch.Generate(context.Background(), orchestrator.Request{})
	if err == nil || !strings.Contains(err.Error(), "source, document or declarations is required") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestOrchestrator_SelectsUnitByName(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("store.json"), []byte(petSchema))
	catalog := &stubCatalog{units: []schema.NamedSchema{
		{Name: "Pet", Raw: []byte(petSchema)},
		{Name: "Order", Raw: []byte(petSchema)},
	}}
	engine := &stubEngine{text: petDeclarations}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithEngine(engine),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Document: &doc,
		Name:     "order",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if engine.last.Name != "Order" {
		t.Fatalf("expected case-insensitive unit match, got %q", engine.last.Name)
	}

	_, err := orch.Generate(context.Background(), orchestrator.Request{Document: &doc})
	if err == nil || !strings.Contains(err.Error(), "name one of: Pet, Order") {
		t.Fatalf("expected ambiguity error, got %v", err)
	}

	_, err = orch.Generate(context.Background(), orchestrator.Request{
		Document: &doc,
		Name:     "Customer",
	})
	if err == nil || !strings.Contains(err.Error(), `schema "Customer" not found`) {
		t.Fatalf("expected unknown unit error, got %v", err)
	}
}

func TestOrchestrator_KeepsDescriptionsAcrossAffixes(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("pet.json"), []byte(petSchema))
	catalog := &stubCatalog{units: []schema.NamedSchema{{
		Name: "Pet",
		Raw:  []byte(petSchema),
		Descriptions: map[string]map[string]string{
			"Pet": {"id": "Unique identifier."},
		},
	}}}
	engine := &stubEngine{text: "interface ApiPet {\n    id: number;\n}\n"}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithEngine(engine),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Document:    &doc,
		TypeOptions: typegen.Options{Prefix: "Api"},
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if engine.last.Options.Prefix != "Api" {
		t.Fatalf("type options not forwarded: %+v", engine.last.Options)
	}
	if len(renderer.last.Types) != 1 || renderer.last.Types[0].Name != "ApiPet" {
		t.Fatalf("unexpected sections: %+v", renderer.last.Types)
	}
	if got := renderer.last.Types[0].Rows[0].Description; got != "Unique identifier." {
		t.Fatalf("description lost behind affixed name: %q", got)
	}
}

func TestOrchestrator_FallsBackToDefaultTypeOptions(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("pet.json"), []byte(petSchema))
	catalog := &stubCatalog{units: []schema.NamedSchema{{Name: "Pet", Raw: []byte(petSchema)}}}
	engine := &stubEngine{text: petDeclarations}
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithEngine(engine),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithTypeOptions(typegen.Options{Suffix: "Dto"}),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Document: &doc}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if engine.last.Options.Suffix != "Dto" {
		t.Fatalf("default type options not applied: %+v", engine.last.Options)
	}
}

func TestOrchestrator_RendererFallback(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("vanished"),
	)

	output, err := orch.Generate(context.Background(), orchestrator.Request{
		Declarations: petDeclarations,
		Name:         "Pet",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "ok" {
		t.Fatalf("expected fallback to sole registered renderer, got %s", output)
	}

	_, err = orch.Generate(context.Background(), orchestrator.Request{
		Declarations: petDeclarations,
		Name:         "Pet",
		Renderer:     "nope",
	})
	if err == nil || !strings.Contains(err.Error(), `renderer "nope"`) {
		t.Fatalf("expected explicit renderer error, got %v", err)
	}
}

func TestOrchestrator_FormatRoutesCatalogRegistry(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("pet.json"), []byte(petSchema))
	autoCatalog := &stubCatalog{units: []schema.NamedSchema{{Name: "Pet", Raw: []byte(petSchema)}}}
	openapiCatalog := &stubCatalog{units: []schema.NamedSchema{{Name: "Pet", Raw: []byte(petSchema)}}}

	catalogs := orchestrator.NewCatalogRegistry()
	catalogs.MustRegister(orchestrator.FormatOpenAPI, openapiCatalog)

	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithCatalog(autoCatalog),
		orchestrator.WithCatalogRegistry(catalogs),
		orchestrator.WithEngine(&stubEngine{text: petDeclarations}),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	if _, err := orch.Generate(context.Background(), orchestrator.Request{
		Document: &doc,
		Format:   "OpenAPI",
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if openapiCatalog.calls != 1 || autoCatalog.calls != 0 {
		t.Fatalf("format not routed: openapi=%d auto=%d", openapiCatalog.calls, autoCatalog.calls)
	}

	if _, err := orch.Generate(context.Background(), orchestrator.Request{Document: &doc}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if autoCatalog.calls != 1 {
		t.Fatalf("empty format should use the default catalog, got %d calls", autoCatalog.calls)
	}

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Document: &doc,
		Format:   "csv",
	})
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestOrchestrator_EmptyDocumentErrors(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("empty.json"), []byte(`{}`))
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithCatalog(&stubCatalog{}),
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{Document: &doc})
	if err == nil || !strings.Contains(err.Error(), "contains no schemas") {
		t.Fatalf("expected empty document error, got %v", err)
	}
}

func TestOrchestrator_UnitsListsCatalogOrder(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("store.json"), []byte(petSchema))
	catalog := &stubCatalog{units: []schema.NamedSchema{
		{Name: "Pet", Raw: []byte(petSchema)},
		{Name: "Order", Raw: []byte(petSchema)},
	}}

	orch := orchestrator.New(orchestrator.WithCatalog(catalog))

	names, err := orch.Units(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("units: %v", err)
	}
	if len(names) != 2 || names[0] != "Pet" || names[1] != "Order" {
		t.Fatalf("unexpected unit names: %v", names)
	}
}

func TestOrchestrator_ResolveUnitReturnsDeclarations(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("pet.json"), []byte(petSchema))
	catalog := &stubCatalog{units: []schema.NamedSchema{{
		Name: "Pet",
		Raw:  []byte(petSchema),
		Descriptions: map[string]map[string]string{
			"Pet": {"id": "Unique identifier."},
		},
	}}}
	engine := &stubEngine{text: petDeclarations}

	orch := orchestrator.New(
		orchestrator.WithCatalog(catalog),
		orchestrator.WithEngine(engine),
	)

	unit, err := orch.ResolveUnit(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("resolve unit: %v", err)
	}
	if unit.Name != "Pet" || unit.Declarations != petDeclarations {
		t.Fatalf("unexpected unit: %+v", unit)
	}
	if unit.Descriptions["Pet"]["id"] != "Unique identifier." {
		t.Fatalf("descriptions missing: %#v", unit.Descriptions)
	}
}

func TestOrchestrator_DeclarationsCarryCallerDescriptions(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Declarations: petDeclarations,
		Name:         "Pet",
		Descriptions: map[string]map[string]string{
			"Pet": {"name": "Display name."},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	rows := renderer.last.Types[0].Rows
	if rows[1].Name != "name" || rows[1].Description != "Display name." {
		t.Fatalf("caller descriptions not applied: %+v", rows)
	}
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

type stubLoader struct {
	document schema.Document
	err      error
	calls    int
}

func (s *stubLoader) Load(_ context.Context, _ schema.Source) (schema.Document, error) {
	s.calls++
	if s.err != nil {
		return schema.Document{}, s.err
	}
	return s.document, nil
}

type stubCatalog struct {
	units []schema.NamedSchema
	err   error
	calls int
}

func (s *stubCatalog) Schemas(_ context.Context, _ schema.Document) ([]schema.NamedSchema, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.units, nil
}

type stubEngine struct {
	text string
	err  error
	last typegen.Request
}

func (s *stubEngine) Name() string { return "stub" }

func (s *stubEngine) Generate(_ context.Context, req typegen.Request) (string, error) {
	s.last = req
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type stubRenderer struct {
	last docgen.Artifact
	opts render.RenderOptions
}

func (s *stubRenderer) Name() string { return "stub" }

func (s *stubRenderer) ContentType() string { return "text/plain" }

func (s *stubRenderer) Render(_ context.Context, artifact docgen.Artifact, options render.RenderOptions) ([]byte, error) {
	s.last = artifact
	s.opts = options
	return []byte("ok"), nil
}
