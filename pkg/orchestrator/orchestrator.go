package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	internalCatalog "github.com/weiAX95/auto-create-tsfile-cli/internal/schema/catalog"
	internalLoader "github.com/weiAX95/auto-create-tsfile-cli/internal/schema/loader"
	internalTypegen "github.com/weiAX95/auto-create-tsfile-cli/internal/typegen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/declaration"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/docgen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/render"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/renderers/html"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/renderers/markdown"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/typegen"
)

const defaultRendererName = "markdown"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom schema loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithCatalog injects the catalog used when a request names no format.
func WithCatalog(catalog schema.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithCatalogRegistry injects the registry consulted when a request names
// an explicit schema format.
func WithCatalogRegistry(registry *CatalogRegistry) Option {
	return func(o *Orchestrator) {
		o.catalogs = registry
	}
}

// WithEngine injects a custom type-generation engine.
func WithEngine(engine typegen.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithTypeOptions sets the default type-generation options applied when a
// request carries none.
func WithTypeOptions(options typegen.Options) Option {
	return func(o *Orchestrator) {
		o.typeOptions = options
	}
}

// WithExtractor injects a custom declaration extractor.
func WithExtractor(extractor *declaration.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithSynthesizer injects a custom documentation synthesizer.
func WithSynthesizer(synthesizer *docgen.Synthesizer) Option {
	return func(o *Orchestrator) {
		o.synthesizer = synthesizer
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can mutate the assembled
// document after extraction but before synthesis.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates the full pipeline from schema document to
// rendered documentation. It applies sensible defaults (exec engine,
// markdown renderer) while remaining open to dependency injection for
// advanced callers.
type Orchestrator struct {
	loader          schema.Loader
	catalog         schema.Catalog
	catalogs        *CatalogRegistry
	engine          typegen.Engine
	typeOptions     typegen.Options
	extractor       *declaration.Extractor
	synthesizer     *docgen.Synthesizer
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	themeSelector   ThemeSelector
	themeName       string
	themeVariant    string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to document one schema unit.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document or Declarations is supplied.
	Source schema.Source

	// Document allows callers to bypass the loader when they already have a
	// loaded payload.
	Document *schema.Document

	// Declarations bypasses schema loading and type generation entirely;
	// the text is documented as-is.
	Declarations string

	// Descriptions supplies property descriptions alongside Declarations,
	// keyed by type name then field name. Ignored when the schema pipeline
	// runs, which harvests its own.
	Descriptions map[string]map[string]string

	// Format names the schema format ("auto", "openapi", "jsonschema").
	// Empty uses the default catalog, which detects the format.
	Format string

	// Name selects which generation unit of the document to document. It
	// may be empty when the document yields exactly one unit.
	Name string

	// Title overrides the derived documentation title.
	Title string

	// TypeOptions adjusts the generated type names and target language for
	// this request. The zero value falls back to the orchestrator default.
	TypeOptions typegen.Options

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request rendering instructions. When
	// omitted, renderers receive the zero-value struct.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant select a theme for renderers that support
	// one. Empty values fall back to the orchestrator-level theme.
	ThemeName    string
	ThemeVariant string
}

// Unit pairs resolved declaration text with its unit name and any
// schema-provided property descriptions.
type Unit struct {
	Name         string
	Declarations string
	Descriptions map[string]map[string]string
}

// Generate executes the loader → catalog → engine → extractor → synthesizer
// → renderer sequence and returns the rendered bytes (Markdown for the
// default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	unit, err := o.resolveUnit(ctx, req)
	if err != nil {
		return nil, err
	}

	document := docgen.Document{
		Title:        documentTitle(req.Title, unit.Name),
		Model:        o.extractor.Extract(unit.Declarations),
		Descriptions: unit.Descriptions,
	}
	if err := o.applyTransformer(ctx, &document); err != nil {
		return nil, err
	}

	artifact, err := o.synthesizer.Synthesize(document)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: synthesize documentation: %w", err)
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if err := o.resolveTheme(&options, req); err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, artifact, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return output, nil
}

// ResolveUnit runs the schema half of the pipeline only: load, split,
// select one unit and generate its declaration text. Callers that persist
// the text can hand it back through Request.Declarations to render
// documentation without invoking the engine again.
func (o *Orchestrator) ResolveUnit(ctx context.Context, req Request) (Unit, error) {
	if err := o.ready(ctx); err != nil {
		return Unit{}, err
	}
	return o.resolveUnit(ctx, req)
}

// Units lists the unit names the request's document yields, in catalog
// order.
func (o *Orchestrator) Units(ctx context.Context, req Request) ([]string, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}

	units, err := o.resolveSchemas(ctx, req)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(units))
	for i, unit := range units {
		names[i] = unit.Name
	}
	return names, nil
}

// resolveUnit produces the declaration text to document together with the
// unit name and any schema-provided property descriptions.
func (o *Orchestrator) resolveUnit(ctx context.Context, req Request) (Unit, error) {
	if strings.TrimSpace(req.Declarations) != "" {
		return Unit{
			Name:         strings.TrimSpace(req.Name),
			Declarations: req.Declarations,
			Descriptions: req.Descriptions,
		}, nil
	}

	units, err := o.resolveSchemas(ctx, req)
	if err != nil {
		return Unit{}, err
	}

	unit, err := selectUnit(units, req.Name)
	if err != nil {
		return Unit{}, err
	}

	options := req.TypeOptions
	if options == (typegen.Options{}) {
		options = o.typeOptions
	}

	text, err := o.engine.Generate(ctx, typegen.Request{
		Name:    unit.Name,
		Schema:  unit.Raw,
		Options: options,
	})
	if err != nil {
		return Unit{}, fmt.Errorf("orchestrator: generate declarations: %w", err)
	}

	return Unit{
		Name:         unit.Name,
		Declarations: text,
		Descriptions: aliasDescriptions(unit.Descriptions, options),
	}, nil
}

func (o *Orchestrator) resolveSchemas(ctx context.Context, req Request) ([]schema.NamedSchema, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	catalog, err := o.catalogFor(req.Format)
	if err != nil {
		return nil, err
	}

	units, err := catalog.Schemas(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: catalog schemas: %w", err)
	}
	if len(units) == 0 {
		return nil, errors.New("orchestrator: document contains no schemas")
	}
	return units, nil
}

// ready guards the public entry points: a usable context, no latched
// initialise error, defaults in place.
func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.initialiseErr; err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source, document or declarations is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) catalogFor(format string) (schema.Catalog, error) {
	format = strings.TrimSpace(format)
	if format == "" {
		if o.catalog == nil {
			return nil, errors.New("orchestrator: catalog is nil")
		}
		return o.catalog, nil
	}
	if o.catalogs == nil {
		return nil, errors.New("orchestrator: catalog registry is nil")
	}
	return o.catalogs.Get(format)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, document *docgen.Document) error {
	if o.transformer == nil || document == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, document); err != nil {
		return fmt.Errorf("orchestrator: transform document: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.catalog == nil {
		o.catalog = internalCatalog.New()
	}
	if o.catalogs == nil {
		o.catalogs = NewCatalogRegistry()
		o.catalogs.MustRegister(FormatAuto, internalCatalog.New())
		o.catalogs.MustRegister(FormatOpenAPI, internalCatalog.NewOpenAPI())
		o.catalogs.MustRegister(FormatJSONSchema, internalCatalog.NewJSONSchema())
	}
	if o.engine == nil {
		o.engine = internalTypegen.NewExec(internalTypegen.ExecOptions{})
	}
	if o.extractor == nil {
		o.extractor = declaration.New()
	}
	if o.synthesizer == nil {
		o.synthesizer = docgen.New()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(markdown.New())
		htmlRenderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(htmlRenderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

// documentTitle derives the artifact heading: an explicit title wins, then
// the unit name with a " Types" suffix, then a generic fallback.
func documentTitle(title, name string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		return trimmed + " Types"
	}
	return "Generated Types"
}

// selectUnit picks one generation unit by name, or the only unit when the
// request names none.
func selectUnit(units []schema.NamedSchema, name string) (schema.NamedSchema, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if len(units) == 1 {
			return units[0], nil
		}
		return schema.NamedSchema{}, fmt.Errorf("orchestrator: document has %d schemas, name one of: %s", len(units), unitNames(units))
	}
	for _, unit := range units {
		if strings.EqualFold(unit.Name, name) {
			return unit, nil
		}
	}
	return schema.NamedSchema{}, fmt.Errorf("orchestrator: schema %q not found, available: %s", name, unitNames(units))
}

func unitNames(units []schema.NamedSchema) string {
	names := make([]string, 0, len(units))
	for _, unit := range units {
		names = append(names, unit.Name)
	}
	return strings.Join(names, ", ")
}

// aliasDescriptions re-keys description tables so they stay reachable after
// the engine applies name affixes: each type keeps its original entry and
// gains one under the affixed name.
func aliasDescriptions(descriptions map[string]map[string]string, options typegen.Options) map[string]map[string]string {
	if len(descriptions) == 0 {
		return nil
	}
	out := make(map[string]map[string]string, len(descriptions)*2)
	for name, fields := range descriptions {
		out[name] = fields
		if alias := options.TypeName(name); alias != name {
			out[alias] = fields
		}
	}
	return out
}
