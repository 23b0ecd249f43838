package tsfile

import (
	internalCatalog "github.com/weiAX95/auto-create-tsfile-cli/internal/schema/catalog"
	internalLoader "github.com/weiAX95/auto-create-tsfile-cli/internal/schema/loader"
	internalTypegen "github.com/weiAX95/auto-create-tsfile-cli/internal/typegen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/typegen"
)

// NewLoader constructs a schema loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewCatalog constructs the format-detecting schema catalog.
func NewCatalog() schema.Catalog {
	return internalCatalog.New()
}

// NewOpenAPICatalog constructs a catalog that only accepts OpenAPI
// documents.
func NewOpenAPICatalog() schema.Catalog {
	return internalCatalog.NewOpenAPI()
}

// NewJSONSchemaCatalog constructs a catalog for standalone JSON Schema
// documents.
func NewJSONSchemaCatalog() schema.Catalog {
	return internalCatalog.NewJSONSchema()
}

// NewExecEngine constructs the engine that shells out to a quicktype-style
// command. An empty command falls back to quicktype.
func NewExecEngine(command string, args ...string) typegen.Engine {
	return internalTypegen.NewExec(internalTypegen.ExecOptions{
		Command: command,
		Args:    args,
	})
}

// NewHTTPEngine constructs the engine that posts schema units to a remote
// generation service.
func NewHTTPEngine(endpoint string) typegen.Engine {
	return internalTypegen.NewHTTP(internalTypegen.HTTPOptions{
		Endpoint: endpoint,
	})
}
