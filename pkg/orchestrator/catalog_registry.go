package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
)

// Schema format names understood by the default catalog registry.
const (
	FormatAuto       = "auto"
	FormatOpenAPI    = "openapi"
	FormatJSONSchema = "jsonschema"
)

// CatalogRegistry stores schema catalogs by format name.
type CatalogRegistry struct {
	mu       sync.RWMutex
	catalogs map[string]schema.Catalog
}

// NewCatalogRegistry creates an empty catalog registry.
func NewCatalogRegistry() *CatalogRegistry {
	return &CatalogRegistry{
		catalogs: make(map[string]schema.Catalog),
	}
}

// Register adds a catalog under a format name. Duplicate names return an
// error.
func (r *CatalogRegistry) Register(format string, catalog schema.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("orchestrator: catalog is required")
	}
	name := normalizeFormat(format)
	if name == "" {
		return fmt.Errorf("orchestrator: format name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.catalogs[name]; exists {
		return fmt.Errorf("orchestrator: format %q already registered", name)
	}

	r.catalogs[name] = catalog
	return nil
}

// MustRegister panics on registration failure.
func (r *CatalogRegistry) MustRegister(format string, catalog schema.Catalog) {
	if err := r.Register(format, catalog); err != nil {
		panic(err)
	}
}

// Get retrieves a catalog by format name.
func (r *CatalogRegistry) Get(format string) (schema.Catalog, error) {
	key := normalizeFormat(format)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: format name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	catalog, ok := r.catalogs[key]
	if !ok {
		return nil, fmt.Errorf("orchestrator: format %q not supported, available: %s", key, strings.Join(r.namesLocked(), ", "))
	}
	return catalog, nil
}

// List returns a sorted list of registered format names.
func (r *CatalogRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Has reports whether a format is registered.
func (r *CatalogRegistry) Has(format string) bool {
	key := normalizeFormat(format)
	if key == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.catalogs[key]
	return ok
}

func (r *CatalogRegistry) namesLocked() []string {
	names := make([]string, 0, len(r.catalogs))
	for name := range r.catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeFormat(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
