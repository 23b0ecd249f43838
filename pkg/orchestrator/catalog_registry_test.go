package orchestrator_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/orchestrator"
)

func TestCatalogRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := orchestrator.NewCatalogRegistry()
	catalog := &stubCatalog{}
	if err := registry.Register(orchestrator.FormatOpenAPI, catalog); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := registry.Get(" OpenAPI ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != catalog {
		t.Fatalf("unexpected catalog returned")
	}
}

func TestCatalogRegistryRejectsDuplicates(t *testing.T) {
	t.Parallel()

	registry := orchestrator.NewCatalogRegistry()
	if err := registry.Register(orchestrator.FormatAuto, &stubCatalog{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := registry.Register(orchestrator.FormatAuto, &stubCatalog{})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCatalogRegistryGetUnknownListsAvailable(t *testing.T) {
	t.Parallel()

	registry := orchestrator.NewCatalogRegistry()
	registry.MustRegister(orchestrator.FormatOpenAPI, &stubCatalog{})
	registry.MustRegister(orchestrator.FormatJSONSchema, &stubCatalog{})

	_, err := registry.Get("csv")
	if err == nil || !strings.Contains(err.Error(), "jsonschema, openapi") {
		t.Fatalf("expected available formats in error, got %v", err)
	}
}

func TestCatalogRegistryListSorted(t *testing.T) {
	t.Parallel()

	registry := orchestrator.NewCatalogRegistry()
	for _, format := range []string{orchestrator.FormatOpenAPI, orchestrator.FormatAuto, orchestrator.FormatJSONSchema} {
		registry.MustRegister(format, &stubCatalog{})
	}

	want := []string{"auto", "jsonschema", "openapi"}
	if diff := cmp.Diff(want, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("auto") {
		t.Fatalf("expected auto format to be present")
	}
	if registry.Has("") {
		t.Fatalf("blank format must not resolve")
	}
}
