package tsfile_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	tsfile "github.com/weiAX95/auto-create-tsfile-cli"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
)

func TestGenerateFromDeclarations(t *testing.T) {
	output, err := tsfile.GenerateFromDeclarations(context.Background(), strings.Join([]string{
		"interface Token {",
		"    value: string;",
		"    expires?: datetime;",
		"}",
	}, "\n"), "Token Reference")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	text := string(output)
	if !strings.HasPrefix(text, "# Token Reference\n") {
		t.Fatalf("output starts with %q", firstLine(text))
	}
	if !strings.Contains(text, "| `expires` | `datetime` | No | - |") {
		t.Fatalf("output missing property row:\n%s", text)
	}
}

func TestLoaderAndCatalogRoundTrip(t *testing.T) {
	files := fstest.MapFS{
		"schemas/session.json": &fstest.MapFile{
			Data: []byte(`{"title": "Session", "type": "object", "properties": {"token": {"type": "string"}}}`),
		},
	}

	loader := tsfile.NewLoader(schema.WithFileSystem(files))
	doc, err := loader.Load(context.Background(), schema.SourceFromFS("schemas/session.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	units, err := tsfile.NewCatalog().Schemas(context.Background(), doc)
	if err != nil {
		t.Fatalf("schemas: %v", err)
	}
	if len(units) != 1 || units[0].Name != "Session" {
		t.Fatalf("units = %+v, want one Session unit", units)
	}
}

func TestEngineConstructors(t *testing.T) {
	if got := tsfile.NewExecEngine("").Name(); got != "exec:quicktype" {
		t.Fatalf("exec engine name = %q", got)
	}
	if got := tsfile.NewExecEngine("typeconv").Name(); got != "exec:typeconv" {
		t.Fatalf("exec engine name = %q", got)
	}
	if got := tsfile.NewHTTPEngine("http://localhost:9000").Name(); got != "http" {
		t.Fatalf("http engine name = %q", got)
	}
}

func TestEmbeddedBundles(t *testing.T) {
	page, err := fs.ReadFile(tsfile.EmbeddedTemplates(), "templates/page.tmpl")
	if err != nil {
		t.Fatalf("read page template: %v", err)
	}
	if !strings.Contains(string(page), "tsfile-docs") {
		t.Fatal("page template missing docs wrapper class")
	}

	stylesheet, err := fs.ReadFile(tsfile.EmbeddedStylesheets(), "tsfile-docs.css")
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if len(stylesheet) == 0 {
		t.Fatal("stylesheet is empty")
	}
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
