package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weiAX95/auto-create-tsfile-cli/internal/config"
)

func TestLoadReturnsDefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
schema:
  source: api/openapi.yaml
  format: openapi
generator:
  prefix: Api
docs:
  examples: false
  title: Billing API Types
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Schema.Source != "api/openapi.yaml" || cfg.Schema.Format != "openapi" {
		t.Fatalf("schema section not merged: %+v", cfg.Schema)
	}
	if cfg.Generator.Prefix != "Api" {
		t.Fatalf("generator prefix not merged: %+v", cfg.Generator)
	}
	if cfg.Generator.Command != "quicktype" {
		t.Fatalf("unset generator command should keep default, got %q", cfg.Generator.Command)
	}
	if cfg.Docs.Examples {
		t.Fatalf("docs.examples should be disabled")
	}
	if !cfg.Docs.Graph || !cfg.Docs.Rules {
		t.Fatalf("untouched docs toggles should keep defaults: %+v", cfg.Docs)
	}
	if cfg.Docs.Title != "Billing API Types" {
		t.Fatalf("docs title not merged: %q", cfg.Docs.Title)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error for explicit missing path, got %v", err)
	}

	_, err = config.Load(writeConfig(t, "schema: [not: a: mapping"))
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TSFILE_SCHEMA_SOURCE", "https://example.com/openapi.json")
	t.Setenv("TSFILE_DOCS_RENDERER", "html")
	t.Setenv("TSFILE_DOCS_GRAPH", "false")
	t.Setenv("TSFILE_DOCS_RULES", "not-a-bool")
	t.Setenv("TSFILE_GENERATOR_SUFFIX", "  Dto  ")

	cfg := config.Default()
	cfg.ApplyEnv()

	if cfg.Schema.Source != "https://example.com/openapi.json" {
		t.Fatalf("schema source override missing: %q", cfg.Schema.Source)
	}
	if cfg.Docs.Renderer != "html" {
		t.Fatalf("renderer override missing: %q", cfg.Docs.Renderer)
	}
	if cfg.Docs.Graph {
		t.Fatalf("boolean override not applied")
	}
	if !cfg.Docs.Rules {
		t.Fatalf("unparseable boolean should keep the default")
	}
	if cfg.Generator.Suffix != "Dto" {
		t.Fatalf("env values should be trimmed, got %q", cfg.Generator.Suffix)
	}
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Schema.Format = "csv"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "unknown schema format") {
		t.Fatalf("expected format error, got %v", err)
	}

	cfg = config.Default()
	cfg.Generator.Command = ""
	cfg.Generator.URL = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "command or a url") {
		t.Fatalf("expected generator error, got %v", err)
	}

	if err := config.Default().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Schema.Source = "api/openapi.yaml"
	cfg.Docs.Types = []string{"Order", "Customer"}

	path := filepath.Join(t.TempDir(), config.DefaultPath)
	if err := cfg.Write(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tsfile.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
