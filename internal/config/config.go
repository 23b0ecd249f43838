// Package config resolves the .tsfile.yml project configuration. Values
// layer in fixed order: built-in defaults, then the config file, then any
// caller-applied flag values, then TSFILE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when no path is given.
const DefaultPath = ".tsfile.yml"

// Config mirrors the .tsfile.yml document.
type Config struct {
	Schema    SchemaConfig    `yaml:"schema"`
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
	Docs      DocsConfig      `yaml:"docs"`
}

// SchemaConfig names the schema document and its format.
type SchemaConfig struct {
	// Source is a file path or http(s) URL.
	Source string `yaml:"source"`

	// Format is auto, openapi or jsonschema.
	Format string `yaml:"format"`
}

// GeneratorConfig shapes the type-generation engine invocation.
type GeneratorConfig struct {
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args,omitempty"`
	Language string   `yaml:"language"`
	Prefix   string   `yaml:"prefix,omitempty"`
	Suffix   string   `yaml:"suffix,omitempty"`

	// URL switches generation to the HTTP engine when set.
	URL string `yaml:"url,omitempty"`
}

// OutputConfig names the directories written by the generate command.
type OutputConfig struct {
	TypesDir string `yaml:"types_dir"`
	DocsDir  string `yaml:"docs_dir"`
}

// DocsConfig toggles the documentation pieces and selects the renderer.
type DocsConfig struct {
	Examples bool     `yaml:"examples"`
	Graph    bool     `yaml:"graph"`
	Rules    bool     `yaml:"rules"`
	Renderer string   `yaml:"renderer"`
	Title    string   `yaml:"title,omitempty"`
	Types    []string `yaml:"types,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Schema: SchemaConfig{
			Format: "auto",
		},
		Generator: GeneratorConfig{
			Command:  "quicktype",
			Language: "typescript",
		},
		Output: OutputConfig{
			TypesDir: "types",
			DocsDir:  "docs",
		},
		Docs: DocsConfig{
			Examples: true,
			Graph:    true,
			Rules:    true,
			Renderer: "markdown",
		},
	}
}

// Load merges defaults with the named config file. An empty path falls back
// to DefaultPath when that file exists; a named path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv loads a .env file when present and applies TSFILE_* overrides.
// Environment values win over file and flag values.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	applyEnvString("TSFILE_SCHEMA_SOURCE", &c.Schema.Source)
	applyEnvString("TSFILE_SCHEMA_FORMAT", &c.Schema.Format)
	applyEnvString("TSFILE_GENERATOR_COMMAND", &c.Generator.Command)
	applyEnvString("TSFILE_GENERATOR_LANGUAGE", &c.Generator.Language)
	applyEnvString("TSFILE_GENERATOR_PREFIX", &c.Generator.Prefix)
	applyEnvString("TSFILE_GENERATOR_SUFFIX", &c.Generator.Suffix)
	applyEnvString("TSFILE_GENERATOR_URL", &c.Generator.URL)
	applyEnvString("TSFILE_OUTPUT_TYPES_DIR", &c.Output.TypesDir)
	applyEnvString("TSFILE_OUTPUT_DOCS_DIR", &c.Output.DocsDir)
	applyEnvString("TSFILE_DOCS_RENDERER", &c.Docs.Renderer)
	applyEnvString("TSFILE_DOCS_TITLE", &c.Docs.Title)
	applyEnvBool("TSFILE_DOCS_EXAMPLES", &c.Docs.Examples)
	applyEnvBool("TSFILE_DOCS_GRAPH", &c.Docs.Graph)
	applyEnvBool("TSFILE_DOCS_RULES", &c.Docs.Rules)
}

// Validate checks the resolved configuration after all layers applied.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Schema.Format)) {
	case "", "auto", "openapi", "jsonschema":
	default:
		return fmt.Errorf("config: unknown schema format %q", c.Schema.Format)
	}
	if strings.TrimSpace(c.Generator.Command) == "" && strings.TrimSpace(c.Generator.URL) == "" {
		return errors.New("config: generator needs a command or a url")
	}
	return nil
}

// Resolve is the single-call path for non-CLI consumers: file, then env,
// then validation.
func Resolve(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write serialises the configuration to path. Used by init scaffolding.
func (c Config) Write(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("config: write path is required")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func applyEnvString(key string, target *string) {
	value, ok := lookupEnv(key)
	if !ok {
		return
	}
	*target = value
}

// applyEnvBool keeps the current value when the variable is unset or not a
// recognised boolean.
func applyEnvBool(key string, target *bool) {
	raw, ok := lookupEnv(key)
	if !ok {
		return
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return
	}
	*target = value
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}
