package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/weiAX95/auto-create-tsfile-cli/internal/config"
	internalLoader "github.com/weiAX95/auto-create-tsfile-cli/internal/schema/loader"
	internalTypegen "github.com/weiAX95/auto-create-tsfile-cli/internal/typegen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/docgen"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/orchestrator"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/schema"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/typegen"
)

// generateFlags mirror the generate command line. Only flags the user
// actually set override the config file.
type generateFlags struct {
	configPath    string
	source        string
	format        string
	typesDir      string
	docsDir       string
	renderer      string
	title         string
	prefix        string
	suffix        string
	language      string
	engineCommand string
	engineURL     string
	noExamples    bool
	noGraph       bool
	noRules       bool
	types         []string
}

func newGenerateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate TypeScript declarations and their documentation",
		Long: "Fetches the configured schema document, runs every generation unit " +
			"through the type-generation engine, writes the declaration files and " +
			"renders one documentation artifact per unit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(flags.configPath, func(cfg *config.Config) {
				applyGenerateFlags(cmd, flags, cfg)
			})
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to .tsfile.yml")
	cmd.Flags().StringVar(&flags.source, "source", "", "schema document path or URL")
	cmd.Flags().StringVar(&flags.format, "format", "", "schema format: auto, openapi or jsonschema")
	cmd.Flags().StringVar(&flags.typesDir, "out-types", "", "directory for generated .ts files")
	cmd.Flags().StringVar(&flags.docsDir, "out-docs", "", "directory for documentation artifacts")
	cmd.Flags().StringVar(&flags.renderer, "renderer", "", "documentation renderer (markdown, html)")
	cmd.Flags().StringVar(&flags.title, "title", "", "documentation title override")
	cmd.Flags().StringVar(&flags.prefix, "prefix", "", "prefix for generated type names")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "suffix for generated type names")
	cmd.Flags().StringVar(&flags.language, "language", "", "declaration language passed to the engine")
	cmd.Flags().StringVar(&flags.engineCommand, "engine", "", "type-generation command")
	cmd.Flags().StringVar(&flags.engineURL, "engine-url", "", "type-generation service URL (overrides --engine)")
	cmd.Flags().BoolVar(&flags.noExamples, "no-examples", false, "skip example literals")
	cmd.Flags().BoolVar(&flags.noGraph, "no-graph", false, "skip the dependency graph")
	cmd.Flags().BoolVar(&flags.noRules, "no-rules", false, "skip validation rules")
	cmd.Flags().StringSliceVar(&flags.types, "types", nil, "restrict documentation to the named types")

	return cmd
}

func applyGenerateFlags(cmd *cobra.Command, flags generateFlags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("source") {
		cfg.Schema.Source = flags.source
	}
	if set("format") {
		cfg.Schema.Format = flags.format
	}
	if set("out-types") {
		cfg.Output.TypesDir = flags.typesDir
	}
	if set("out-docs") {
		cfg.Output.DocsDir = flags.docsDir
	}
	if set("renderer") {
		cfg.Docs.Renderer = flags.renderer
	}
	if set("title") {
		cfg.Docs.Title = flags.title
	}
	if set("prefix") {
		cfg.Generator.Prefix = flags.prefix
	}
	if set("suffix") {
		cfg.Generator.Suffix = flags.suffix
	}
	if set("language") {
		cfg.Generator.Language = flags.language
	}
	if set("engine") {
		cfg.Generator.Command = flags.engineCommand
	}
	if set("engine-url") {
		cfg.Generator.URL = flags.engineURL
	}
	if set("no-examples") {
		cfg.Docs.Examples = !flags.noExamples
	}
	if set("no-graph") {
		cfg.Docs.Graph = !flags.noGraph
	}
	if set("no-rules") {
		cfg.Docs.Rules = !flags.noRules
	}
	if set("types") {
		cfg.Docs.Types = flags.types
	}
}

func runGenerate(ctx context.Context, out io.Writer, cfg config.Config) error {
	src, err := schema.ResolveSource(cfg.Schema.Source)
	if err != nil {
		return err
	}

	orch := orchestratorFactory(cfg)

	base := orchestrator.Request{
		Source: src,
		Format: requestFormat(cfg.Schema.Format),
		TypeOptions: typegen.Options{
			Language: cfg.Generator.Language,
			Prefix:   cfg.Generator.Prefix,
			Suffix:   cfg.Generator.Suffix,
		},
	}

	names, err := orch.Units(ctx, base)
	if err != nil {
		return err
	}

	for _, name := range names {
		req := base
		req.Name = name

		unit, err := orch.ResolveUnit(ctx, req)
		if err != nil {
			return err
		}

		typesPath, err := writeArtifact(cfg.Output.TypesDir, unit.Name+".ts", []byte(unit.Declarations))
		if err != nil {
			return err
		}

		docs, err := orch.Generate(ctx, orchestrator.Request{
			Declarations: unit.Declarations,
			Descriptions: unit.Descriptions,
			Name:         unit.Name,
			Title:        cfg.Docs.Title,
			Renderer:     cfg.Docs.Renderer,
		})
		if err != nil {
			return err
		}

		docsPath, err := writeArtifact(cfg.Output.DocsDir, unit.Name+docsExtension(cfg.Docs.Renderer), docs)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "generated %s and %s\n", typesPath, docsPath)
	}

	return nil
}

// orchestratorFactory builds the orchestrator for generate and docs runs.
// Swapped in tests.
var orchestratorFactory = newOrchestrator

func newOrchestrator(cfg config.Config) *orchestrator.Orchestrator {
	var engine typegen.Engine
	if strings.TrimSpace(cfg.Generator.URL) != "" {
		engine = internalTypegen.NewHTTP(internalTypegen.HTTPOptions{Endpoint: cfg.Generator.URL})
	} else {
		engine = internalTypegen.NewExec(internalTypegen.ExecOptions{
			Command: cfg.Generator.Command,
			Args:    cfg.Generator.Args,
		})
	}

	// Units + one ResolveUnit per unit re-load the same document; the
	// cache keeps that at a single read per source.
	loader := internalLoader.New(schema.NewLoaderOptions(
		schema.WithHTTPFallback(30*time.Second),
		schema.WithDocumentCache(8),
	))

	synthesizer := docgen.New(
		docgen.WithExamples(cfg.Docs.Examples),
		docgen.WithGraph(cfg.Docs.Graph),
		docgen.WithRules(cfg.Docs.Rules),
		docgen.WithTypes(cfg.Docs.Types...),
	)

	return orchestrator.New(
		orchestrator.WithLoader(loader),
		orchestrator.WithEngine(engine),
		orchestrator.WithSynthesizer(synthesizer),
	)
}

// requestFormat maps the config format to the orchestrator registry key;
// auto stays on the detecting default catalog.
func requestFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" || format == config.Default().Schema.Format {
		return ""
	}
	return format
}

func writeArtifact(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func docsExtension(renderer string) string {
	if strings.EqualFold(strings.TrimSpace(renderer), "html") {
		return ".html"
	}
	return ".md"
}
