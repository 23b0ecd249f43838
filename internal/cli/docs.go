package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weiAX95/auto-create-tsfile-cli/internal/config"
	"github.com/weiAX95/auto-create-tsfile-cli/pkg/orchestrator"
)

type docsFlags struct {
	configPath string
	out        string
	renderer   string
	title      string
	noExamples bool
	noGraph    bool
	noRules    bool
	types      []string
}

func newDocsCommand() *cobra.Command {
	var flags docsFlags

	cmd := &cobra.Command{
		Use:   "docs <declarations.ts>",
		Short: "Render documentation for an existing declaration file",
		Long: "Reads declaration text from disk and renders its documentation " +
			"without invoking the type-generation engine.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(flags.configPath, func(cfg *config.Config) {
				applyDocsFlags(cmd, flags, cfg)
			})
			if err != nil {
				return err
			}

			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			orch := orchestratorFactory(cfg)
			artifact, err := orch.Generate(cmd.Context(), orchestrator.Request{
				Declarations: string(text),
				Name:         unitNameFromPath(args[0]),
				Title:        cfg.Docs.Title,
				Renderer:     cfg.Docs.Renderer,
			})
			if err != nil {
				return err
			}

			if flags.out == "" {
				_, err = cmd.OutOrStdout().Write(artifact)
				return err
			}
			path, err := writeArtifact(filepath.Dir(flags.out), filepath.Base(flags.out), artifact)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "generated %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to .tsfile.yml")
	cmd.Flags().StringVar(&flags.out, "out", "", "output file, defaults to stdout")
	cmd.Flags().StringVar(&flags.renderer, "renderer", "", "documentation renderer (markdown, html)")
	cmd.Flags().StringVar(&flags.title, "title", "", "documentation title override")
	cmd.Flags().BoolVar(&flags.noExamples, "no-examples", false, "skip example literals")
	cmd.Flags().BoolVar(&flags.noGraph, "no-graph", false, "skip the dependency graph")
	cmd.Flags().BoolVar(&flags.noRules, "no-rules", false, "skip validation rules")
	cmd.Flags().StringSliceVar(&flags.types, "types", nil, "restrict documentation to the named types")

	return cmd
}

func applyDocsFlags(cmd *cobra.Command, flags docsFlags, cfg *config.Config) {
	set := cmd.Flags().Changed
	if set("renderer") {
		cfg.Docs.Renderer = flags.renderer
	}
	if set("title") {
		cfg.Docs.Title = flags.title
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

// unitNameFromPath derives a display name from the input file stem, so
// pet.ts documents as "Pet Types" unless --title overrides it.
func unitNameFromPath(path string) string {
	base := filepath.Base(path)
	stem, _, _ := strings.Cut(base, ".")
	if stem == "" {
		return "Types"
	}
	return strings.ToUpper(stem[:1]) + stem[1:]
}
