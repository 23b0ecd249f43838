package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weiAX95/auto-create-tsfile-cli/internal/config"
	"github.com/weiAX95/auto-create-tsfile-cli/internal/prompt"
)

var (
	initFormats   = []string{"auto", "openapi", "jsonschema"}
	initRenderers = []string{"markdown", "html"}
)

func newInitCommand(driver prompt.Driver) *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .tsfile.yml through interactive prompts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd, driver, output, force)
		},
	}

	cmd.Flags().StringVar(&output, "output", config.DefaultPath, "where to write the config file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, driver prompt.Driver, output string, force bool) error {
	if _, err := os.Stat(output); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", output)
	}

	cfg := config.Default()

	source, err := driver.Input(ctx, prompt.InputConfig{
		Message: "Schema source (path or URL)",
		Help:    "An OpenAPI or JSON Schema document the generator reads from.",
		Validator: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("a schema source is required")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	cfg.Schema.Source = strings.TrimSpace(source)

	format, err := driver.Select(ctx, prompt.SelectConfig{
		Message: "Schema format",
		Options: initFormats,
	})
	if err != nil {
		return err
	}
	cfg.Schema.Format = initFormats[format]

	command, err := driver.Input(ctx, prompt.InputConfig{
		Message: "Type-generation command",
		Default: cfg.Generator.Command,
	})
	if err != nil {
		return err
	}
	if trimmed := strings.TrimSpace(command); trimmed != "" {
		cfg.Generator.Command = trimmed
	}

	renderer, err := driver.Select(ctx, prompt.SelectConfig{
		Message: "Documentation renderer",
		Options: initRenderers,
	})
	if err != nil {
		return err
	}
	cfg.Docs.Renderer = initRenderers[renderer]

	graph, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Include the type dependency graph?",
		Default: true,
	})
	if err != nil {
		return err
	}
	cfg.Docs.Graph = graph

	if err := cfg.Write(output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	return nil
}
