// Package cli provides the tsfile command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/weiAX95/auto-create-tsfile-cli/internal/config"
	"github.com/weiAX95/auto-create-tsfile-cli/internal/prompt"
)

// Execute creates and runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand assembles the command tree. Errors surface to the caller
// so main owns the exit path.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tsfile",
		Short:         "Generate TypeScript declaration files and their documentation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCommand())
	root.AddCommand(newDocsCommand())
	root.AddCommand(newInspectCommand())
	root.AddCommand(newInitCommand(prompt.NewSurveyDriver()))

	return root
}

// resolveConfig layers the file, then command flags, then environment
// overrides, and validates the result.
func resolveConfig(path string, applyFlags func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if applyFlags != nil {
		applyFlags(&cfg)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
