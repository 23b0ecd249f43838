package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weiAX95/auto-create-tsfile-cli/pkg/declaration"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <declarations.ts>",
		Short: "Print the extracted type model as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			model := declaration.New().Extract(string(text))
			data, err := json.MarshalIndent(model, "", "  ")
			if err != nil {
				return fmt.Errorf("encode model: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
