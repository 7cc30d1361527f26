package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/artpar/filetree/internal/storage/filesystem"
)

// NewShowCommand creates the show command.
func NewShowCommand(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the seed tree",
		Long:  "Load and validate the tree given with --seed and print it as YAML or JSON.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.Seed == "" {
				return errors.New("--seed is required")
			}
			f, err := filesystem.ParseFormat(format)
			if err != nil {
				return err
			}

			application, closeLog, err := buildApp(root)
			if err != nil {
				return err
			}
			defer closeLog()

			return filesystem.Encode(cmd.OutOrStdout(), application.Tree(), f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml or json)")

	return cmd
}
