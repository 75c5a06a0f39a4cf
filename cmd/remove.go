package cmd

import (
	"fmt"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/shapes"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [shape]",
	Short: "Remove a template shape by name",
	Args:  cobra.ExactArgs(1),
	RunE:  removeShape,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func removeShape(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	path, err := resolveTemplatesPath(settings)
	if err != nil {
		return err
	}

	if err := shapes.Remove(path, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed shape:", args[0])
	return nil
}
