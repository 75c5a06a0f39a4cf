package cmd

import (
	"fmt"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/shapes"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all template shapes",
	Args:  cobra.NoArgs,
	RunE:  listShapes,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listShapes(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	path, err := resolveTemplatesPath(settings)
	if err != nil {
		return err
	}

	set, err := shapes.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load shapes: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(set) == 0 {
		fmt.Fprintln(out, "No shapes registered")
		return nil
	}
	fmt.Fprintln(out, "Registered shapes:")
	for _, s := range set {
		fmt.Fprintf(out, "   %s (%d points)\n", s.Name, len(s.Points))
	}
	return nil
}
