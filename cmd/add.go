package cmd

import (
	"fmt"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/shapes"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/stroke"
	"github.com/spf13/cobra"
)

var addStrokeFile string

var addCmd = &cobra.Command{
	Use:   "add [shape] --stroke FILE",
	Short: "Add or replace a template shape from a stroke file",
	Args:  cobra.ExactArgs(1),
	RunE:  addShape,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addStrokeFile, "stroke", "", "JSON file holding the template points")
}

func addShape(cmd *cobra.Command, args []string) error {
	points, err := readStroke(addStrokeFile)
	if err != nil {
		return err
	}
	// A template that cannot be canonicalized could never be matched.
	if _, err := stroke.Canonicalize(points); err != nil {
		return fmt.Errorf("shape %q: %w", args[0], err)
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	path, err := resolveTemplatesPath(settings)
	if err != nil {
		return err
	}

	if err := shapes.Upsert(path, models.Shape{Name: args[0], Points: points}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved shape: %s (%d points)\n", args[0], len(points))
	return nil
}
