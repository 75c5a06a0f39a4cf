package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/config"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/logging"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	templatesPath string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:           "sketchmatch",
	Short:         "Score freehand strokes against shape templates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetLogger(logging.NewText(cmd.ErrOrStderr(), verbose))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/sketchmatch/settings.json)")
	rootCmd.PersistentFlags().StringVar(&templatesPath, "templates", "", "template file, .json or .xml (default from settings)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-template scores")
}

func Execute() error {
	return rootCmd.Execute()
}

func loadSettings() (*config.Settings, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadSettings()
}

// resolveTemplatesPath picks the --templates flag, then the settings file,
// then the default store.
func resolveTemplatesPath(settings *config.Settings) (string, error) {
	if templatesPath != "" {
		return templatesPath, nil
	}
	if settings.TemplatesPath != "" {
		return settings.TemplatesPath, nil
	}
	return config.GetTemplatesPath()
}

// readStroke loads a JSON array of {"x":..,"y":..} points.
func readStroke(path string) ([]models.Point, error) {
	if path == "" {
		return nil, fmt.Errorf("--stroke is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var points []models.Point
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}
