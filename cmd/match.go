package cmd

import (
	"errors"
	"fmt"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/logging"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/session"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/shapes"
	"github.com/spf13/cobra"
)

// ErrNoMatch is returned by the match command when no template clears the
// threshold.
var ErrNoMatch = errors.New("no confident match")

var (
	matchStrokeFile string
	matchShape      string
)

var matchCmd = &cobra.Command{
	Use:   "match --stroke FILE [--shape NAME]",
	Short: "Score a stroke against the templates",
	Args:  cobra.NoArgs,
	RunE:  matchStroke,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().StringVar(&matchStrokeFile, "stroke", "", "JSON file holding the candidate points")
	matchCmd.Flags().StringVar(&matchShape, "shape", "", "only compare against this template")
}

func matchStroke(cmd *cobra.Command, args []string) error {
	points, err := readStroke(matchStrokeFile)
	if err != nil {
		return err
	}
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
	if matchShape != "" {
		shape, err := set.Get(matchShape)
		if err != nil {
			return err
		}
		set = shapes.Set{shape}
	}

	rankings, err := session.Rank(nil, points, set)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range rankings {
		fmt.Fprintf(out, "%-20s %.3f\n", r.Shape, r.Score)
	}

	best := rankings[0]
	if best.Score > settings.MatchThreshold {
		logging.Logger().Info("matched shape", "shape", best.Shape, "score", best.Score)
		fmt.Fprintf(out, "Matched shape: %s (score: %.3f)\n", best.Shape, best.Score)
		return nil
	}
	fmt.Fprintf(out, "No confident match (best score: %.3f)\n", best.Score)
	return ErrNoMatch
}
