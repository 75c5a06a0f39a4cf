package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/capture"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/session"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/shapes"
	"github.com/spf13/cobra"
)

var (
	playAttemptsFile string
	playRegion       string
)

var playCmd = &cobra.Command{
	Use:   "play --attempts FILE",
	Short: "Replay a recorded round of attempts against the templates",
	Args:  cobra.NoArgs,
	RunE:  playRound,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playAttemptsFile, "attempts", "", "JSON array of attempts: {points, outside, seconds}")
	playCmd.Flags().StringVar(&playRegion, "region", "", "drawing area as minX,minY,maxX,maxY (default unbounded)")
}

func playRound(cmd *cobra.Command, args []string) error {
	if playAttemptsFile == "" {
		return fmt.Errorf("--attempts is required")
	}
	data, err := os.ReadFile(playAttemptsFile)
	if err != nil {
		return err
	}
	var attempts []models.Attempt
	if err := json.Unmarshal(data, &attempts); err != nil {
		return fmt.Errorf("%s: %w", playAttemptsFile, err)
	}

	region, err := parseRegion(playRegion)
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

	s, err := session.New(set, settings, nil)
	if err != nil {
		return err
	}
	s.Start()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	in := make(chan models.Attempt)
	verdicts := s.Judge(ctx, in)
	defer close(in)

	// One attempt in flight at a time, so the clock is ticked in order.
	out := cmd.OutOrStdout()
	pen := capture.NewStroke(region, capture.Options{
		MinDistance: settings.MinPointDistance,
		MaxPoints:   settings.MaxPoints,
	})
	for _, a := range attempts {
		if s.Tick(time.Duration(a.Seconds * float64(time.Second))) {
			break
		}

		// Recorded points are raw pointer samples; filter them the way a
		// live drag would be.
		pen.Reset()
		for _, p := range a.Points {
			pen.Add(p.X, p.Y)
		}
		replay := pen.Attempt()
		replay.Outside = replay.Outside || a.Outside

		select {
		case in <- replay:
		case <-ctx.Done():
			return ctx.Err()
		}
		v, ok := <-verdicts
		if !ok {
			return ctx.Err()
		}
		fmt.Fprintf(out, "%-20s %.3f  %s\n", v.Shape, v.Score, describe(v))
	}
	if s.Over() {
		fmt.Fprintln(out, "Time's up!")
	}
	fmt.Fprintf(out, "Score: %d\n", s.Score())
	fmt.Fprintf(out, "Time left: %s\n", s.Clock())
	return nil
}

func describe(v models.Verdict) string {
	switch {
	case v.Err != nil:
		return "error: " + v.Err.Error()
	case v.Outside:
		return "outside drawing area"
	case v.Accepted:
		return "correct"
	default:
		return "wrong"
	}
}

func parseRegion(value string) (capture.Region, error) {
	if value == "" {
		return capture.Region{}, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return capture.Region{}, fmt.Errorf("--region wants minX,minY,maxX,maxY, got %q", value)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return capture.Region{}, fmt.Errorf("--region: %w", err)
		}
		v[i] = f
	}
	if v[0] >= v[2] || v[1] >= v[3] {
		return capture.Region{}, fmt.Errorf("--region %q is empty", value)
	}
	return capture.Region{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}, nil
}
