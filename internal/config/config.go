package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/logging"
)

var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	MatchThreshold    float64 `json:"match_threshold"`
	RoundSeconds      float64 `json:"round_seconds"`
	BonusSeconds      float64 `json:"bonus_seconds"`
	BonusDecaySeconds float64 `json:"bonus_decay_seconds"`
	AnswerSeconds     float64 `json:"answer_seconds"`
	MinPointDistance  float64 `json:"min_point_distance"`
	MaxPoints         int     `json:"max_points"`
	TemplatesPath     string  `json:"templates_path,omitempty"`
}

func Defaults() *Settings {
	return &Settings{
		MatchThreshold:    0.75,
		RoundSeconds:      20,
		BonusSeconds:      5,
		BonusDecaySeconds: 0.5,
		AnswerSeconds:     1,
		MinPointDistance:  2,
		MaxPoints:         2048,
	}
}

func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "sketchmatch")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

// GetTemplatesPath returns the default template store location.
func GetTemplatesPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shapes.json"), nil
}

func GetSettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.json"), nil
}

// LoadSettings reads the settings file from the config directory, creating
// it with defaults on first run.
func LoadSettings() (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, err
	}
	return Load(settingsPath)
}

// Load reads settings from path. A missing file is written out with the
// defaults. Unknown keys are reported and ignored; out-of-range values fall
// back to their defaults.
func Load(path string) (*Settings, error) {
	log := logging.Logger()
	defaults := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("creating default settings file", "path", path)
			if err := createDefaultSettings(path, defaults); err != nil {
				log.Warn("failed to create default settings file", "path", path, "err", err)
			}
			return defaults, nil
		}
		return nil, err
	}

	// Check for unrecognised keys
	var rawSettings map[string]any
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, path, err)
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			log.Warn("unrecognised setting key", "key", key, "path", path)
		}
	}

	settings := Defaults()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSettings, path, err)
	}

	for _, problem := range settings.clamp(defaults) {
		log.Warn("invalid setting, using default", "problem", problem)
	}

	return settings, nil
}

// Validate reports the first out-of-range field.
func (s *Settings) Validate() error {
	c := *s
	if problems := c.clamp(Defaults()); len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, problems[0])
	}
	return nil
}

// clamp resets out-of-range fields to the matching default and describes
// each reset.
func (s *Settings) clamp(defaults *Settings) []string {
	var problems []string
	if s.MatchThreshold < 0 || s.MatchThreshold > 1 {
		problems = append(problems, fmt.Sprintf("match_threshold %.2f must be between 0 and 1", s.MatchThreshold))
		s.MatchThreshold = defaults.MatchThreshold
	}
	if s.RoundSeconds <= 0 {
		problems = append(problems, fmt.Sprintf("round_seconds %.2f must be positive", s.RoundSeconds))
		s.RoundSeconds = defaults.RoundSeconds
	}
	if s.BonusSeconds < 0 {
		problems = append(problems, fmt.Sprintf("bonus_seconds %.2f must not be negative", s.BonusSeconds))
		s.BonusSeconds = defaults.BonusSeconds
	}
	if s.BonusDecaySeconds < 0 {
		problems = append(problems, fmt.Sprintf("bonus_decay_seconds %.2f must not be negative", s.BonusDecaySeconds))
		s.BonusDecaySeconds = defaults.BonusDecaySeconds
	}
	if s.AnswerSeconds < 0 {
		problems = append(problems, fmt.Sprintf("answer_seconds %.2f must not be negative", s.AnswerSeconds))
		s.AnswerSeconds = defaults.AnswerSeconds
	}
	if s.MinPointDistance < 0 {
		problems = append(problems, fmt.Sprintf("min_point_distance %.2f must not be negative", s.MinPointDistance))
		s.MinPointDistance = defaults.MinPointDistance
	}
	if s.MaxPoints < 2 {
		problems = append(problems, fmt.Sprintf("max_points %d must be at least 2", s.MaxPoints))
		s.MaxPoints = defaults.MaxPoints
	}
	return problems
}

func createDefaultSettings(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
