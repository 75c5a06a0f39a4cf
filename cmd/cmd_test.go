package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ThatOtherAndrew/Sketchmatch/internal/logging"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/models"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/stroke"
	"github.com/ThatOtherAndrew/Sketchmatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	dir       string
	config    string
	templates string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	return env{
		dir:       dir,
		config:    filepath.Join(dir, "settings.json"),
		templates: filepath.Join(dir, "shapes.json"),
	}
}

func (e env) writeJSON(t *testing.T, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// run executes the root command with fresh flag values.
func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	orig := logging.Logger()
	t.Cleanup(func() { logging.SetLogger(orig) })

	configPath, templatesPath, verbose = "", "", false
	addStrokeFile, matchStrokeFile, matchShape, playAttemptsFile, playRegion = "", "", "", "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--templates", e.templates}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (e env) addTemplates(t *testing.T) {
	t.Helper()
	square := e.writeJSON(t, "square.json", testutil.UnitSquare())
	triangle := e.writeJSON(t, "triangle.json", testutil.Triangle())

	out, err := e.run(t, "add", "square", "--stroke", square)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved shape: square (4 points)")
	_, err = e.run(t, "add", "triangle", "--stroke", triangle)
	require.NoError(t, err)
}

func TestListEmpty(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No shapes registered")
}

func TestAddListRemove(t *testing.T) {
	e := newEnv(t)
	e.addTemplates(t)

	out, err := e.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "square (4 points)")
	assert.Contains(t, out, "triangle (3 points)")

	out, err = e.run(t, "remove", "square")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed shape: square")

	out, err = e.run(t, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "square")

	_, err = e.run(t, "remove", "square")
	assert.Error(t, err)
}

func TestAdd_RejectsDegenerateStroke(t *testing.T) {
	e := newEnv(t)
	dot := e.writeJSON(t, "dot.json", []models.Point{{X: 3, Y: 3}, {X: 3, Y: 3}})

	_, err := e.run(t, "add", "dot", "--stroke", dot)
	assert.ErrorIs(t, err, stroke.ErrDegenerateStroke)

	_, err = e.run(t, "add", "nothing")
	assert.Error(t, err, "--stroke is required")
}

func TestMatch(t *testing.T) {
	e := newEnv(t)
	e.addTemplates(t)
	candidate := e.writeJSON(t, "candidate.json", testutil.Transform(testutil.UnitSquare(), 3, 5, 5))

	out, err := e.run(t, "match", "--stroke", candidate)
	require.NoError(t, err)
	assert.Contains(t, out, "Matched shape: square")
}

func TestMatch_NoConfidentMatch(t *testing.T) {
	e := newEnv(t)
	e.addTemplates(t)
	candidate := e.writeJSON(t, "candidate.json", testutil.Triangle())

	out, err := e.run(t, "match", "--stroke", candidate, "--shape", "square")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.Contains(t, out, "No confident match")
	assert.NotContains(t, out, "triangle")
}

func TestMatch_XMLTemplates(t *testing.T) {
	e := newEnv(t)
	e.templates = filepath.Join(e.dir, "shapes_config.xml")
	xml := `<shapes><shape name="box"><points>
		<point x="10" y="10"/><point x="90" y="10"/><point x="90" y="90"/><point x="10" y="90"/>
	</points></shape></shapes>`
	require.NoError(t, os.WriteFile(e.templates, []byte(xml), 0644))
	candidate := e.writeJSON(t, "candidate.json", testutil.UnitSquare())

	out, err := e.run(t, "match", "--stroke", candidate)
	require.NoError(t, err)
	assert.Contains(t, out, "Matched shape: box")
}

func TestPlay(t *testing.T) {
	e := newEnv(t)
	e.addTemplates(t)
	attempts := e.writeJSON(t, "attempts.json", []models.Attempt{
		{Points: testutil.Transform(testutil.UnitSquare(), 3, 5, 5), Seconds: 2},
		{Outside: true, Seconds: 1},
		{Points: []models.Point{{X: 1, Y: 1}}},
	})

	out, err := e.run(t, "play", "--attempts", attempts)
	require.NoError(t, err)
	assert.Contains(t, out, "correct")
	assert.Contains(t, out, "outside drawing area")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "Score: 1")
	// 20s - 2s + 4.5s bonus - 1s
	assert.Contains(t, out, "Time left: 00 : 21")
	assert.NotContains(t, out, "Time's up!")
}

func TestPlay_TimeRunsOut(t *testing.T) {
	e := newEnv(t)
	e.addTemplates(t)
	attempts := e.writeJSON(t, "attempts.json", []models.Attempt{
		{Points: testutil.UnitSquare(), Seconds: 30},
	})

	out, err := e.run(t, "play", "--attempts", attempts)
	require.NoError(t, err)
	assert.Contains(t, out, "Time's up!")
	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Time left: 00 : 00")
}

func TestPlay_Region(t *testing.T) {
	e := newEnv(t)
	e.addTemplates(t)
	attempts := e.writeJSON(t, "attempts.json", []models.Attempt{
		{Points: testutil.Transform(testutil.UnitSquare(), 3, 5, 5)},
		{Points: []models.Point{{X: 2, Y: 2}, {X: 50, Y: 2}, {X: 8, Y: 8}}},
	})

	out, err := e.run(t, "play", "--attempts", attempts, "--region", "0,0,10,10")
	require.NoError(t, err)
	assert.Contains(t, out, "correct")
	assert.Contains(t, out, "outside drawing area")

	_, err = e.run(t, "play", "--attempts", attempts, "--region", "10,0,0,10")
	assert.Error(t, err)
	_, err = e.run(t, "play", "--attempts", attempts, "--region", "0,0,10")
	assert.Error(t, err)
}

func TestPlay_NoShapes(t *testing.T) {
	e := newEnv(t)
	attempts := e.writeJSON(t, "attempts.json", []models.Attempt{})

	_, err := e.run(t, "play", "--attempts", attempts)
	assert.Error(t, err)
}

func TestCompletion(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "sketchmatch")

	_, err = e.run(t, "completion", "tcsh")
	assert.Error(t, err)
}
