package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/model"
)

var keys = []string{
	"PORT", "KNOX_MAZE", "KNOX_SEED", "KNOX_SERVER", "KNOX_TPS",
	"KNOX_PLAYER_SPEED", "KNOX_PANTHER_SPEED", "KNOX_PANTHER_DISABLE_FRAMES",
	"KNOX_LIVES", "KNOX_COMMAND_RATE", "KNOX_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, 60, c.TPS)
	assert.Equal(t, 20.0, c.CommandRate)
	assert.Equal(t, log.InfoLevel, c.LogLevel)
	assert.Empty(t, c.Maze)
	assert.Equal(t, engine.DefaultTuning(), c.Tuning())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("KNOX_TPS", "30")
	t.Setenv("KNOX_PLAYER_SPEED", "2.5")
	t.Setenv("KNOX_PANTHER_DISABLE_FRAMES", "10")
	t.Setenv("KNOX_LIVES", "5")
	t.Setenv("KNOX_LOG_LEVEL", "debug")
	t.Setenv("KNOX_SERVER", "ws://localhost:9000/play")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, c.Port)
	assert.Equal(t, log.DebugLevel, c.LogLevel)
	assert.Equal(t, "ws://localhost:9000/play", c.Server)

	tuning := c.Tuning()
	assert.Equal(t, 2.5, tuning.PlayerSpeed)
	assert.Equal(t, 10, tuning.PantherDisableFrames)
	assert.Equal(t, 5, tuning.Lives)
	assert.Equal(t, time.Second/30, tuning.FrameStep)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		key, value string
		err        error
	}{
		{"PORT", "eighty", ErrBadValue},
		{"KNOX_PLAYER_SPEED", "fast", ErrBadValue},
		{"KNOX_LOG_LEVEL", "loud", ErrBadValue},
		{"KNOX_TPS", "0", ErrBadValue},
		{"KNOX_COMMAND_RATE", "-1", ErrBadValue},
		{"KNOX_LIVES", "0", engine.ErrBadTuning},
		{"KNOX_PLAYER_SPEED", "30", engine.ErrBadTuning},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestModel(t *testing.T) {
	m, err := Config{}.Model()
	require.NoError(t, err)
	assert.Equal(t, model.Home, m.Grid.CellAt(19, 1))

	a, err := Config{Maze: RandomMaze, Seed: 11}.Model()
	require.NoError(t, err)
	b, err := Config{Maze: RandomMaze, Seed: 11}.Model()
	require.NoError(t, err)
	assert.Equal(t, a.Grid.Cells(), b.Grid.Cells())

	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(path, []byte("#####\n#P.H#\n#####\n"), 0644))
	m, err = Config{Maze: path}.Model()
	require.NoError(t, err)
	assert.Equal(t, 1, m.PlayerCol)

	_, err = Config{Maze: filepath.Join(t.TempDir(), "nope.txt")}.Model()
	assert.Error(t, err)
}
