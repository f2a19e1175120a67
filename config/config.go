// Package config reads settings from the environment, after loading a .env
// file when one is present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/maze"
	"github.com/zucenko/fortknox/model"
)

// RandomMaze as KNOX_MAZE asks for a generated maze.
const RandomMaze = "random"

var ErrBadValue = errors.New("bad config value")

type Config struct {
	Port   int    // PORT, http port of the game server
	Maze   string // KNOX_MAZE, maze file, empty for the built-in one
	Seed   int64  // KNOX_SEED, generator seed when Maze is RandomMaze
	Server string // KNOX_SERVER, websocket url for remote play

	TPS                  int     // KNOX_TPS, simulation frames per second
	PlayerSpeed          float64 // KNOX_PLAYER_SPEED, pixels per frame
	PantherSpeed         float64 // KNOX_PANTHER_SPEED, pixels per frame
	PantherDisableFrames int     // KNOX_PANTHER_DISABLE_FRAMES
	Lives                int     // KNOX_LIVES

	CommandRate float64 // KNOX_COMMAND_RATE, moves per second per connection
	LogLevel    log.Level
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env loaded: %v", err)
	}

	def := engine.DefaultTuning()
	p := &parser{}
	c := Config{
		Port:                 p.int("PORT", 8080),
		Maze:                 os.Getenv("KNOX_MAZE"),
		Seed:                 int64(p.int("KNOX_SEED", 0)),
		Server:               os.Getenv("KNOX_SERVER"),
		TPS:                  p.int("KNOX_TPS", 60),
		PlayerSpeed:          p.float("KNOX_PLAYER_SPEED", def.PlayerSpeed),
		PantherSpeed:         p.float("KNOX_PANTHER_SPEED", def.PantherSpeed),
		PantherDisableFrames: p.int("KNOX_PANTHER_DISABLE_FRAMES", def.PantherDisableFrames),
		Lives:                p.int("KNOX_LIVES", def.Lives),
		CommandRate:          p.float("KNOX_COMMAND_RATE", 20),
		LogLevel:             p.level("KNOX_LOG_LEVEL", log.InfoLevel),
	}
	if p.err != nil {
		return Config{}, p.err
	}
	if c.TPS <= 0 {
		return Config{}, fmt.Errorf("%w: KNOX_TPS=%d", ErrBadValue, c.TPS)
	}
	if c.CommandRate <= 0 {
		return Config{}, fmt.Errorf("%w: KNOX_COMMAND_RATE=%v", ErrBadValue, c.CommandRate)
	}
	if err := c.Tuning().Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SetupLogging applies the configured level to the standard logrus logger.
func (c Config) SetupLogging() {
	log.SetLevel(c.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func (c Config) Tuning() engine.Tuning {
	t := engine.DefaultTuning()
	t.PlayerSpeed = c.PlayerSpeed
	t.PantherSpeed = c.PantherSpeed
	t.PantherDisableFrames = c.PantherDisableFrames
	t.Lives = c.Lives
	if c.TPS > 0 {
		t.FrameStep = time.Second / time.Duration(c.TPS)
	}
	return t
}

// Model returns the maze a new session starts from.
func (c Config) Model() (*model.Model, error) {
	switch c.Maze {
	case "":
		return maze.Default(), nil
	case RandomMaze:
		cfg := maze.DefaultGenConfig()
		cfg.Seed = c.Seed
		return maze.Generate(cfg)
	default:
		return maze.Load(c.Maze)
	}
}

// parser keeps the first error so Load can read every key in one pass.
type parser struct {
	err error
}

func (p *parser) int(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(key, s, err)
		return def
	}
	return v
}

func (p *parser) float(key string, def float64) float64 {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(key, s, err)
		return def
	}
	return v
}

func (p *parser) level(key string, def log.Level) log.Level {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	v, err := log.ParseLevel(s)
	if err != nil {
		p.fail(key, s, err)
		return def
	}
	return v
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %s=%q: %v", ErrBadValue, key, value, err)
	}
}
