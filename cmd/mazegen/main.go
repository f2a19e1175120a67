package main

import (
	"flag"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/maze"
)

func main() {
	def := maze.DefaultGenConfig()
	width := flag.Int("width", def.Width, "maze width in cells, rounded down to odd")
	height := flag.Int("height", def.Height, "maze height in cells, rounded down to odd")
	treasure := flag.Float64("treasure", def.TreasureChance, "chance a dead end holds gold")
	double := flag.Float64("double", def.DoubleShare, "share of gold that is double gold")
	seed := flag.Int64("seed", 0, "generator seed, 0 uses the clock")
	flag.Parse()

	cfg := maze.GenConfig{
		Width:          *width,
		Height:         *height,
		TreasureChance: *treasure,
		DoubleShare:    *double,
		Seed:           *seed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m, err := maze.Generate(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	if err := maze.Validate(m); err != nil {
		log.Fatalln(err)
	}
	if err := maze.Encode(os.Stdout, m); err != nil {
		log.Fatalln(err)
	}
	log.WithField("seed", cfg.Seed).Info("maze generated")
}
