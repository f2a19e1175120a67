package maze

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/model"
)

type GenConfig struct {
	Width, Height int

	// TreasureChance is the share of dead ends that get gold (0.0 to 1.0).
	TreasureChance float64
	// DoubleShare is the share of treasures that are double gold.
	DoubleShare float64

	Seed int64 // 0 = random
}

func DefaultGenConfig() GenConfig {
	return GenConfig{
		Width:          21,
		Height:         21,
		TreasureChance: 0.4,
		DoubleShare:    0.5,
	}
}

type point struct {
	X, Y int
}

// Generate carves a maze with a depth-first backtracker, so corridors run
// long. Home sits at the first carved cell, the player next to it, gold in
// dead ends and a panther on the longest horizontal run.
func Generate(cfg GenConfig) (*model.Model, error) {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cells := make([][]model.CellCode, rows)
	for y := range cells {
		cells[y] = make([]model.CellCode, cols)
		for x := range cells[y] {
			cells[y][x] = model.Wall
		}
	}

	home := point{1, 1}
	carve(cells, home, rng)

	player := firstOpenNeighbour(cells, home)
	cells[home.Y][home.X] = model.Home

	treasures := 0
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			p := point{x, y}
			if p == home || p == player || cells[y][x] != model.Path {
				continue
			}
			if exits(cells, p) == 1 && rng.Float64() < cfg.TreasureChance {
				cells[y][x] = model.Gold
				if rng.Float64() < cfg.DoubleShare {
					cells[y][x] = model.GoldDouble
				}
				treasures++
			}
		}
	}

	grid, err := model.NewGrid(cells)
	if err != nil {
		return nil, err
	}
	m := model.NewModel(grid, player.X, player.Y)
	if player.X == home.X {
		m.PlayerStart = model.Down
	}
	if spawn, ok := longestRun(cells, home, player); ok {
		m.Panthers = append(m.Panthers, spawn)
	}
	if err := Validate(m); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"seed":      seed,
		"cols":      cols,
		"rows":      rows,
		"treasures": treasures,
		"panthers":  len(m.Panthers),
	}).Debug("maze generated")
	return m, nil
}

func carve(cells [][]model.CellCode, start point, rng *rand.Rand) {
	rows, cols := len(cells), len(cells[0])
	stack := []point{start}
	cells[start.Y][start.X] = model.Path
	dirs := []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]point, 0, 4)
		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && cells[ny][nx] == model.Wall {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := candidates[rng.Intn(len(candidates))]
		cells[curr.Y+d.Y/2][curr.X+d.X/2] = model.Path
		next := point{curr.X + d.X, curr.Y + d.Y}
		cells[next.Y][next.X] = model.Path
		stack = append(stack, next)
	}
}

var ortho = []point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

func exits(cells [][]model.CellCode, p point) int {
	n := 0
	for _, d := range ortho {
		if cells[p.Y+d.Y][p.X+d.X] != model.Wall {
			n++
		}
	}
	return n
}

func firstOpenNeighbour(cells [][]model.CellCode, p point) point {
	for _, d := range ortho {
		if cells[p.Y+d.Y][p.X+d.X] == model.Path {
			return point{p.X + d.X, p.Y + d.Y}
		}
	}
	return p
}

// longestRun finds the longest horizontal stretch of open cells that does
// not touch home or the player start, preferring rows further down.
func longestRun(cells [][]model.CellCode, avoid ...point) (model.PantherSpawn, bool) {
	best, bestY, bestX := 0, 0, 0
	for y := 1; y < len(cells)-1; y++ {
		x := 1
		for x < len(cells[y])-1 {
			if cells[y][x] == model.Wall {
				x++
				continue
			}
			start := x
			for x < len(cells[y])-1 && cells[y][x] != model.Wall {
				x++
			}
			length := x - start
			if length >= 3 && length >= best && !touches(y, start, x, avoid) {
				best, bestY, bestX = length, y, start+length/2
			}
		}
	}
	if best == 0 {
		return model.PantherSpawn{}, false
	}
	return model.PantherSpawn{Col: bestX, Row: bestY, DX: 1}, true
}

func touches(y, from, to int, avoid []point) bool {
	for _, p := range avoid {
		if p.Y == y && p.X >= from && p.X < to {
			return true
		}
	}
	return false
}

func ensureOdd(n int) int {
	if n < 5 {
		return 5
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
