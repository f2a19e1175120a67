package model

import "fmt"

type CellCode int

const (
	Path CellCode = iota
	Wall
	Gold
	GoldDouble
	Home
	Hazard
)

func (c CellCode) Name() string {
	switch c {
	case Path:
		return "PATH"
	case Wall:
		return "WALL"
	case Gold:
		return "GOLD"
	case GoldDouble:
		return "GOLD_DOUBLE"
	case Home:
		return "HOME"
	case Hazard:
		return "HAZARD"
	default:
		return fmt.Sprintf("N/A(%d)", c)
	}
}

func (c CellCode) IsPickup() bool {
	return c == Gold || c == GoldDouble
}

// Grid is the static maze. Rows are indexed by y, columns by x.
type Grid struct {
	cells [][]CellCode
}

type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

type Vec struct {
	X, Y float64
}

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	X, Y, W, H float64
}

type PantherSpawn struct {
	Col, Row int
	DX, DY   int
}

// Model is the layout a session starts from.
type Model struct {
	Grid        *Grid
	PlayerCol   int
	PlayerRow   int
	PlayerStart Direction
	Panthers    []PantherSpawn
}
