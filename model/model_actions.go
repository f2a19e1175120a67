package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyGrid    = errors.New("grid has no rows")
	ErrRaggedGrid   = errors.New("grid rows differ in length")
	ErrGridTooSmall = errors.New("grid must be at least 3x3")
	ErrOpenBorder   = errors.New("grid border must be wall")
)

// NewGrid copies rows into a Grid after checking that it is rectangular and
// closed by walls on every side.
func NewGrid(rows [][]CellCode) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}
	cols := len(rows[0])
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, y, len(row), cols)
		}
	}
	if cols < 3 || len(rows) < 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridTooSmall, cols, len(rows))
	}
	last := len(rows) - 1
	for x := 0; x < cols; x++ {
		if rows[0][x] != Wall {
			return nil, fmt.Errorf("%w: row 0 col %d is %s", ErrOpenBorder, x, rows[0][x].Name())
		}
		if rows[last][x] != Wall {
			return nil, fmt.Errorf("%w: row %d col %d is %s", ErrOpenBorder, last, x, rows[last][x].Name())
		}
	}
	for y := range rows {
		if rows[y][0] != Wall {
			return nil, fmt.Errorf("%w: row %d col 0 is %s", ErrOpenBorder, y, rows[y][0].Name())
		}
		if rows[y][cols-1] != Wall {
			return nil, fmt.Errorf("%w: row %d col %d is %s", ErrOpenBorder, y, cols-1, rows[y][cols-1].Name())
		}
	}
	return &Grid{cells: copyCells(rows)}, nil
}

func copyCells(rows [][]CellCode) [][]CellCode {
	cells := make([][]CellCode, 0, len(rows))
	for _, row := range rows {
		line := make([]CellCode, len(row))
		copy(line, row)
		cells = append(cells, line)
	}
	return cells
}

func (g *Grid) Rows() int {
	return len(g.cells)
}

func (g *Grid) Cols() int {
	if len(g.cells) == 0 {
		return 0
	}
	return len(g.cells[0])
}

// CellAt fails closed: anything outside the grid reads as Wall.
func (g *Grid) CellAt(x, y int) CellCode {
	if y < 0 || y >= len(g.cells) {
		return Wall
	}
	if x < 0 || x >= len(g.cells[y]) {
		return Wall
	}
	return g.cells[y][x]
}

// SetCellAt is reserved for pickup and life marker consumption.
func (g *Grid) SetCellAt(x, y int, code CellCode) bool {
	if y < 0 || y >= len(g.cells) || x < 0 || x >= len(g.cells[y]) {
		return false
	}
	g.cells[y][x] = code
	return true
}

func (g *Grid) Cells() [][]CellCode {
	return copyCells(g.cells)
}

func (g *Grid) Clone() *Grid {
	return &Grid{cells: copyCells(g.cells)}
}

// Find returns the cells holding code in reading order.
func (g *Grid) Find(code CellCode) [][2]int {
	found := make([][2]int, 0)
	for y, row := range g.cells {
		for x, c := range row {
			if c == code {
				found = append(found, [2]int{x, y})
			}
		}
	}
	return found
}

func (g *Grid) Count(code CellCode) int {
	return len(g.Find(code))
}

func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

func (d Direction) Name() string {
	switch d {
	case None:
		return "NONE"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("N/A(%d)", d)
	}
}

// DirectionOf maps a unit step back to a Direction.
func DirectionOf(dx, dy int) Direction {
	switch {
	case dx > 0:
		return Right
	case dx < 0:
		return Left
	case dy > 0:
		return Down
	case dy < 0:
		return Up
	default:
		return None
	}
}

func NewModel(grid *Grid, col, row int) *Model {
	return &Model{
		Grid:        grid,
		PlayerCol:   col,
		PlayerRow:   row,
		PlayerStart: Right,
		Panthers:    make([]PantherSpawn, 0),
	}
}
