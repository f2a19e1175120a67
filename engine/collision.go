package engine

import (
	"math"

	"github.com/zucenko/fortknox/model"
)

// Body is anything with a position and a fixed size. Pos is the top-left
// corner in pixels.
type Body struct {
	Pos  model.Vec
	W, H float64
}

func (b Body) Box() model.Box {
	return model.Box{X: b.Pos.X, Y: b.Pos.Y, W: b.W, H: b.H}
}

func (b Body) Center() model.Vec {
	return model.Vec{X: b.Pos.X + b.W/2, Y: b.Pos.Y + b.H/2}
}

// Cell is the grid cell under the centre of the body.
func (b Body) Cell(cellSize float64) (x, y int) {
	c := b.Center()
	return pixelToCell(c.X, cellSize), pixelToCell(c.Y, cellSize)
}

func pixelToCell(px, cellSize float64) int {
	return int(math.Floor(px / cellSize))
}

// Overlaps reports whether a and b share area. Touching edges do not count.
func Overlaps(a, b model.Box) bool {
	if a.X+a.W <= b.X || b.X+b.W <= a.X {
		return false
	}
	if a.Y+a.H <= b.Y || b.Y+b.H <= a.Y {
		return false
	}
	return true
}

// WallProbe reports whether a w x h box at pos would stand on a wall. Only the
// four corners are sampled, which is enough for one cell wide corridors.
func WallProbe(g *model.Grid, cellSize float64, pos model.Vec, w, h float64) bool {
	corners := [4]model.Vec{
		{X: pos.X, Y: pos.Y},
		{X: pos.X + w - 1, Y: pos.Y},
		{X: pos.X, Y: pos.Y + h - 1},
		{X: pos.X + w - 1, Y: pos.Y + h - 1},
	}
	for _, c := range corners {
		if c.X < 0 || c.Y < 0 {
			return true
		}
		if g.CellAt(pixelToCell(c.X, cellSize), pixelToCell(c.Y, cellSize)) == model.Wall {
			return true
		}
	}
	return false
}

// RunToWall walks from cell (x, y) in dir until the next cell is a wall and
// returns the last open cell.
func RunToWall(g *model.Grid, x, y int, dir model.Direction) (int, int) {
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return x, y
	}
	for g.CellAt(x+dx, y+dy) != model.Wall {
		x += dx
		y += dy
	}
	return x, y
}

// CellCenterOrigin is the top-left position that centres a w x h box in cell
// (x, y).
func CellCenterOrigin(cellSize float64, x, y int, w, h float64) model.Vec {
	return model.Vec{
		X: float64(x)*cellSize + (cellSize-w)/2,
		Y: float64(y)*cellSize + (cellSize-h)/2,
	}
}
