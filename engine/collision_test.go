package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/fortknox/model"
)

const (
	W  = model.Wall
	P  = model.Path
	G  = model.Gold
	GG = model.GoldDouble
	H  = model.Home
	X  = model.Hazard
)

func grid(t *testing.T, rows ...[]model.CellCode) *model.Grid {
	t.Helper()
	g, err := model.NewGrid(rows)
	require.NoError(t, err)
	return g
}

// corridor is a single open row of the given cells closed by walls.
func corridor(t *testing.T, cells ...model.CellCode) *model.Grid {
	t.Helper()
	top := make([]model.CellCode, len(cells)+2)
	mid := make([]model.CellCode, 0, len(cells)+2)
	bottom := make([]model.CellCode, len(cells)+2)
	for i := range top {
		top[i], bottom[i] = W, W
	}
	mid = append(mid, W)
	mid = append(mid, cells...)
	mid = append(mid, W)
	return grid(t, top, mid, bottom)
}

func TestOverlaps(t *testing.T) {
	a := model.Box{X: 0, Y: 0, W: 20, H: 20}
	tests := []struct {
		name string
		b    model.Box
		want bool
	}{
		{"same", a, true},
		{"touching right edge", model.Box{X: 20, Y: 0, W: 20, H: 20}, false},
		{"touching bottom edge", model.Box{X: 0, Y: 20, W: 20, H: 20}, false},
		{"touching left edge", model.Box{X: -20, Y: 5, W: 20, H: 20}, false},
		{"one pixel in", model.Box{X: 19, Y: 19, W: 20, H: 20}, true},
		{"contained", model.Box{X: 5, Y: 5, W: 2, H: 2}, true},
		{"apart", model.Box{X: 50, Y: 50, W: 20, H: 20}, false},
		{"same column apart", model.Box{X: 0, Y: 30, W: 20, H: 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(a, tt.b))
			assert.Equal(t, tt.want, Overlaps(tt.b, a), "symmetric")
		})
	}
}

func TestWallProbe(t *testing.T) {
	g := corridor(t, P, P, P)
	tests := []struct {
		name string
		pos  model.Vec
		want bool
	}{
		{"centred in open cell", model.Vec{X: 27.5, Y: 27.5}, false},
		{"flush with cell", model.Vec{X: 25, Y: 25}, false},
		{"spans two open cells", model.Vec{X: 40, Y: 27.5}, false},
		{"pokes into top wall", model.Vec{X: 27.5, Y: 24}, true},
		{"pokes into bottom wall", model.Vec{X: 27.5, Y: 31}, true},
		{"pokes into right wall", model.Vec{X: 81, Y: 27.5}, true},
		{"negative pixel", model.Vec{X: -1, Y: 27.5}, true},
		{"outside grid", model.Vec{X: 500, Y: 27.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WallProbe(g, 25, tt.pos, 20, 20))
		})
	}
}

func TestRunToWall(t *testing.T) {
	g := corridor(t, P, G, P)

	x, y := RunToWall(g, 1, 1, model.Right)
	assert.Equal(t, [2]int{3, 1}, [2]int{x, y}, "pickups are not walls")

	x, y = RunToWall(g, 3, 1, model.Left)
	assert.Equal(t, [2]int{1, 1}, [2]int{x, y})

	x, y = RunToWall(g, 2, 1, model.Up)
	assert.Equal(t, [2]int{2, 1}, [2]int{x, y}, "blocked straight away")

	x, y = RunToWall(g, 2, 1, model.None)
	assert.Equal(t, [2]int{2, 1}, [2]int{x, y})
}

func TestCellCenterOrigin(t *testing.T) {
	assert.Equal(t, model.Vec{X: 27.5, Y: 52.5}, CellCenterOrigin(25, 1, 2, 20, 20))
	assert.Equal(t, model.Vec{X: 0, Y: 0}, CellCenterOrigin(10, 0, 0, 10, 10))
}

func TestBodyCell(t *testing.T) {
	b := Body{Pos: CellCenterOrigin(25, 3, 4, 20, 20), W: 20, H: 20}
	x, y := b.Cell(25)
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)
	assert.Equal(t, model.Vec{X: 87.5, Y: 112.5}, b.Center())

	b.Pos.X += 13
	x, _ = b.Cell(25)
	assert.Equal(t, 4, x, "centre crossed into the next cell")
}
