package engine

import (
	"math"

	"github.com/zucenko/fortknox/model"
)

// Mover glides to the far end of a corridor on each command. It is Idle
// unless Moving is set.
type Mover struct {
	Body
	Facing model.Direction
	Target model.Vec
	Moving bool
	Speed  float64
}

func NewMover(body Body, speed float64, facing model.Direction) *Mover {
	return &Mover{
		Body:   body,
		Facing: facing,
		Target: body.Pos,
		Speed:  speed,
	}
}

// Command re-centres the mover across dir and aims it at the last open cell
// in that direction.
func (m *Mover) Command(g *model.Grid, cellSize float64, dir model.Direction) {
	if dir == model.None {
		return
	}
	cx, cy := m.Cell(cellSize)
	centred := CellCenterOrigin(cellSize, cx, cy, m.W, m.H)
	if dir.Vertical() {
		m.Pos.X = centred.X
	} else {
		m.Pos.Y = centred.Y
	}
	m.Facing = dir
	tx, ty := RunToWall(g, cx, cy, dir)
	m.Target = CellCenterOrigin(cellSize, tx, ty, m.W, m.H)
	m.Moving = true
}

// Advance moves one frame towards the target. It returns false when nothing
// moved, either because the mover is idle or the step was blocked.
func (m *Mover) Advance(g *model.Grid, cellSize float64) bool {
	if !m.Moving {
		return false
	}
	dx := m.Target.X - m.Pos.X
	dy := m.Target.Y - m.Pos.Y
	dist := math.Hypot(dx, dy)

	next, arrived := m.Target, true
	if dist > m.Speed {
		next = model.Vec{X: m.Pos.X + dx/dist*m.Speed, Y: m.Pos.Y + dy/dist*m.Speed}
		arrived = false
	}
	if WallProbe(g, cellSize, next, m.W, m.H) {
		m.Halt()
		return false
	}
	m.Pos = next
	if arrived {
		m.Moving = false
	}
	return true
}

func (m *Mover) Halt() {
	m.Moving = false
	m.Target = m.Pos
}

func (m *Mover) View() model.EntityView {
	return model.EntityView{
		X:      m.Pos.X,
		Y:      m.Pos.Y,
		W:      m.W,
		H:      m.H,
		Facing: m.Facing,
		Moving: m.Moving,
	}
}
