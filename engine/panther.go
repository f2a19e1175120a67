package engine

import "github.com/zucenko/fortknox/model"

// Panther patrols back and forth along one axis. It has no pursuit logic.
type Panther struct {
	Body
	DX, DY    int
	Speed     float64
	Disabled  bool
	Countdown int

	// latched is set on the frame contact is processed and cleared once the
	// player box no longer overlaps.
	latched bool
}

func NewPanther(body Body, dx, dy int, speed float64) *Panther {
	return &Panther{Body: body, DX: dx, DY: dy, Speed: speed}
}

// Update runs one frame and reports whether the panther woke up in it.
func (p *Panther) Update(g *model.Grid, cellSize float64) bool {
	if p.Disabled {
		p.Countdown--
		if p.Countdown <= 0 {
			p.Countdown = 0
			p.Disabled = false
			return true
		}
		return false
	}

	next := p.step()
	if WallProbe(g, cellSize, next, p.W, p.H) {
		p.DX, p.DY = -p.DX, -p.DY
		next = p.step()
		if WallProbe(g, cellSize, next, p.W, p.H) {
			// boxed in, hold position
			return false
		}
	}
	p.Pos = next
	return false
}

func (p *Panther) step() model.Vec {
	return model.Vec{
		X: p.Pos.X + p.Speed*float64(p.DX),
		Y: p.Pos.Y + p.Speed*float64(p.DY),
	}
}

func (p *Panther) Disable(frames int) {
	if frames <= 0 {
		return
	}
	p.Disabled = true
	p.Countdown = frames
}

func (p *Panther) Heading() model.Direction {
	return model.DirectionOf(p.DX, p.DY)
}

func (p *Panther) View() model.EntityView {
	return model.EntityView{
		X:        p.Pos.X,
		Y:        p.Pos.Y,
		W:        p.W,
		H:        p.H,
		Facing:   p.Heading(),
		Moving:   !p.Disabled,
		Disabled: p.Disabled,
	}
}
