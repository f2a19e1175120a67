package engine

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/model"
)

var (
	ErrNoModel     = errors.New("world needs a model with a grid")
	ErrStartInWall = errors.New("start position is inside a wall")
	ErrBadHeading  = errors.New("panther heading must be a unit step on one axis")
)

type Inventory struct {
	Carrying bool
	Score    int
}

// World is one game session. Only the goroutine driving Step may touch it.
type World struct {
	Tuning    Tuning
	Grid      *model.Grid
	Player    *Mover
	Panthers  []*Panther
	Inventory Inventory
	Lives     int
	Tick      uint64
	GameOver  bool

	homes []model.Box
	// atHome is true while the player overlaps a home box.
	atHome bool
	// lastCell is the centre cell seen by the previous rule pass.
	lastCell [2]int
}

// NewWorld builds a session from m. The grid is cloned so the model can seed
// more than one world.
func NewWorld(m *model.Model, t Tuning) (*World, error) {
	if m == nil || m.Grid == nil {
		return nil, ErrNoModel
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	grid := m.Grid.Clone()
	if grid.CellAt(m.PlayerCol, m.PlayerRow) == model.Wall {
		return nil, fmt.Errorf("%w: player at %d,%d", ErrStartInWall, m.PlayerCol, m.PlayerRow)
	}

	size := t.EntitySize
	w := &World{
		Tuning:   t,
		Grid:     grid,
		Lives:    t.Lives,
		Panthers: make([]*Panther, 0, len(m.Panthers)),
		lastCell: [2]int{-1, -1},
	}
	w.Player = NewMover(Body{
		Pos: CellCenterOrigin(t.CellSize, m.PlayerCol, m.PlayerRow, size, size),
		W:   size,
		H:   size,
	}, t.PlayerSpeed, m.PlayerStart)

	for _, s := range m.Panthers {
		if grid.CellAt(s.Col, s.Row) == model.Wall {
			return nil, fmt.Errorf("%w: panther at %d,%d", ErrStartInWall, s.Col, s.Row)
		}
		if abs(s.DX)+abs(s.DY) != 1 {
			return nil, fmt.Errorf("%w: got %d,%d", ErrBadHeading, s.DX, s.DY)
		}
		w.Panthers = append(w.Panthers, NewPanther(Body{
			Pos: CellCenterOrigin(t.CellSize, s.Col, s.Row, size, size),
			W:   size,
			H:   size,
		}, s.DX, s.DY, t.PantherSpeed))
	}

	for _, c := range grid.Find(model.Home) {
		origin := CellCenterOrigin(t.CellSize, c[0], c[1], size, size)
		w.homes = append(w.homes, model.Box{X: origin.X, Y: origin.Y, W: size, H: size})
	}
	return w, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Step runs one frame: commands, player motion, panther patrol, then rules.
// Once the game is over it does nothing.
func (w *World) Step(cmds []model.Direction) []Event {
	if w.GameOver {
		return nil
	}
	cs := w.Tuning.CellSize
	for _, d := range cmds {
		w.Player.Command(w.Grid, cs, d)
	}
	w.Player.Advance(w.Grid, cs)

	events := make([]Event, 0)
	for i, p := range w.Panthers {
		if p.Update(w.Grid, cs) {
			col, row := p.Cell(cs)
			events = append(events, w.event(EventPantherRecovered, col, row, i))
		}
	}
	events = w.evaluate(events)
	w.Tick++
	return events
}

func (w *World) event(kind EventKind, col, row, panther int) Event {
	e := Event{Kind: kind, Tick: w.Tick, Col: col, Row: row, Panther: panther}
	log.WithFields(log.Fields{
		"tick":  w.Tick,
		"event": kind.Name(),
		"col":   col,
		"row":   row,
	}).Debug("rule fired")
	return e
}

func (w *World) evaluate(events []Event) []Event {
	cs := w.Tuning.CellSize
	cx, cy := w.Player.Cell(cs)
	cell := [2]int{cx, cy}
	entered := cell != w.lastCell
	w.lastCell = cell

	switch code := w.Grid.CellAt(cx, cy); code {
	case model.Gold, model.GoldDouble:
		if w.Inventory.Carrying {
			// hands full: stop at the edge of the tile, then let the player
			// walk on with the next command
			if entered {
				w.Player.Halt()
			}
			break
		}
		rest := model.Path
		if code == model.GoldDouble {
			rest = model.Gold
		}
		w.Grid.SetCellAt(cx, cy, rest)
		w.Inventory.Carrying = true
		w.Player.Halt()
		events = append(events, w.event(EventCollected, cx, cy, -1))
	case model.Hazard:
		if entered {
			log.WithFields(log.Fields{"col": cx, "row": cy}).Debug("player on hazard cell")
		}
	}

	box := w.Player.Box()
	home := false
	for _, h := range w.homes {
		if Overlaps(box, h) {
			home = true
			break
		}
	}
	if home {
		if w.Inventory.Carrying {
			w.Inventory.Carrying = false
			w.Inventory.Score++
			events = append(events, w.event(EventDeposited, cx, cy, -1))
		} else if !w.atHome {
			events = append(events, w.event(EventNoGold, cx, cy, -1))
		}
	}
	w.atHome = home

	for i, p := range w.Panthers {
		if !Overlaps(box, p.Box()) {
			p.latched = false
			continue
		}
		if p.Disabled || p.latched {
			continue
		}
		p.latched = true
		if w.Inventory.Carrying {
			w.Inventory.Carrying = false
			p.Disable(w.Tuning.PantherDisableFrames)
			events = append(events, w.event(EventGoldLost, cx, cy, i))
			continue
		}
		events = w.loseLife(events, cx, cy, i)
		if w.GameOver {
			break
		}
	}
	return events
}

func (w *World) loseLife(events []Event, cx, cy, panther int) []Event {
	w.Lives--
	if markers := w.Grid.Find(model.Hazard); len(markers) > 0 {
		w.Grid.SetCellAt(markers[0][0], markers[0][1], model.Path)
	}
	events = append(events, w.event(EventLifeLost, cx, cy, panther))
	if w.Lives <= 0 {
		w.Lives = 0
		w.GameOver = true
		events = append(events, w.event(EventGameOver, cx, cy, panther))
		log.WithFields(log.Fields{
			"tick":  w.Tick,
			"score": w.Inventory.Score,
		}).Info("game over")
	}
	return events
}

func (w *World) Elapsed() time.Duration {
	return time.Duration(w.Tick) * w.Tuning.FrameStep
}

// Snapshot copies everything a renderer needs, so it is safe to hand to
// another goroutine.
func (w *World) Snapshot() model.Snapshot {
	panthers := make([]model.EntityView, 0, len(w.Panthers))
	for _, p := range w.Panthers {
		panthers = append(panthers, p.View())
	}
	return model.Snapshot{
		Tick:     w.Tick,
		Elapsed:  w.Elapsed(),
		CellSize: w.Tuning.CellSize,
		Cells:    w.Grid.Cells(),
		Player:   w.Player.View(),
		Panthers: panthers,
		Score:    w.Inventory.Score,
		Lives:    w.Lives,
		Carrying: w.Inventory.Carrying,
		GameOver: w.GameOver,
	}
}
