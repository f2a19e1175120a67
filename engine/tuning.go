package engine

import (
	"errors"
	"fmt"
	"time"
)

var ErrBadTuning = errors.New("invalid tuning")

// Tuning holds the numbers a session is played with. Distances are pixels,
// speeds are pixels per frame, durations are frames unless typed otherwise.
type Tuning struct {
	CellSize             float64
	EntitySize           float64
	PlayerSpeed          float64
	PantherSpeed         float64
	PantherDisableFrames int
	Lives                int
	FrameStep            time.Duration
}

func DefaultTuning() Tuning {
	return Tuning{
		CellSize:             25,
		EntitySize:           20,
		PlayerSpeed:          2,
		PantherSpeed:         1,
		PantherDisableFrames: 360,
		Lives:                3,
		FrameStep:            time.Second / 60,
	}
}

func (t Tuning) Validate() error {
	switch {
	case t.CellSize <= 0:
		return fmt.Errorf("%w: cell size %v", ErrBadTuning, t.CellSize)
	case t.EntitySize <= 0 || t.EntitySize > t.CellSize:
		return fmt.Errorf("%w: entity size %v must fit a %v cell", ErrBadTuning, t.EntitySize, t.CellSize)
	case t.PlayerSpeed <= 0 || t.PlayerSpeed >= t.CellSize:
		return fmt.Errorf("%w: player speed %v", ErrBadTuning, t.PlayerSpeed)
	case t.PantherSpeed <= 0 || t.PantherSpeed >= t.CellSize:
		return fmt.Errorf("%w: panther speed %v", ErrBadTuning, t.PantherSpeed)
	case t.PantherDisableFrames < 0:
		return fmt.Errorf("%w: disable frames %d", ErrBadTuning, t.PantherDisableFrames)
	case t.Lives <= 0:
		return fmt.Errorf("%w: lives %d", ErrBadTuning, t.Lives)
	case t.FrameStep <= 0:
		return fmt.Errorf("%w: frame step %v", ErrBadTuning, t.FrameStep)
	}
	return nil
}
