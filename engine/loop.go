package engine

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/model"
)

// Command is one input event. Quit ends the run, otherwise Move is queued
// for the next frame.
type Command struct {
	Move model.Direction
	Quit bool
}

// Accumulator turns wall clock time into a whole number of fixed steps.
type Accumulator struct {
	Step     time.Duration
	MaxSteps int // 0 = no cap

	pending time.Duration
}

// Add banks elapsed and returns how many steps are due. When more than
// MaxSteps are due the excess is dropped rather than carried.
func (a *Accumulator) Add(elapsed time.Duration) int {
	if a.Step <= 0 || elapsed < 0 {
		return 0
	}
	a.pending += elapsed
	n := int(a.pending / a.Step)
	a.pending -= time.Duration(n) * a.Step
	if a.MaxSteps > 0 && n > a.MaxSteps {
		n = a.MaxSteps
	}
	return n
}

// Runner drives a World from a ticker. It owns the World while Run is
// active.
type Runner struct {
	World *World
	// Interval between emitted snapshots, defaults to the world frame step.
	Interval time.Duration
	MaxSteps int

	now func() time.Time
}

func NewRunner(w *World) *Runner {
	return &Runner{World: w, Interval: w.Tuning.FrameStep, MaxSteps: 5, now: time.Now}
}

// Run steps the world until ctx is done, a Quit command arrives, or the game
// ends. emit is called once per tick from the Run goroutine.
func (r *Runner) Run(ctx context.Context, commands <-chan Command, emit func(model.Snapshot, []Event)) error {
	interval := r.Interval
	if interval <= 0 {
		interval = r.World.Tuning.FrameStep
	}
	now := r.now
	if now == nil {
		now = time.Now
	}
	acc := Accumulator{Step: r.World.Tuning.FrameStep, MaxSteps: r.MaxSteps}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	pending := make([]model.Direction, 0)
	last := now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if cmd.Quit {
				log.WithField("tick", r.World.Tick).Info("runner quit")
				return nil
			}
			if cmd.Move != model.None {
				pending = append(pending, cmd.Move)
			}
		case <-ticker.C:
			t := now()
			steps := acc.Add(t.Sub(last))
			last = t
			events := make([]Event, 0)
			for i := 0; i < steps; i++ {
				events = append(events, r.World.Step(pending)...)
				pending = pending[:0]
			}
			emit(r.World.Snapshot(), events)
			if r.World.GameOver {
				return nil
			}
		}
	}
}
