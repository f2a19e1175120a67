package term

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/fx"
	"github.com/zucenko/fortknox/model"
	"github.com/zucenko/fortknox/server"
)

// Game draws snapshots to a tcell screen and turns key presses into
// commands. It does not own the simulation, frames come from a local Runner
// or from a server connection.
type Game struct {
	Screen  tcell.Screen
	Effects *fx.Effects
	// Redraw is the animation refresh interval.
	Redraw time.Duration

	canvas *Canvas
	last   model.Snapshot
	seen   bool
}

func NewGame(screen tcell.Screen) *Game {
	effects := fx.NewEffects()
	return &Game{
		Screen:  screen,
		Effects: effects,
		Redraw:  time.Second / 30,
		canvas:  NewCanvas(screen, effects),
	}
}

func (g *Game) show(snap model.Snapshot) {
	if g.seen {
		g.Effects.Observe(g.last, snap)
	}
	g.last = snap
	g.seen = true
	g.draw()
}

func (g *Game) draw() {
	if !g.seen {
		return
	}
	g.canvas.Draw(g.last)
	if g.last.GameOver && g.Effects.Banner > .5 {
		g.canvas.put(0, len(g.last.Cells)+2, "press any key", styleText)
	}
	g.Screen.Show()
}

// Run draws frames until a quit key, ctx is done, or done closes and the
// player dismisses the final frame with any key. Commands go to send.
func (g *Game) Run(ctx context.Context, frames <-chan model.Snapshot, done <-chan struct{}, send func(engine.Command) error) error {
	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			ev := g.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	ticker := time.NewTicker(g.Redraw)
	defer ticker.Stop()
	last := time.Now()
	finished := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap := <-frames:
			g.show(snap)
		case <-done:
			done = nil
			finished = true
			g.drain(frames)
		case t := <-ticker.C:
			g.Effects.Update(float32(t.Sub(last).Seconds()))
			last = t
			g.draw()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.Screen.Sync()
				g.draw()
			case *tcell.EventKey:
				if finished {
					return nil
				}
				cmd, ok := KeyCommand(ev.Key(), ev.Rune())
				if !ok {
					continue
				}
				if err := send(cmd); err != nil {
					return err
				}
				if cmd.Quit {
					return nil
				}
			}
		}
	}
}

// drain shows frames still buffered when the source ends.
func (g *Game) drain(frames <-chan model.Snapshot) {
	for {
		select {
		case snap := <-frames:
			g.show(snap)
		default:
			return
		}
	}
}

// PlayLocal runs w in process at its own frame rate.
func PlayLocal(ctx context.Context, g *Game, w *engine.World) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan model.Snapshot, 1)
	commands := make(chan engine.Command, 8)
	done := make(chan struct{})
	var runErr error
	first := w.Snapshot()
	go func() {
		defer close(done)
		runErr = engine.NewRunner(w).Run(ctx, commands, func(snap model.Snapshot, events []engine.Event) {
			for _, e := range events {
				log.Debug(e.String())
			}
			offer(frames, snap)
		})
	}()
	g.show(first)

	err := g.Run(ctx, frames, done, func(cmd engine.Command) error {
		select {
		case commands <- cmd:
		default:
			log.Debug("command dropped")
		}
		return nil
	})
	cancel()
	<-done
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// offer keeps only the newest snapshot in a one slot channel.
func offer(frames chan model.Snapshot, snap model.Snapshot) {
	for {
		select {
		case frames <- snap:
			return
		default:
		}
		select {
		case <-frames:
		default:
		}
	}
}

// PlayRemote plays the session behind c. c is closed on return.
func PlayRemote(ctx context.Context, g *Game, c *server.Client) error {
	defer c.Close()
	g.show(c.First)
	err := g.Run(ctx, c.Frames, c.Done, func(cmd engine.Command) error {
		if cmd.Quit {
			return c.Quit()
		}
		return c.Send(cmd.Move)
	})
	if err != nil {
		return err
	}
	select {
	case <-c.Done:
		return c.Err()
	default:
		return nil
	}
}
