package main

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/config"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/model"
	"github.com/zucenko/fortknox/server"
)

// Source feeds the window with snapshots. Both implementations are called
// from the ebiten update goroutine only.
type Source interface {
	Send(cmd engine.Command)
	// Frame returns the newest snapshot, ok is false when nothing changed.
	Frame() (snap model.Snapshot, ok bool)
	Close()
}

type localSource struct {
	world   *engine.World
	acc     engine.Accumulator
	pending []model.Direction
	last    time.Time
}

func newLocalSource(w *engine.World) *localSource {
	return &localSource{
		world: w,
		acc:   engine.Accumulator{Step: w.Tuning.FrameStep, MaxSteps: 5},
		last:  time.Now(),
	}
}

func (s *localSource) Send(cmd engine.Command) {
	if cmd.Move != model.None {
		s.pending = append(s.pending, cmd.Move)
	}
}

func (s *localSource) Frame() (model.Snapshot, bool) {
	now := time.Now()
	steps := s.acc.Add(now.Sub(s.last))
	s.last = now
	if steps == 0 || s.world.GameOver {
		return model.Snapshot{}, false
	}
	for i := 0; i < steps; i++ {
		for _, e := range s.world.Step(s.pending) {
			log.Debug(e.String())
		}
		s.pending = s.pending[:0]
	}
	return s.world.Snapshot(), true
}

func (s *localSource) Close() {}

type remoteSource struct {
	client *server.Client
}

func (s *remoteSource) Send(cmd engine.Command) {
	var err error
	if cmd.Quit {
		err = s.client.Quit()
	} else {
		err = s.client.Send(cmd.Move)
	}
	if err != nil {
		log.Warnf("send: %v", err)
	}
}

func (s *remoteSource) Frame() (model.Snapshot, bool) {
	select {
	case snap := <-s.client.Frames:
		return snap, true
	default:
		return model.Snapshot{}, false
	}
}

func (s *remoteSource) Close() {
	s.client.Close()
}

// Load picks the snapshot source from cfg, a server connection when
// KNOX_SERVER is set and an in-process world otherwise.
func Load(cfg config.Config) (Source, model.Snapshot, error) {
	if cfg.Server != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c, err := server.Dial(ctx, cfg.Server)
		if err != nil {
			return nil, model.Snapshot{}, err
		}
		return &remoteSource{client: c}, c.First, nil
	}

	m, err := cfg.Model()
	if err != nil {
		return nil, model.Snapshot{}, err
	}
	w, err := engine.NewWorld(m, cfg.Tuning())
	if err != nil {
		return nil, model.Snapshot{}, err
	}
	return newLocalSource(w), w.Snapshot(), nil
}
