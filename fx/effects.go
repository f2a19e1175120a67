package fx

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/zucenko/fortknox/model"
)

// Effects turns snapshot changes into HUD animation values. Frontends read
// the exported fields when drawing.
type Effects struct {
	// ScoreScale pulses above 1 after a deposit.
	ScoreScale float32
	// Flash is the alpha of a red overlay after a life is lost.
	Flash float32
	// GoldAlpha fades the carried gold marker in and out.
	GoldAlpha float32
	// Banner fades in the game over text.
	Banner float32

	player *Player
}

func NewEffects() *Effects {
	return &Effects{ScoreScale: 1, player: NewPlayer()}
}

// Observe starts animations for whatever changed between prev and cur.
func (e *Effects) Observe(prev, cur model.Snapshot) {
	if cur.Score > prev.Score {
		e.player.Start(gween.New(1, 1.6, .15, ease.OutQuad), e.setScale).
			Then(gween.New(1.6, 1, .3, ease.InQuad), e.setScale)
	}
	if cur.Lives < prev.Lives {
		e.player.Start(gween.New(.8, 0, .6, ease.OutCubic), e.setFlash)
	}
	if cur.Carrying && !prev.Carrying {
		e.player.Start(gween.New(0, 1, .25, ease.OutSine), e.setGold)
	}
	if !cur.Carrying && prev.Carrying {
		e.player.Start(gween.New(1, 0, .25, ease.InSine), e.setGold)
	}
	if cur.GameOver && !prev.GameOver {
		e.player.Start(gween.New(0, 1, 1, ease.Linear), e.setBanner)
	}
}

func (e *Effects) Update(dt float32) {
	e.player.Update(dt)
}

// Busy reports whether any animation is still running.
func (e *Effects) Busy() bool {
	return e.player.Active() > 0
}

func (e *Effects) setScale(v float32) {
	e.ScoreScale = v
}

func (e *Effects) setFlash(v float32) {
	e.Flash = v
}

func (e *Effects) setGold(v float32) {
	e.GoldAlpha = v
}

func (e *Effects) setBanner(v float32) {
	e.Banner = v
}
