// Package fx runs short HUD animations on top of gween tweens.
package fx

import "github.com/tanema/gween"

// Action is what happens while a tween runs and after it ends.
type Action struct {
	nexts    []func(p *Player)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) OnFinish(f func()) *Action {
	if a.onFinish == nil {
		a.onFinish = make([]func(), 0)
	}
	a.onFinish = append(a.onFinish, f)
	return a
}

// Then queues t to start when the current tween finishes.
func (a *Action) Then(t *gween.Tween, onChange func(float32)) *Action {
	action := &Action{onChange: onChange}
	if a.nexts == nil {
		a.nexts = make([]func(p *Player), 0)
	}
	a.nexts = append(a.nexts, func(p *Player) {
		p.tweens[t] = action
	})
	return action
}

// Player owns the running tweens. It is not safe for concurrent use.
type Player struct {
	tweens map[*gween.Tween]*Action
}

func NewPlayer() *Player {
	return &Player{tweens: make(map[*gween.Tween]*Action)}
}

func (p *Player) Start(t *gween.Tween, onChange func(float32)) *Action {
	action := &Action{onChange: onChange}
	p.tweens[t] = action
	return action
}

// Update advances every tween by dt seconds. Chained tweens start on the
// following update.
func (p *Player) Update(dt float32) {
	done := make([]*Action, 0)
	for t, a := range p.tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			delete(p.tweens, t)
			done = append(done, a)
		}
	}
	for _, a := range done {
		for _, onFinish := range a.onFinish {
			onFinish()
		}
		for _, next := range a.nexts {
			next(p)
		}
	}
}

func (p *Player) Active() int {
	return len(p.tweens)
}
