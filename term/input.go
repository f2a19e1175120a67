package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/model"
)

var runeMoves = map[rune]model.Direction{
	'k': model.Up, 'w': model.Up,
	'j': model.Down, 's': model.Down,
	'h': model.Left, 'a': model.Left,
	'l': model.Right, 'd': model.Right,
}

// KeyCommand maps a key press to a game command. Arrows, hjkl and wasd
// move; q, Escape and Ctrl-C quit.
func KeyCommand(key tcell.Key, r rune) (engine.Command, bool) {
	switch key {
	case tcell.KeyUp:
		return engine.Command{Move: model.Up}, true
	case tcell.KeyDown:
		return engine.Command{Move: model.Down}, true
	case tcell.KeyLeft:
		return engine.Command{Move: model.Left}, true
	case tcell.KeyRight:
		return engine.Command{Move: model.Right}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.Command{Quit: true}, true
	case tcell.KeyRune:
		if r == 'q' {
			return engine.Command{Quit: true}, true
		}
		if d, ok := runeMoves[r]; ok {
			return engine.Command{Move: d}, true
		}
	}
	return engine.Command{}, false
}
