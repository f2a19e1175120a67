// Package term plays the game in a terminal on top of tcell. Each maze cell
// is two columns wide and one row high.
package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/zucenko/fortknox/fx"
	"github.com/zucenko/fortknox/model"
	"github.com/zucenko/fortknox/render"
)

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleGold    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHome    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleHazard  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePanther = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleSleepy  = tcell.StyleDefault.Foreground(tcell.ColorDarkRed)
	styleText    = tcell.StyleDefault
	styleFlash   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorRed)
	styleRich    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Canvas maps the pixel coordinates render works in onto terminal cells.
type Canvas struct {
	Screen  tcell.Screen
	Effects *fx.Effects

	cellSize float64
	rows     int
}

func NewCanvas(screen tcell.Screen, effects *fx.Effects) *Canvas {
	return &Canvas{Screen: screen, Effects: effects}
}

// Draw clears the screen and renders snap. The caller calls Show.
func (c *Canvas) Draw(snap model.Snapshot) {
	c.cellSize = snap.CellSize
	c.rows = len(snap.Cells)
	c.Screen.Clear()
	render.Render(c, snap)
}

// put writes s from column x, one rune per cell.
func (c *Canvas) put(x, y int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		c.Screen.SetContent(col, y, r, nil, style)
		col++
	}
}

func (c *Canvas) DrawWallCell(x, y int) {
	c.put(x*2, y, "██", styleWall)
}

func (c *Canvas) DrawPickupCell(code model.CellCode, x, y int) {
	switch code {
	case model.Gold:
		c.put(x*2, y, "$ ", styleGold)
	case model.GoldDouble:
		c.put(x*2, y, "$$", styleGold)
	case model.Home:
		c.put(x*2, y, "[]", styleHome)
	case model.Hazard:
		c.put(x*2, y, "· ", styleHazard)
	}
}

// DrawEntity places the sprite in the cell holding its centre.
func (c *Canvas) DrawEntity(sprite render.Sprite, px, py float64, disabled bool) {
	if c.cellSize <= 0 {
		return
	}
	half := c.cellSize * .4
	col := int((px + half) / c.cellSize)
	row := int((py + half) / c.cellSize)
	switch sprite.Kind {
	case render.SpritePlayer:
		c.put(col*2, row, string(playerGlyph(sprite.Facing)), stylePlayer)
	case render.SpritePanther:
		if disabled {
			c.put(col*2, row, "z", styleSleepy)
		} else {
			c.put(col*2, row, "P", stylePanther)
		}
	}
}

func playerGlyph(d model.Direction) rune {
	switch d {
	case model.Up:
		return '^'
	case model.Down:
		return 'v'
	case model.Left:
		return '<'
	case model.Right:
		return '>'
	}
	return '@'
}

// DrawText puts HUD lines on the rows right under the maze.
func (c *Canvas) DrawText(s string, px, py int) {
	top := int(float64(c.rows)*c.cellSize) + 4
	row := c.rows
	if py > top {
		row += (py - top) / render.HUDLineHeight
	}
	c.put(px/int(max(c.cellSize, 1))*2, row, s, c.textStyle(row == c.rows))
}

func (c *Canvas) textStyle(status bool) tcell.Style {
	if c.Effects == nil || !status {
		return styleText
	}
	if c.Effects.Flash > .3 {
		return styleFlash
	}
	if c.Effects.GoldAlpha > .5 || c.Effects.ScoreScale > 1.1 {
		return styleRich
	}
	return styleText
}
