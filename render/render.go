// Package render draws a snapshot through a small canvas contract, so the
// same walk serves the window and the terminal.
package render

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
	"github.com/zucenko/fortknox/model"
)

type SpriteKind int

const (
	SpritePlayer SpriteKind = iota
	SpritePanther
)

func (k SpriteKind) Name() string {
	switch k {
	case SpritePlayer:
		return "PLAYER"
	case SpritePanther:
		return "PANTHER"
	default:
		return fmt.Sprintf("N/A(%d)", k)
	}
}

// Sprite picks the art for an entity. Facing only matters for kinds that
// have directional art.
type Sprite struct {
	Kind   SpriteKind
	Facing model.Direction
}

type Canvas interface {
	DrawWallCell(x, y int)
	// DrawPickupCell is called for gold, double gold, home and hazard cells.
	DrawPickupCell(code model.CellCode, x, y int)
	DrawEntity(sprite Sprite, px, py float64, disabled bool)
	DrawText(s string, px, py int)
}

// HUDLineHeight is the pixel gap between HUD lines below the maze.
const HUDLineHeight = 20

// Render draws the maze, then panthers and the player, then the HUD below
// the maze. Path cells are left to the canvas background.
func Render(c Canvas, snap model.Snapshot) {
	for y, row := range snap.Cells {
		for x, code := range row {
			switch code {
			case model.Path:
			case model.Wall:
				c.DrawWallCell(x, y)
			default:
				c.DrawPickupCell(code, x, y)
			}
		}
	}
	for _, p := range snap.Panthers {
		c.DrawEntity(Sprite{Kind: SpritePanther, Facing: p.Facing}, p.X, p.Y, p.Disabled)
	}
	c.DrawEntity(Sprite{Kind: SpritePlayer, Facing: snap.Player.Facing}, snap.Player.X, snap.Player.Y, false)

	top := int(float64(len(snap.Cells))*snap.CellSize) + 4
	for i, line := range HUD(snap) {
		c.DrawText(line, 4, top+i*HUDLineHeight)
	}
}

// HUD returns the status lines shown under the maze.
func HUD(snap model.Snapshot) []string {
	lines := []string{fmt.Sprintf("Score: %d   Lives: %d", snap.Score, snap.Lives)}
	if snap.Carrying {
		lines[0] += "   GOLD"
	}
	if snap.GameOver {
		lines = append(lines, fmt.Sprintf("GAME OVER after %s", RunLength(snap.Elapsed)))
	}
	return lines
}

// RunLength formats a play time for people, to whole seconds.
func RunLength(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d <= 0 {
		return "0 seconds"
	}
	return durafmt.Parse(d).LimitFirstN(2).String()
}
