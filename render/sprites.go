package render

import (
	"image"
	"image/color"
	"math"

	"github.com/zucenko/fortknox/model"
)

// SpriteSize is the edge of the sprite masks in pixels.
const SpriteSize = 8

// Masks face right. '#' is opaque.
var masks = map[SpriteKind][SpriteSize]string{
	SpritePlayer: {
		"..###...",
		".#####..",
		"###.###.",
		"########",
		"########",
		"#######.",
		".#####..",
		"..###...",
	},
	SpritePanther: {
		"#.....#.",
		"##...##.",
		"#######.",
		"##.#.###",
		"########",
		".######.",
		"..####..",
		".##..##.",
	},
}

// SpriteImage paints the mask for kind in c on a transparent square.
func SpriteImage(kind SpriteKind, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, SpriteSize, SpriteSize))
	mask, ok := masks[kind]
	if !ok {
		return img
	}
	for y, row := range mask {
		for x, ch := range row {
			if ch == '#' {
				img.Set(x, y, c)
			}
		}
	}
	return img
}

// FacingAngle is the clockwise rotation in radians that turns right facing
// art towards d. Screen y grows downwards.
func FacingAngle(d model.Direction) float64 {
	switch d {
	case model.Down:
		return math.Pi / 2
	case model.Left:
		return math.Pi
	case model.Up:
		return -math.Pi / 2
	}
	return 0
}

// PanelImage is a square with an edge frame of the given width, the source
// for nine slice panels.
func PanelImage(size, border int, fill, edge color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := min(x, y, size-1-x, size-1-y)
			switch {
			case d == 0 && (x == y || x == size-1-y):
				// rounded corner pixel stays clear
			case d < border/2:
				img.Set(x, y, edge)
			default:
				img.Set(x, y, fill)
			}
		}
	}
	return img
}
