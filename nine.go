package main

import (
	"image"

	"github.com/hajimehoshi/ebiten"
)

// Nine stretches a square source image into a panel of any size, keeping
// the border slices at a fixed scale.
type Nine struct {
	image  *ebiten.Image
	border int // source border in pixels
	size   int // source edge in pixels

	Color GameColor
	Alpha float64
	Scale float64

	x, y, width, height int
}

func NewNine(img *ebiten.Image, border int, scale float64) *Nine {
	w, _ := img.Size()
	return &Nine{image: img, border: border, size: w, Color: COLOR_WHITE, Alpha: 1, Scale: scale}
}

func (n *Nine) SetPosition(x, y int) {
	n.x = x
	n.y = y
}

func (n *Nine) SetSize(width, height int) {
	n.width = width
	n.height = height
}

type nineSlice struct {
	src          image.Rectangle
	x, y, sx, sy float64
}

// slices maps the 3x3 source grid onto the target rectangle. Corners keep
// Scale, edges stretch along one axis and the centre along both.
func (n *Nine) slices() [9]nineSlice {
	srcEdge := [4]int{0, n.border, n.size - n.border, n.size}
	b := float64(n.border) * n.Scale
	dstX := [4]float64{float64(n.x), float64(n.x) + b, float64(n.x+n.width) - b, float64(n.x + n.width)}
	dstY := [4]float64{float64(n.y), float64(n.y) + b, float64(n.y+n.height) - b, float64(n.y + n.height)}

	var out [9]nineSlice
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(srcEdge[col], srcEdge[row], srcEdge[col+1], srcEdge[row+1])
			s := nineSlice{src: src, x: dstX[col], y: dstY[row]}
			if w := src.Dx(); w > 0 {
				s.sx = (dstX[col+1] - dstX[col]) / float64(w)
			}
			if h := src.Dy(); h > 0 {
				s.sy = (dstY[row+1] - dstY[row]) / float64(h)
			}
			out[row*3+col] = s
		}
	}
	return out
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for _, s := range n.slices() {
		if s.sx <= 0 || s.sy <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s.sx, s.sy)
		op.GeoM.Translate(s.x, s.y)
		op.ColorM.Scale(n.Color.r, n.Color.g, n.Color.b, n.Alpha)
		screen.DrawImage(n.image.SubImage(s.src).(*ebiten.Image), op)
	}
}
