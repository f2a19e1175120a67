package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	"github.com/hajimehoshi/ebiten/text"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/config"
	"github.com/zucenko/fortknox/engine"
	"github.com/zucenko/fortknox/fx"
	"github.com/zucenko/fortknox/model"
	"github.com/zucenko/fortknox/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

func HexToF32(u uint32) GameColor {
	b := float64(0xff&u) / 255
	g := float64(0xff&(u>>8)) / 255
	r := float64(0xff&(u>>16)) / 255
	return GameColor{r, g, b}
}

type GameColor struct {
	r float64
	g float64
	b float64
}

func (c GameColor) RGBA(alpha float64) color.NRGBA {
	return color.NRGBA{uint8(c.r * 255), uint8(c.g * 255), uint8(c.b * 255), uint8(alpha * 255)}
}

var (
	COLOR_BG      = HexToF32(0x1c1c1c)
	COLOR_WHITE   = HexToF32(0xffffff)
	COLOR_WALL    = HexToF32(0x321ecc)
	COLOR_GOLD    = HexToF32(0xedbc1e)
	COLOR_HOME    = HexToF32(0x0abd38)
	COLOR_HAZARD  = HexToF32(0x444444)
	COLOR_PLAYER  = HexToF32(0x34fbf6)
	COLOR_PANTHER = HexToF32(0xfa3636)
	COLOR_PANEL   = HexToF32(0x2a2a3a)
)

// hudHeight is the room under the maze for the two HUD lines.
const hudHeight = 2*render.HUDLineHeight + 12

var errQuit = errors.New("quit")

type GameState int

const (
	PLAYING GameState = iota + 1
	GAME_OVER
	QUIT
)

func (s GameState) Name() string {
	switch s {
	case PLAYING:
		return "PLAYING"
	case GAME_OVER:
		return "GAME_OVER"
	case QUIT:
		return "QUIT"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Game struct {
	State   GameState
	Source  Source
	Effects *fx.Effects
	Panel   *Nine
	Font    font.Face

	sprites map[render.SpriteKind]*ebiten.Image
	labels  *render.LabelCache[*ebiten.Image]
	last    model.Snapshot
	width   int
	height  int
	dst     *ebiten.Image
}

func NewGame(src Source, first model.Snapshot) (*Game, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	sprites := make(map[render.SpriteKind]*ebiten.Image)
	for kind, c := range map[render.SpriteKind]GameColor{
		render.SpritePlayer:  COLOR_PLAYER,
		render.SpritePanther: COLOR_PANTHER,
	} {
		img, err := ebiten.NewImageFromImage(render.SpriteImage(kind, c.RGBA(1)), ebiten.FilterNearest)
		if err != nil {
			return nil, err
		}
		sprites[kind] = img
	}
	panelImg, err := ebiten.NewImageFromImage(render.PanelImage(24, 8, COLOR_PANEL.RGBA(1), COLOR_WALL.RGBA(1)), ebiten.FilterNearest)
	if err != nil {
		return nil, err
	}

	mazeW := int(float64(len(first.Cells[0])) * first.CellSize)
	mazeH := int(float64(len(first.Cells)) * first.CellSize)
	panel := NewNine(panelImg, 8, .5)
	panel.SetPosition(0, mazeH)
	panel.SetSize(mazeW, hudHeight)

	blank, err := ebiten.NewImage(1, 1, ebiten.FilterNearest)
	if err != nil {
		return nil, err
	}

	g := &Game{
		State:   PLAYING,
		Source:  src,
		Effects: fx.NewEffects(),
		Panel:   panel,
		Font:    face,
		sprites: sprites,
		last:    first,
		width:   mazeW,
		height:  mazeH + hudHeight,
	}
	// the status line changes only with score, lives and carried gold
	g.labels = &render.LabelCache[*ebiten.Image]{
		Limit:    32,
		New:      g.newLabel,
		Drop:     func(img *ebiten.Image) { img.Dispose() },
		Fallback: blank,
	}
	return g, nil
}

var keyMoves = map[ebiten.Key]model.Direction{
	ebiten.KeyUp:    model.Up,
	ebiten.KeyW:     model.Up,
	ebiten.KeyDown:  model.Down,
	ebiten.KeyS:     model.Down,
	ebiten.KeyLeft:  model.Left,
	ebiten.KeyA:     model.Left,
	ebiten.KeyRight: model.Right,
	ebiten.KeyD:     model.Right,
}

func (g *Game) input() []engine.Command {
	cmds := make([]engine.Command, 0)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return append(cmds, engine.Command{Quit: true})
	}
	for key, dir := range keyMoves {
		if inpututil.IsKeyJustPressed(key) {
			cmds = append(cmds, engine.Command{Move: dir})
		}
	}
	return cmds
}

func (g *Game) update(screen *ebiten.Image) error {
	for _, cmd := range g.input() {
		g.Source.Send(cmd)
		if cmd.Quit {
			g.State = QUIT
			g.Source.Close()
			return errQuit
		}
	}

	if snap, ok := g.Source.Frame(); ok {
		g.Effects.Observe(g.last, snap)
		g.last = snap
	}
	g.Effects.Update(1.0 / 60)
	if g.last.GameOver && g.State == PLAYING {
		g.State = GAME_OVER
		log.WithField("score", g.last.Score).Info("game over")
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if err := screen.Fill(COLOR_BG.RGBA(1)); err != nil {
		log.Printf("%v", err)
	}
	g.Panel.Draw(screen)
	g.dst = screen
	render.Render(g, g.last)

	if g.Effects.GoldAlpha > 0 {
		ebitenutil.DrawRect(screen, float64(g.width-24), float64(g.height-hudHeight+8), 12, 12, COLOR_GOLD.RGBA(float64(g.Effects.GoldAlpha)))
	}
	if g.Effects.Flash > 0 {
		ebitenutil.DrawRect(screen, 0, 0, float64(g.width), float64(g.height), COLOR_PANTHER.RGBA(float64(g.Effects.Flash)*.5))
	}
	ebitenutil.DebugPrintAt(screen, g.State.Name(), g.width-80, g.height-16)
	return nil
}

func (g *Game) DrawWallCell(x, y int) {
	cs := g.last.CellSize
	ebitenutil.DrawRect(g.dst, float64(x)*cs, float64(y)*cs, cs, cs, COLOR_WALL.RGBA(1))
}

func (g *Game) DrawPickupCell(code model.CellCode, x, y int) {
	cs := g.last.CellSize
	px, py := float64(x)*cs, float64(y)*cs
	switch code {
	case model.Gold:
		ebitenutil.DrawRect(g.dst, px+cs*.35, py+cs*.35, cs*.3, cs*.3, COLOR_GOLD.RGBA(1))
	case model.GoldDouble:
		ebitenutil.DrawRect(g.dst, px+cs*.2, py+cs*.35, cs*.25, cs*.3, COLOR_GOLD.RGBA(1))
		ebitenutil.DrawRect(g.dst, px+cs*.55, py+cs*.35, cs*.25, cs*.3, COLOR_GOLD.RGBA(1))
	case model.Home:
		ebitenutil.DrawRect(g.dst, px+1, py+1, cs-2, cs-2, COLOR_HOME.RGBA(.6))
	case model.Hazard:
		ebitenutil.DrawRect(g.dst, px+cs*.45, py+cs*.45, cs*.1, cs*.1, COLOR_HAZARD.RGBA(1))
	}
}

// DrawEntity scales the sprite mask to the entity box and turns it to face
// the way the entity moves.
func (g *Game) DrawEntity(sprite render.Sprite, px, py float64, disabled bool) {
	img, ok := g.sprites[sprite.Kind]
	if !ok {
		return
	}
	size := g.last.Player.W
	if size <= 0 {
		size = g.last.CellSize
	}
	half := float64(render.SpriteSize) / 2
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-half, -half)
	op.GeoM.Rotate(render.FacingAngle(sprite.Facing))
	op.GeoM.Scale(size/render.SpriteSize, size/render.SpriteSize)
	op.GeoM.Translate(px+size/2, py+size/2)
	if disabled {
		op.ColorM.Scale(.5, .5, .5, .4)
	}
	g.dst.DrawImage(img, op)
}

func (g *Game) DrawText(s string, px, py int) {
	if g.last.GameOver && py > g.height-hudHeight+render.HUDLineHeight {
		text.Draw(g.dst, s, g.Font, px, py+14, COLOR_PANTHER.RGBA(float64(g.Effects.Banner)))
		return
	}
	label := g.labels.Get(s)
	scale := float64(g.Effects.ScoreScale)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(px), float64(py))
	g.dst.DrawImage(label, op)
}

func (g *Game) newLabel(s string) (*ebiten.Image, error) {
	img, err := ebiten.NewImage(g.width, render.HUDLineHeight, ebiten.FilterLinear)
	if err != nil {
		return nil, err
	}
	text.Draw(img, s, g.Font, 0, 14, color.White)
	return img, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}
	cfg.SetupLogging()

	src, first, err := Load(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	game, err := NewGame(src, first)
	if err != nil {
		log.Fatalln(err)
	}
	if err := ebiten.Run(game.update, game.width, game.height, 1, "Raid on Fort Knox"); err != nil && !errors.Is(err, errQuit) {
		log.Error(err)
		os.Exit(1)
	}
}
