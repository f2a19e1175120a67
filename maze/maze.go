/*
Package maze reads and writes the text maze format and generates new mazes.

One line is one row and one glyph is one cell:

	#  wall            .  path (a space works too)
	g  gold            G  double gold
	H  home            x  hazard, used as a life marker
	P  player start    > < v ^  panther start and patrol heading

Blank lines and lines starting with ';' are skipped.
*/
package maze

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/fortknox/model"
)

var (
	ErrUnknownGlyph  = errors.New("unknown maze glyph")
	ErrNoPlayer      = errors.New("maze has no player start")
	ErrManyPlayers   = errors.New("maze has more than one player start")
	ErrPantherOnWall = errors.New("panther start must be on an open cell")
)

//go:embed data/fortknox.txt
var fortKnox []byte

// Default returns the built-in Fort Knox layout.
func Default() *model.Model {
	m, err := Read(bytes.NewReader(fortKnox))
	if err != nil {
		panic(fmt.Sprintf("embedded maze is broken: %v", err))
	}
	return m
}

func Load(path string) (*model.Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path": path,
		"cols": m.Grid.Cols(),
		"rows": m.Grid.Rows(),
	}).Info("maze loaded")
	return m, nil
}

func Read(reader io.Reader) (*model.Model, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)

	rows := make([][]model.CellCode, 0)
	panthers := make([]model.PantherSpawn, 0)
	playerCol, playerRow := -1, -1
	line := 0

	for scanner.Scan() {
		line++
		s := scanner.Text()
		if len(s) == 0 || s[0] == ';' {
			continue
		}
		row := len(rows)
		cells := make([]model.CellCode, 0, len(s))
		for col, char := range []rune(s) {
			switch char {
			case '#':
				cells = append(cells, model.Wall)
			case '.', ' ':
				cells = append(cells, model.Path)
			case 'g':
				cells = append(cells, model.Gold)
			case 'G':
				cells = append(cells, model.GoldDouble)
			case 'H':
				cells = append(cells, model.Home)
			case 'x':
				cells = append(cells, model.Hazard)
			case 'P':
				if playerRow >= 0 {
					return nil, fmt.Errorf("%w at line %d col %d", ErrManyPlayers, line, col+1)
				}
				playerCol, playerRow = col, row
				cells = append(cells, model.Path)
			case '>', '<', 'v', '^':
				dx, dy := headingOf(char)
				panthers = append(panthers, model.PantherSpawn{Col: col, Row: row, DX: dx, DY: dy})
				cells = append(cells, model.Path)
			default:
				return nil, fmt.Errorf("%w %q at line %d col %d", ErrUnknownGlyph, char, line, col+1)
			}
		}
		rows = append(rows, cells)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	grid, err := model.NewGrid(rows)
	if err != nil {
		return nil, err
	}
	if playerRow < 0 {
		return nil, ErrNoPlayer
	}
	m := model.NewModel(grid, playerCol, playerRow)
	m.Panthers = panthers
	return m, nil
}

func headingOf(char rune) (dx, dy int) {
	switch char {
	case '>':
		return 1, 0
	case '<':
		return -1, 0
	case 'v':
		return 0, 1
	default:
		return 0, -1
	}
}

func glyphOf(code model.CellCode) byte {
	switch code {
	case model.Wall:
		return '#'
	case model.Gold:
		return 'g'
	case model.GoldDouble:
		return 'G'
	case model.Home:
		return 'H'
	case model.Hazard:
		return 'x'
	default:
		return '.'
	}
}

func pantherGlyph(p model.PantherSpawn) byte {
	switch model.DirectionOf(p.DX, p.DY) {
	case model.Left:
		return '<'
	case model.Down:
		return 'v'
	case model.Up:
		return '^'
	default:
		return '>'
	}
}

// Encode writes m in the format Read accepts.
func Encode(w io.Writer, m *model.Model) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < m.Grid.Rows(); y++ {
		line := make([]byte, m.Grid.Cols())
		for x := range line {
			line[x] = glyphOf(m.Grid.CellAt(x, y))
		}
		for _, p := range m.Panthers {
			if p.Row == y {
				line[p.Col] = pantherGlyph(p)
			}
		}
		if m.PlayerRow == y {
			line[m.PlayerCol] = 'P'
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Validate checks the parts of a model NewGrid cannot see.
func Validate(m *model.Model) error {
	if m.Grid.CellAt(m.PlayerCol, m.PlayerRow) == model.Wall {
		return fmt.Errorf("%w: player at %d,%d is inside a wall", ErrNoPlayer, m.PlayerCol, m.PlayerRow)
	}
	for _, p := range m.Panthers {
		if m.Grid.CellAt(p.Col, p.Row) == model.Wall {
			return fmt.Errorf("%w: %d,%d", ErrPantherOnWall, p.Col, p.Row)
		}
	}
	return nil
}
