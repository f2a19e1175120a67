package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/fortknox/model"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 42

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Grid.Cells(), b.Grid.Cells())
	assert.Equal(t, a.Panthers, b.Panthers)
}

func TestGenerateShape(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 7, 99} {
		cfg := GenConfig{Width: 24, Height: 18, TreasureChance: 1, DoubleShare: 0.5, Seed: seed}
		m, err := Generate(cfg)
		require.NoError(t, err)

		assert.Equal(t, 23, m.Grid.Cols(), "even sizes round down")
		assert.Equal(t, 17, m.Grid.Rows())
		assert.Equal(t, 1, m.Grid.Count(model.Home))
		assert.Equal(t, model.Home, m.Grid.CellAt(1, 1))
		assert.Equal(t, model.Path, m.Grid.CellAt(m.PlayerCol, m.PlayerRow))
		assert.Greater(t, m.Grid.Count(model.Gold)+m.Grid.Count(model.GoldDouble), 0)
		require.Len(t, m.Panthers, 1)
		assert.NotEqual(t, model.Wall, m.Grid.CellAt(m.Panthers[0].Col, m.Panthers[0].Row))
		assert.Equal(t, 1, m.Panthers[0].DX)
	}
}

func TestGenerateReachable(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 5
	m, err := Generate(cfg)
	require.NoError(t, err)

	seen := map[[2]int]bool{{m.PlayerCol, m.PlayerRow}: true}
	queue := [][2]int{{m.PlayerCol, m.PlayerRow}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range ortho {
			n := [2]int{c[0] + d.X, c[1] + d.Y}
			if !seen[n] && m.Grid.CellAt(n[0], n[1]) != model.Wall {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	for _, code := range []model.CellCode{model.Gold, model.GoldDouble, model.Home} {
		for _, c := range m.Grid.Find(code) {
			assert.True(t, seen[c], "%s at %v unreachable", code.Name(), c)
		}
	}
}

func TestGenerateTinyClamps(t *testing.T) {
	m, err := Generate(GenConfig{Width: 1, Height: 2, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Grid.Cols())
	assert.Equal(t, 5, m.Grid.Rows())
}
