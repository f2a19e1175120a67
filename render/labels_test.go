package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type label struct {
	text string
}

func TestLabelCache(t *testing.T) {
	made := 0
	dropped := 0
	c := &LabelCache[*label]{
		Limit: 2,
		New: func(s string) (*label, error) {
			made++
			return &label{text: s}, nil
		},
		Drop: func(*label) { dropped++ },
	}

	a := c.Get("a")
	assert.Same(t, a, c.Get("a"))
	assert.Equal(t, 1, made)

	c.Get("b")
	c.Get("c")
	assert.Equal(t, 2, dropped, "full cache is flushed")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "c", c.Get("c").text)
}

func TestLabelCacheFallback(t *testing.T) {
	blank := &label{}
	fail := true
	c := &LabelCache[*label]{
		New: func(s string) (*label, error) {
			if fail {
				return nil, errors.New("no gpu")
			}
			return &label{text: s}, nil
		},
		Fallback: blank,
	}

	assert.Same(t, blank, c.Get("Score: 1"))
	assert.Zero(t, c.Len(), "failures are not cached")

	fail = false
	assert.Equal(t, "Score: 1", c.Get("Score: 1").text)
}
