package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLattice(t *testing.T) {
	l := NewLattice(3, 4)
	assert.Equal(t, 12, l.Area)

	for idx := 0; idx < l.Area; idx++ {
		i, j := l.Coords(idx)
		assert.Equal(t, idx, l.Idx(i, j))
	}

	_, ok := l.IdxCheck(3, 0)
	assert.False(t, ok)
	idx, ok := l.IdxCheck(2, 3)
	assert.True(t, ok)
	assert.Equal(t, 11, idx)

	u, v := l.UV(2, 3)
	assert.Equal(t, 1.0, u)
	assert.Equal(t, 1.0, v)
	u, v = l.UV(1, 0)
	assert.Equal(t, 0.5, u)
	assert.Equal(t, 0.0, v)

	assert.Panics(t, func() { NewLattice(0, 1) })
}
