package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomOpponentPicksOnlyOpenColumns(t *testing.T) {
	b := NewBoard(DefaultColumns, DefaultRows)
	for col := 0; col < DefaultColumns-1; col++ {
		for row := 0; row < DefaultRows; row++ {
			b.set(Coord{col, row}, PlayerA)
		}
	}

	o := NewRandomOpponent(1)
	for i := 0; i < 50; i++ {
		col, ok := o.Choose(b)
		require.True(t, ok)
		require.Equal(t, DefaultColumns-1, col)
	}
}

func TestRandomOpponentCoversEveryColumn(t *testing.T) {
	b := NewBoard(DefaultColumns, DefaultRows)
	o := NewRandomOpponent(99)

	seen := make(map[int]int)
	for i := 0; i < 7000; i++ {
		col, ok := o.Choose(b)
		require.True(t, ok)
		seen[col]++
	}

	require.Len(t, seen, DefaultColumns)
	for col, n := range seen {
		require.Greater(t, n, 700, "column %d chosen %d times", col, n)
	}
}

func TestRandomOpponentFullBoard(t *testing.T) {
	b := NewBoard(2, 1)
	b.set(Coord{0, 0}, PlayerA)
	b.set(Coord{1, 0}, PlayerB)

	col, ok := NewRandomOpponent(3).Choose(b)
	require.False(t, ok)
	require.Equal(t, -1, col)
}

func TestRandomOpponentIsDeterministicPerSeed(t *testing.T) {
	b := NewBoard(DefaultColumns, DefaultRows)
	a, c := NewRandomOpponent(5), NewRandomOpponent(5)

	for i := 0; i < 20; i++ {
		x, _ := a.Choose(b)
		y, _ := c.Choose(b)
		require.Equal(t, x, y)
	}
}
