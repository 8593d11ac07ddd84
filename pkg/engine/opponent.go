package engine

import (
	"math/rand"
	"sync"
)

// Opponent picks the column for a computer move. ok is false when no
// column is open.
type Opponent interface {
	Choose(b Board) (column int, ok bool)
}

// RandomOpponent picks uniformly among the open columns. It does not look
// ahead.
type RandomOpponent struct {
	rnd *rand.Rand
	*sync.Mutex
}

func NewRandomOpponent(seed int64) *RandomOpponent {
	return &RandomOpponent{rnd: rand.New(rand.NewSource(seed)), Mutex: new(sync.Mutex)}
}

func (o *RandomOpponent) Choose(b Board) (int, bool) {
	open := b.OpenColumns()
	if len(open) == 0 {
		return -1, false
	}

	o.Lock()
	defer o.Unlock()

	return open[o.rnd.Intn(len(open))], true
}
