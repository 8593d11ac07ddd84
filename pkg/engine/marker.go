package engine

import (
	"fmt"
	"strings"
)

// Marker identifies which player occupies a cell
type Marker int

const (
	Empty Marker = iota
	PlayerA
	PlayerB
)

func (m Marker) String() string {
	switch m {
	case Empty:
		return "Empty"
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	default:
		return "Unknown"
	}
}

// Opponent returns the marker playing against m. Empty has no opponent.
func (m Marker) Opponent() Marker {
	switch m {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// Valid reports whether m is one of the two player markers
func (m Marker) Valid() bool {
	return m == PlayerA || m == PlayerB
}

// ParseMarker accepts "a", "b", "1", "2" and the full marker names, case
// insensitive.
func ParseMarker(s string) (Marker, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "1", "playera":
		return PlayerA, nil
	case "b", "2", "playerb":
		return PlayerB, nil
	}
	return Empty, fmt.Errorf("%w: unknown marker %q", ErrInvalidArgument, s)
}

// Status is the game state machine: InProgress until a win or a full board,
// back to InProgress only through Reset.
type Status int

const (
	InProgress Status = iota
	Won
	Draw
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Won:
		return "Won"
	case Draw:
		return "Draw"
	default:
		return "Unknown"
	}
}
