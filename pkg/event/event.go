// Package event holds the notifications a game publishes to its presentation
// layer.
package event

import "github.com/qnkhuat/connect4term/pkg/engine"

type Type int

const (
	TypeDrop Type = iota
	TypeGameOver
	TypeReset
	TypeMode
)

func (t Type) String() string {
	switch t {
	case TypeDrop:
		return "Drop"
	case TypeGameOver:
		return "GameOver"
	case TypeReset:
		return "Reset"
	case TypeMode:
		return "Mode"
	default:
		return "Unknown"
	}
}

type Event interface {
	Type() Type
}

// Drop is published for every applied drop, human or computer
type Drop struct {
	Column   int
	Row      int
	Marker   engine.Marker
	Computer bool
}

func (Drop) Type() Type { return TypeDrop }

// GameOver follows the Drop that ended the game. Winner is Empty and Line
// has no cells on a draw.
type GameOver struct {
	Status engine.Status
	Winner engine.Marker
	Line   engine.WinLine
}

func (GameOver) Type() Type { return TypeGameOver }

type Reset struct {
	Turn engine.Marker
}

func (Reset) Type() Type { return TypeReset }

// Mode is published when the computer opponent is switched on or off
type Mode struct {
	VsComputer bool
}

func (Mode) Type() Type { return TypeMode }
