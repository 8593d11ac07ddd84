package gui

import (
	"fmt"

	"github.com/qnkhuat/connect4term/pkg/engine"
)

type Action string

const (
	ActionNewGame Action = "New Game"
	ActionPlayCPU Action = "Play CPU"
	ActionQuit    Action = "Quit"
	ActionToMove  Action = "to move"
	ActionWin     Action = "wins!"
	ActionDraw    Action = "Draw!"
)

func (a Action) String() string {
	return string(a)
}

// MarkerLabel is the color a player's discs are shown in
func MarkerLabel(m engine.Marker) string {
	switch m {
	case engine.PlayerA:
		return "Yellow"
	case engine.PlayerB:
		return "Red"
	default:
		return ""
	}
}

// statusLine describes the state in one line. paint decorates the label of
// a marker, for color tags or escape codes.
func statusLine(st engine.State, name func(engine.Marker) string, paint func(engine.Marker, string) string) string {
	player := func(m engine.Marker) string {
		label := paint(m, MarkerLabel(m))
		if n := name(m); n != "" {
			return fmt.Sprintf("%s (%s)", label, n)
		}
		return label
	}

	switch st.Status {
	case engine.Won:
		return fmt.Sprintf("%s %s", player(st.Winner), ActionWin)
	case engine.Draw:
		return ActionDraw.String()
	}

	line := fmt.Sprintf("%s %s", player(st.Turn), ActionToMove)
	if st.VsComputer {
		line += " vs CPU"
	}
	return line
}
