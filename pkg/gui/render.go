package gui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/connect4term/pkg/engine"
)

const (
	// A slot is four terminal cells wide and two high so discs look round
	cellWidth  = 4
	cellHeight = 2
	headerRows = 1
)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// markerColor returns the theme's disc color for a marker
func markerColor(m engine.Marker, t Theme) tcell.Color {
	switch m {
	case engine.PlayerA:
		return t.PlayerA
	case engine.PlayerB:
		return t.PlayerB
	default:
		return t.Slot
	}
}

// columnLabel is the header shown above a column: 1-9, then letters
func columnLabel(col int) rune {
	if col < 9 {
		return rune('1' + col)
	}
	return rune('a' + col - 9)
}

// columnIndex is the inverse of columnLabel, -1 for anything else
func columnIndex(r rune) int {
	switch {
	case r >= '1' && r <= '9':
		return int(r - '1')
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 9
	default:
		return -1
	}
}

// drawSlot draws one board slot at x, y with its disc in the middle two
// cells of both lines
func drawSlot(s tcell.Screen, x, y int, m engine.Marker, highlight bool, t Theme) {
	frameBg := t.Board
	if highlight {
		frameBg = t.Highlight
	}
	frame := tcell.StyleDefault.Background(frameBg)
	disc := tcell.StyleDefault.Background(frameBg).Foreground(markerColor(m, t))

	for dy := 0; dy < cellHeight; dy++ {
		drawRune(s, x, y+dy, frame, ' ')
		drawRune(s, x+1, y+dy, disc, '█')
		drawRune(s, x+2, y+dy, disc, '█')
		drawRune(s, x+3, y+dy, frame, ' ')
	}
}

// drawHeader draws the column labels and marks the cursor column
func drawHeader(s tcell.Screen, x, y, cols, cursor int, turn engine.Marker, t Theme) {
	labelStyle := tcell.StyleDefault.Foreground(t.Label)
	cursorStyle := tcell.StyleDefault.Foreground(t.Cursor).Bold(true)

	for c := 0; c < cols; c++ {
		cx := x + c*cellWidth
		if c == cursor {
			drawRune(s, cx+1, y, cursorStyle, columnLabel(c))
			drawRune(s, cx+2, y, tcell.StyleDefault.Foreground(markerColor(turn, t)), '▼')
			continue
		}
		drawRune(s, cx+1, y, labelStyle, columnLabel(c))
	}
}

// drawBoard draws the header and every slot, top row first. Cells of the
// winning line use the highlight color.
func drawBoard(s tcell.Screen, x, y int, st engine.State, cursor int, t Theme) {
	board := st.Board
	cols, rows := board.Columns(), board.Rows()

	if st.GameOver() {
		cursor = -1
	}
	drawHeader(s, x, y, cols, cursor, st.Turn, t)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			highlight := st.Line.Contains(engine.Coord{Column: c, Row: r})
			drawSlot(s, x+c*cellWidth, y+headerRows+r*cellHeight, board.At(c, r), highlight, t)
		}
	}
}
