package gui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/connect4term/pkg/engine"
)

// BoardView is a tview primitive drawing the grid. A click anywhere in a
// column, or a digit key, selects that column.
type BoardView struct {
	*tview.Box

	state    engine.State
	theme    Theme
	cursor   int
	selected func(column int)
}

func NewBoardView(theme Theme) *BoardView {
	return &BoardView{
		Box:   tview.NewBox(),
		theme: theme,
	}
}

// SetState replaces the state being drawn. The cursor is clamped to the
// board.
func (b *BoardView) SetState(st engine.State) *BoardView {
	b.state = st
	if cols := st.Board.Columns(); b.cursor >= cols {
		b.cursor = cols - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	return b
}

// SetSelectedFunc sets the function called with the column the user picked
func (b *BoardView) SetSelectedFunc(handler func(column int)) *BoardView {
	b.selected = handler
	return b
}

// Size returns the width and height the board needs, header included
func (b *BoardView) Size() (width, height int) {
	return b.state.Board.Columns() * cellWidth, headerRows + b.state.Board.Rows()*cellHeight
}

func (b *BoardView) Cursor() int {
	return b.cursor
}

// ColumnAt maps screen coordinates to a column index, or -1 when x, y is
// outside the grid
func (b *BoardView) ColumnAt(x, y int) int {
	ix, iy, _, _ := b.GetInnerRect()
	w, h := b.Size()

	dx, dy := x-ix, y-iy
	if dx < 0 || dy < 0 || dx >= w || dy >= h {
		return -1
	}
	return dx / cellWidth
}

func (b *BoardView) Draw(screen tcell.Screen) {
	b.Box.Draw(screen)

	x, y, width, height := b.GetInnerRect()
	w, h := b.Size()
	if width < w || height < h {
		drawText(screen, x, y, tcell.StyleDefault.Foreground(b.theme.Label), "window too small")
		return
	}

	drawBoard(screen, x, y, b.state, b.cursor, b.theme)
}

func (b *BoardView) selectColumn(col int) {
	if col < 0 || col >= b.state.Board.Columns() {
		return
	}
	b.cursor = col
	if b.selected != nil {
		b.selected(col)
	}
}

func (b *BoardView) moveCursor(delta int) {
	cols := b.state.Board.Columns()
	if cols == 0 {
		return
	}
	b.cursor = (b.cursor + delta + cols) % cols
}

// InputHandler handles digits 1-9, the arrow keys and Enter
func (b *BoardView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return b.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyLeft:
			b.moveCursor(-1)
		case tcell.KeyRight:
			b.moveCursor(1)
		case tcell.KeyEnter:
			b.selectColumn(b.cursor)
		case tcell.KeyRune:
			r := event.Rune()
			switch {
			case r >= '1' && r <= '9':
				b.selectColumn(int(r - '1'))
			case r == 'h':
				b.moveCursor(-1)
			case r == 'l':
				b.moveCursor(1)
			case r == ' ':
				b.selectColumn(b.cursor)
			}
		}
	})
}

// MouseHandler moves the cursor with the pointer and drops on left click
func (b *BoardView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return b.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !b.InRect(x, y) {
			return false, nil
		}

		col := b.ColumnAt(x, y)
		switch action {
		case tview.MouseMove:
			if col >= 0 {
				b.cursor = col
			}
			consumed = true
		case tview.MouseLeftClick:
			setFocus(b)
			b.selectColumn(col)
			consumed = true
		}
		return
	})
}
