package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/connect4term/pkg/engine"
)

func newState(t *testing.T, columns ...int) engine.State {
	t.Helper()

	e, err := engine.New(engine.DefaultConfig())
	require.NoError(t, err)
	for _, c := range columns {
		res, err := e.Drop(c)
		require.NoError(t, err)
		require.True(t, res.Applied)
	}
	return e.State()
}

func noFocus(tview.Primitive) {}

func TestBoardViewSize(t *testing.T) {
	b := NewBoardView(ThemeClassic).SetState(newState(t))

	w, h := b.Size()
	require.Equal(t, 7*cellWidth, w)
	require.Equal(t, headerRows+6*cellHeight, h)
}

func TestBoardViewColumnAt(t *testing.T) {
	b := NewBoardView(ThemeClassic).SetState(newState(t))
	b.SetRect(2, 3, 40, 20)

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{name: "header of first column", x: 2, y: 3, want: 0},
		{name: "bottom of last column", x: 2 + 6*cellWidth + 3, y: 3 + 12, want: 6},
		{name: "middle", x: 2 + 3*cellWidth + 1, y: 8, want: 3},
		{name: "left of board", x: 1, y: 5, want: -1},
		{name: "above board", x: 4, y: 2, want: -1},
		{name: "right of board", x: 2 + 7*cellWidth, y: 5, want: -1},
		{name: "below board", x: 4, y: 3 + 13, want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, b.ColumnAt(tt.x, tt.y))
		})
	}
}

func TestBoardViewMouseClickSelectsColumn(t *testing.T) {
	var got []int
	b := NewBoardView(ThemeClassic).SetState(newState(t))
	b.SetRect(0, 0, 40, 20)
	b.SetSelectedFunc(func(col int) { got = append(got, col) })

	handler := b.MouseHandler()

	consumed, _ := handler(tview.MouseLeftClick, tcell.NewEventMouse(3*cellWidth+2, 9, tcell.Button1, tcell.ModNone), noFocus)
	require.True(t, consumed)
	require.Equal(t, []int{3}, got)
	require.Equal(t, 3, b.Cursor())

	// Inside the box but right of the grid
	consumed, _ = handler(tview.MouseLeftClick, tcell.NewEventMouse(35, 2, tcell.Button1, tcell.ModNone), noFocus)
	require.True(t, consumed)
	require.Equal(t, []int{3}, got)

	consumed, _ = handler(tview.MouseLeftClick, tcell.NewEventMouse(60, 30, tcell.Button1, tcell.ModNone), noFocus)
	require.False(t, consumed)
	require.Equal(t, []int{3}, got)
}

func TestBoardViewMouseMoveMovesCursor(t *testing.T) {
	b := NewBoardView(ThemeClassic).SetState(newState(t))
	b.SetRect(0, 0, 40, 20)
	b.SetSelectedFunc(func(int) { t.Fatal("move must not select") })

	consumed, _ := b.MouseHandler()(tview.MouseMove, tcell.NewEventMouse(5*cellWidth, 4, tcell.ButtonNone, tcell.ModNone), noFocus)
	require.True(t, consumed)
	require.Equal(t, 5, b.Cursor())
}

func TestBoardViewKeys(t *testing.T) {
	var got []int
	b := NewBoardView(ThemeClassic).SetState(newState(t))
	b.SetSelectedFunc(func(col int) { got = append(got, col) })

	handler := b.InputHandler()
	press := func(key tcell.Key, r rune) {
		handler(tcell.NewEventKey(key, r, tcell.ModNone), noFocus)
	}

	press(tcell.KeyRune, '4')
	require.Equal(t, []int{3}, got)

	// Digits past the last column are ignored
	press(tcell.KeyRune, '9')
	require.Equal(t, []int{3}, got)

	press(tcell.KeyRight, 0)
	press(tcell.KeyRight, 0)
	press(tcell.KeyEnter, 0)
	require.Equal(t, []int{3, 5}, got)

	// The cursor wraps around both edges
	press(tcell.KeyRight, 0)
	press(tcell.KeyRight, 0)
	require.Equal(t, 0, b.Cursor())
	press(tcell.KeyLeft, 0)
	require.Equal(t, 6, b.Cursor())
}

func TestBoardViewDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	b := NewBoardView(ThemeClassic).SetState(newState(t, 0, 1))
	b.SetRect(0, 0, 40, 20)
	b.Draw(screen)

	r, _, _, _ := screen.GetContent(1, 0)
	require.Equal(t, '1', r)
	r, _, _, _ = screen.GetContent(6*cellWidth+1, 0)
	require.Equal(t, '7', r)

	// A in column 0 and B in column 1, both on the bottom row
	bottom := headerRows + 5*cellHeight
	r, _, style, _ := screen.GetContent(1, bottom)
	fg, bg, _ := style.Decompose()
	require.Equal(t, '█', r)
	require.Equal(t, ThemeClassic.PlayerA, fg)
	require.Equal(t, ThemeClassic.Board, bg)

	_, _, style, _ = screen.GetContent(cellWidth+2, bottom+1)
	fg, _, _ = style.Decompose()
	require.Equal(t, ThemeClassic.PlayerB, fg)

	_, _, style, _ = screen.GetContent(2*cellWidth+1, bottom)
	fg, _, _ = style.Decompose()
	require.Equal(t, ThemeClassic.Slot, fg)
}

func TestBoardViewDrawHighlightsWinningLine(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	st := newState(t, 0, 6, 1, 6, 2, 6, 3)
	require.Equal(t, engine.Won, st.Status)

	b := NewBoardView(ThemeClassic).SetState(st)
	b.SetRect(0, 0, 40, 20)
	b.Draw(screen)

	bottom := headerRows + 5*cellHeight
	for c := 0; c < 4; c++ {
		_, _, style, _ := screen.GetContent(c*cellWidth, bottom)
		_, bg, _ := style.Decompose()
		require.Equal(t, ThemeClassic.Highlight, bg, "column %d", c)
	}
	_, _, style, _ := screen.GetContent(6*cellWidth, bottom)
	_, bg, _ := style.Decompose()
	require.Equal(t, ThemeClassic.Board, bg)
}

func TestBoardViewDrawTooSmall(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	b := NewBoardView(ThemeClassic).SetState(newState(t))
	b.SetRect(0, 0, 10, 5)
	b.Draw(screen)

	r, _, _, _ := screen.GetContent(0, 0)
	require.Equal(t, 'w', r)
}
