package gui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/connect4term/pkg/engine"
	"github.com/qnkhuat/connect4term/pkg/game"
)

// fixedOpponent always answers with the same column
type fixedOpponent int

func (f fixedOpponent) Choose(b engine.Board) (int, bool) {
	if b.ColumnFull(int(f)) {
		return -1, false
	}
	return int(f), true
}

func noColor(t *testing.T) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func newTestGame(t *testing.T, opts ...game.Option) *game.Game {
	t.Helper()

	opts = append([]game.Option{game.WithNames("alice", "bob")}, opts...)
	g, err := game.New(engine.DefaultConfig(), opts...)
	require.NoError(t, err)
	return g
}

func names(m engine.Marker) string {
	return map[engine.Marker]string{engine.PlayerA: "alice", engine.PlayerB: "bob"}[m]
}

func TestRenderEmptyBoard(t *testing.T) {
	noColor(t)

	want := strings.Join([]string{
		" 1 2 3 4 5 6 7",
		" . . . . . . .",
		" . . . . . . .",
		" . . . . . . .",
		" . . . . . . .",
		" . . . . . . .",
		" . . . . . . .",
		"Yellow (alice) to move",
	}, "\n")
	require.Equal(t, want, NewTextRenderer().Render(newState(t), names))
}

func TestRenderWin(t *testing.T) {
	noColor(t)

	want := strings.Join([]string{
		" 1 2 3 4 5 6 7",
		" . . . . . . .",
		" . . . . . . .",
		" . . . . . . .",
		" . . . . . . .",
		" r r r . . . .",
		" Y Y Y Y . . .",
		"Yellow (alice) wins!",
	}, "\n")
	require.Equal(t, want, NewTextRenderer().Render(newState(t, 0, 0, 1, 1, 2, 2, 3), names))
}

func TestRenderStatus(t *testing.T) {
	noColor(t)
	r := NewTextRenderer()

	st := newState(t, 3)
	st.VsComputer = true
	out := r.Render(st, func(engine.Marker) string { return "" })
	require.True(t, strings.HasSuffix(out, "\nRed to move vs CPU"), out)

	st.Status = engine.Draw
	out = r.Render(st, names)
	require.True(t, strings.HasSuffix(out, "\nDraw!"), out)
}

func TestRunText(t *testing.T) {
	noColor(t)
	g := newTestGame(t)

	in := strings.NewReader("4\n\n4\nxx\n9\nq\n1\n")
	var out bytes.Buffer
	require.NoError(t, RunText(g, NewTextRenderer(), in, &out))

	st := g.State()
	require.Equal(t, 2, st.Moves)
	require.Equal(t, engine.PlayerA, st.Board.At(3, 5))
	require.Equal(t, engine.PlayerB, st.Board.At(3, 4))

	require.Contains(t, out.String(), `unknown command "xx"`)
	require.Contains(t, out.String(), "out of range")
}

func TestRunTextCommands(t *testing.T) {
	noColor(t)
	g := newTestGame(t, game.WithOpponent(fixedOpponent(6)))

	var out bytes.Buffer
	require.NoError(t, RunText(g, NewTextRenderer(), strings.NewReader("1\nc\n2\n"), &out))

	st := g.State()
	require.True(t, st.VsComputer)
	require.Equal(t, 3, st.Moves)
	require.Equal(t, engine.PlayerA, st.Board.At(6, 5))
	require.True(t, strings.HasSuffix(out.String(), "Red (bob) to move vs CPU\n> "), out.String())

	out.Reset()
	require.NoError(t, RunText(g, NewTextRenderer(), strings.NewReader("n\nh\n"), &out))
	require.Equal(t, 0, g.State().Moves)
	require.Contains(t, out.String(), "new game")
}

func TestRunTextIgnoredDrop(t *testing.T) {
	noColor(t)
	g := newTestGame(t)

	var out bytes.Buffer
	require.NoError(t, RunText(g, NewTextRenderer(), strings.NewReader(strings.Repeat("1\n", 7)), &out))
	require.Equal(t, 6, g.State().Moves)
	require.Contains(t, out.String(), "column is full or the game is over")
}

func TestColumnLabelRoundTrip(t *testing.T) {
	for col := 0; col < 9+26; col++ {
		require.Equal(t, col, columnIndex(columnLabel(col)), "column %d", col)
	}
	require.Equal(t, -1, columnIndex('0'))
	require.Equal(t, -1, columnIndex('A'))
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		cmd  string
		want int
		ok   bool
	}{
		{cmd: "1", want: 0, ok: true},
		{cmd: "12", want: 11, ok: true},
		{cmd: "a", want: 9, ok: true},
		{cmd: "b", want: 10, ok: true},
		{cmd: "ab", ok: false},
		{cmd: "!", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			col, ok := parseColumn(tt.cmd)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, col)
			}
		})
	}
}

func TestRunTextLetterColumns(t *testing.T) {
	noColor(t)
	g, err := game.New(engine.Config{Columns: 11, Rows: 6, RunLength: 4, Start: engine.PlayerA}, game.WithNames("alice", "bob"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, RunText(g, NewTextRenderer(), strings.NewReader("a\nB\n10\n"), &out))

	st := g.State()
	require.Equal(t, 3, st.Moves)
	require.Equal(t, engine.PlayerA, st.Board.At(9, 5))
	require.Equal(t, engine.PlayerB, st.Board.At(10, 5))
	require.Equal(t, engine.PlayerA, st.Board.At(9, 4))
	require.Contains(t, out.String(), " 1 2 3 4 5 6 7 8 9 a b\n")
	require.NotContains(t, out.String(), "unknown command")
}
