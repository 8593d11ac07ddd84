package gui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/qnkhuat/connect4term/pkg/engine"
	"github.com/qnkhuat/connect4term/pkg/game"
)

const textHelp = `commands:
  1-9    drop a disc in that column
  a-z    columns past 9, by header label (n, c, h and q stay commands)
  10..   columns past 9, by number
  n      new game
  c      play against the computer
  q      quit`

// TextRenderer draws the board as plain lines. Yellow discs are y and red
// discs r, upper case when part of the winning line, so the board reads
// the same with colors off.
type TextRenderer struct {
	discs     map[engine.Marker]*color.Color
	highlight map[engine.Marker]*color.Color
	empty     *color.Color
	label     *color.Color
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		discs: map[engine.Marker]*color.Color{
			engine.PlayerA: color.New(color.FgYellow, color.Bold),
			engine.PlayerB: color.New(color.FgRed, color.Bold),
		},
		highlight: map[engine.Marker]*color.Color{
			engine.PlayerA: color.New(color.FgYellow, color.Bold, color.BgGreen),
			engine.PlayerB: color.New(color.FgRed, color.Bold, color.BgGreen),
		},
		empty: color.New(color.FgBlue),
		label: color.New(color.Faint),
	}
}

func discRune(m engine.Marker, winning bool) string {
	var s string
	switch m {
	case engine.PlayerA:
		s = "y"
	case engine.PlayerB:
		s = "r"
	default:
		return "."
	}
	if winning {
		return strings.ToUpper(s)
	}
	return s
}

func (r *TextRenderer) paint(m engine.Marker, s string) string {
	if c, ok := r.discs[m]; ok {
		return c.Sprint(s)
	}
	return s
}

// Render returns the header, the grid top row first and a status line
func (r *TextRenderer) Render(st engine.State, name func(engine.Marker) string) string {
	var b strings.Builder
	board := st.Board

	for c := 0; c < board.Columns(); c++ {
		b.WriteString(" ")
		b.WriteString(r.label.Sprint(string(columnLabel(c))))
	}
	b.WriteString("\n")

	for row := 0; row < board.Rows(); row++ {
		for c := 0; c < board.Columns(); c++ {
			m := board.At(c, row)
			winning := st.Line.Contains(engine.Coord{Column: c, Row: row})

			b.WriteString(" ")
			switch {
			case m == engine.Empty:
				b.WriteString(r.empty.Sprint(discRune(m, false)))
			case winning:
				b.WriteString(r.highlight[m].Sprint(discRune(m, true)))
			default:
				b.WriteString(r.discs[m].Sprint(discRune(m, false)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(statusLine(st, name, r.paint))
	return b.String()
}

// parseColumn reads a 1-based column number or a single header label and
// returns the column index
func parseColumn(cmd string) (int, bool) {
	if n, err := strconv.Atoi(cmd); err == nil {
		return n - 1, true
	}
	if r := []rune(cmd); len(r) == 1 {
		if col := columnIndex(r[0]); col >= 0 {
			return col, true
		}
	}
	return 0, false
}

// RunText plays a game over a line based connection: every line is a
// command and the board is printed after each one. It returns when in is
// exhausted or the user quits.
func RunText(g *game.Game, r *TextRenderer, in io.Reader, out io.Writer) error {
	show := func() {
		fmt.Fprintln(out, r.Render(g.State(), g.Name))
		fmt.Fprint(out, "> ")
	}

	show()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch cmd {
		case "":
			fmt.Fprint(out, "> ")
			continue
		case "q", "quit", "exit":
			return nil
		case "n", "new":
			g.NewGame()
		case "c", "cpu":
			g.PlayComputer()
		case "h", "help", "?":
			fmt.Fprintln(out, textHelp)
		default:
			col, ok := parseColumn(cmd)
			if !ok {
				fmt.Fprintf(out, "unknown command %q, type h for help\n", cmd)
				fmt.Fprint(out, "> ")
				continue
			}
			results, err := g.Play(col)
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
				fmt.Fprint(out, "> ")
				continue
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "column is full or the game is over")
			}
		}
		show()
	}

	return scanner.Err()
}
