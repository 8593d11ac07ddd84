// Package gui is the presentation layer: a tview application with a
// clickable board, and a line based text mode for dumb terminals.
package gui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/connect4term/pkg/engine"
	"github.com/qnkhuat/connect4term/pkg/event"
	"github.com/qnkhuat/connect4term/pkg/game"
)

const (
	sidePaneWidth = 24
	hint          = "1-9/click drop  n new  c cpu  q quit"
)

type App struct {
	App     *tview.Application
	Board   *BoardView
	Layout  *tview.Grid
	Status  *tview.TextView
	Players *tview.TextView

	game  *game.Game
	theme Theme
	log   *slog.Logger
}

func New(g *game.Game, theme Theme, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a := &App{
		game:  g,
		theme: theme,
		log:   logger,
	}

	a.Board = NewBoardView(theme).SetState(g.State())
	a.Board.SetSelectedFunc(a.play)

	newGameBtn := tview.NewButton(ActionNewGame.String()).SetSelectedFunc(func() {
		a.game.NewGame()
		a.focusBoard()
	})
	cpuBtn := tview.NewButton(ActionPlayCPU.String()).SetSelectedFunc(func() {
		a.game.PlayComputer()
		a.focusBoard()
	})
	quitBtn := tview.NewButton(ActionQuit.String()).SetSelectedFunc(a.Stop)

	a.Status = tview.NewTextView().SetDynamicColors(true)
	a.Players = tview.NewTextView().SetDynamicColors(true)

	gameOptions := tview.NewGrid().
		SetColumns(-1).
		SetRows(1, 1, 1, 1, 1, 1, -1).
		AddItem(newGameBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(cpuBtn, 2, 0, 1, 1, 0, 0, false).
		AddItem(quitBtn, 4, 0, 1, 1, 0, 0, false).
		AddItem(a.Players, 6, 0, 1, 1, 0, 0, false)

	w, h := a.Board.Size()
	hintText := tview.NewTextView().SetText(hint).SetTextColor(theme.Label)

	a.Layout = tview.NewGrid().
		SetRows(-1, 1, h, 1, -1).
		SetColumns(-1, w, 2, sidePaneWidth, -1).
		AddItem(a.Status, 1, 1, 1, 3, 0, 0, false).
		AddItem(a.Board, 2, 1, 1, 1, 0, 0, true).
		AddItem(gameOptions, 2, 3, 1, 1, 0, 0, false).
		AddItem(hintText, 3, 1, 1, 3, 0, 0, false)

	a.App = tview.NewApplication().
		SetRoot(a.Layout, true).
		EnableMouse(true).
		SetInputCapture(a.handleKey)

	g.Subscribe(a.handleEvent)
	a.refresh()

	return a
}

func (a *App) Run() error {
	return a.App.Run()
}

func (a *App) Stop() {
	a.App.Stop()
}

func (a *App) focusBoard() {
	a.App.SetFocus(a.Board)
}

func (a *App) play(column int) {
	if _, err := a.game.Play(column); err != nil {
		a.log.Warn("play", "column", column, "err", err)
	}
}

// handleKey holds the shortcuts that work whichever widget has focus
func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyCtrlC {
		a.Stop()
		return nil
	}
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch event.Rune() {
	case 'n':
		a.game.NewGame()
	case 'c':
		a.game.PlayComputer()
	case 'q':
		a.Stop()
	default:
		return event
	}
	a.focusBoard()
	return nil
}

func (a *App) handleEvent(ev event.Event) {
	switch e := ev.(type) {
	case event.Drop:
		a.log.Debug("ui drop", "column", e.Column, "row", e.Row, "computer", e.Computer)
	case event.GameOver:
		a.log.Debug("ui game over", "status", e.Status, "winner", e.Winner)
	}
	a.refresh()
}

// refresh copies the game state into the widgets. tview redraws once the
// event that triggered the change has been handled.
func (a *App) refresh() {
	st := a.game.State()
	a.Board.SetState(st)
	a.Status.SetText(statusLine(st, a.game.Name, a.paint))

	var b strings.Builder
	for _, m := range []engine.Marker{engine.PlayerA, engine.PlayerB} {
		fmt.Fprintf(&b, "%s %s\n", a.paint(m, "●"), a.game.Name(m))
	}
	if st.VsComputer {
		b.WriteString("\nvs CPU")
	}
	a.Players.SetText(b.String())
}

// paint wraps s in a tview color tag for the marker's theme color
func (a *App) paint(m engine.Marker, s string) string {
	c := markerColor(m, a.theme)
	if c == tcell.ColorDefault {
		return s
	}
	return fmt.Sprintf("[%s]%s[-]", fmtHex(c), s)
}
