package game

import (
	"io"
	"log/slog"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/qnkhuat/connect4term/pkg/engine"
	"github.com/qnkhuat/connect4term/pkg/event"
)

// Listener receives events after the state change that produced them, in
// the order the changes happened, even when several goroutines drive the
// Game. It runs on the caller's goroutine without the state lock, so it may
// read back from the Game, but it must not call Play, NewGame, PlayComputer
// or SetVsComputer.
type Listener func(ev event.Event)

// Game wires an engine to a computer opponent and the buttons of the UI:
// playing a column, New Game and Play CPU.
type Game struct {
	eng       *engine.Engine
	opponent  engine.Opponent
	names     map[engine.Marker]string
	listeners []Listener
	log       *slog.Logger
	seed      int64

	mu sync.Mutex
	// pub is held from a state change until its events are delivered
	pub sync.Mutex
}

type Option func(*Game)

func WithOpponent(o engine.Opponent) Option {
	return func(g *Game) {
		g.opponent = o
	}
}

// WithSeed seeds the default random opponent. Zero, the default, seeds it
// from the clock. Ignored when WithOpponent is given.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.seed = seed
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// WithNames sets the display names. Empty names are replaced with a
// generated one.
func WithNames(a, b string) Option {
	return func(g *Game) {
		g.names[engine.PlayerA] = a
		g.names[engine.PlayerB] = b
	}
}

func WithVsComputer(on bool) Option {
	return func(g *Game) {
		g.eng.SetVsComputer(on)
	}
}

func New(cfg engine.Config, opts ...Option) (*Game, error) {
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		eng:   eng,
		names: make(map[engine.Marker]string),
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.opponent == nil {
		if g.seed == 0 {
			g.seed = time.Now().UnixNano()
		}
		g.opponent = engine.NewRandomOpponent(g.seed)
	} else {
		g.seed = 0
	}
	for _, m := range []engine.Marker{engine.PlayerA, engine.PlayerB} {
		if g.names[m] == "" {
			g.names[m] = petname.Generate(2, "-")
		}
	}

	return g, nil
}

func (g *Game) Subscribe(l Listener) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.listeners = append(g.listeners, l)
}

func (g *Game) Name(m engine.Marker) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.names[m]
}

// Seed returns the seed of the default random opponent, or zero when the
// opponent came from WithOpponent
func (g *Game) Seed() int64 {
	return g.seed
}

func (g *Game) Config() engine.Config {
	return g.eng.Config()
}

func (g *Game) State() engine.State {
	return g.eng.State()
}

// Play drops the current player's marker into column. When playing against
// the computer and the game is still on, the computer replies straight away.
// Every applied drop is returned in order.
func (g *Game) Play(column int) ([]engine.DropResult, error) {
	g.pub.Lock()
	defer g.pub.Unlock()

	g.mu.Lock()

	res, err := g.eng.Drop(column)
	if err != nil {
		g.mu.Unlock()
		g.log.Warn("rejected drop", "column", column, "err", err)
		return nil, err
	}
	if !res.Applied {
		g.mu.Unlock()
		g.log.Debug("ignored drop", "column", column, "status", res.Status)
		return nil, nil
	}

	results := []engine.DropResult{res}
	events := g.dropEvents(res, false)

	if !res.GameOver() && g.eng.VsComputer() {
		if cres, ok := g.computerMove(); ok {
			results = append(results, cres)
			events = append(events, g.dropEvents(cres, true)...)
		}
	}

	g.mu.Unlock()
	g.publish(events)

	return results, nil
}

func (g *Game) computerMove() (engine.DropResult, bool) {
	col, ok := g.opponent.Choose(g.eng.Snapshot())
	if !ok {
		return engine.DropResult{}, false
	}

	res, err := g.eng.Drop(col)
	if err != nil || !res.Applied {
		g.log.Error("computer move failed", "column", col, "err", err)
		return engine.DropResult{}, false
	}

	return res, true
}

func (g *Game) dropEvents(res engine.DropResult, computer bool) []event.Event {
	g.log.Debug("drop", "column", res.Coord.Column, "row", res.Coord.Row, "marker", res.Marker, "computer", computer)

	events := []event.Event{event.Drop{
		Column:   res.Coord.Column,
		Row:      res.Coord.Row,
		Marker:   res.Marker,
		Computer: computer,
	}}
	if res.GameOver() {
		g.log.Info("game over", "status", res.Status, "winner", res.Winner)
		events = append(events, event.GameOver{Status: res.Status, Winner: res.Winner, Line: res.Line})
	}

	return events
}

// NewGame clears the board. The computer opponent stays as it was.
func (g *Game) NewGame() {
	g.pub.Lock()
	defer g.pub.Unlock()

	g.mu.Lock()
	ev := g.reset()
	g.mu.Unlock()

	g.publish([]event.Event{ev})
}

// PlayComputer turns the computer opponent on, starting a new game first if
// the current one is over.
func (g *Game) PlayComputer() {
	g.pub.Lock()
	defer g.pub.Unlock()

	g.mu.Lock()

	var events []event.Event
	if g.eng.GameOver() {
		events = append(events, g.reset())
	}
	if !g.eng.VsComputer() {
		g.eng.SetVsComputer(true)
		events = append(events, event.Mode{VsComputer: true})
	}

	g.mu.Unlock()
	g.publish(events)
}

func (g *Game) SetVsComputer(on bool) {
	g.pub.Lock()
	defer g.pub.Unlock()

	g.mu.Lock()
	changed := g.eng.VsComputer() != on
	g.eng.SetVsComputer(on)
	g.mu.Unlock()

	if changed {
		g.publish([]event.Event{event.Mode{VsComputer: on}})
	}
}

func (g *Game) reset() event.Event {
	g.eng.Reset()
	turn := g.eng.Turn()
	g.log.Info("new game", "turn", turn, "vs_computer", g.eng.VsComputer())

	return event.Reset{Turn: turn}
}

func (g *Game) publish(events []event.Event) {
	if len(events) == 0 {
		return
	}

	g.mu.Lock()
	listeners := make([]Listener, len(g.listeners))
	copy(listeners, g.listeners)
	g.mu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}
