package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/qnkhuat/connect4term/pkg/config"
	"github.com/qnkhuat/connect4term/pkg/engine"
	"github.com/qnkhuat/connect4term/pkg/game"
	"github.com/qnkhuat/connect4term/pkg/gui"
	"github.com/qnkhuat/connect4term/pkg/logging"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "connect4: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("connect4", args, os.Stderr)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogPath, "client", cfg.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	ec, err := cfg.EngineConfig()
	if err != nil {
		return err
	}

	g, err := game.New(ec,
		game.WithSeed(cfg.Seed),
		game.WithNames(cfg.Name, cfg.OpponentName),
		game.WithVsComputer(cfg.VsComputer),
		game.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	logger.Info("new client", "cols", ec.Columns, "rows", ec.Rows, "run", ec.RunLength,
		"seed", g.Seed(), "cpu", cfg.VsComputer, "a", g.Name(engine.PlayerA), "b", g.Name(engine.PlayerB))

	if cfg.Text || !term.IsTerminal(int(os.Stdout.Fd())) {
		return gui.RunText(g, gui.NewTextRenderer(), os.Stdin, os.Stdout)
	}

	var themes []gui.ThemeHex
	if cfg.File != "" {
		themes, err = gui.LoadThemes(cfg.File)
		if err != nil {
			return err
		}
	}
	theme, err := gui.ImportTheme(cfg.Theme, themes)
	if err != nil {
		return err
	}

	app := gui.New(g, theme, logger)

	// Down when receive killed signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		if sig, ok := <-sigc; ok {
			logger.Info("signal received", "signal", sig.String())
			app.Stop()
		}
	}()

	return app.Run()
}
