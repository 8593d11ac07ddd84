package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gliderlabs/ssh"

	"github.com/qnkhuat/connect4term/pkg/config"
	"github.com/qnkhuat/connect4term/pkg/logging"
	"github.com/qnkhuat/connect4term/pkg/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "connect4-server: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load("connect4-server", args, os.Stderr)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogPath, "server", cfg.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Sessions run the client with the same board settings
	var clientArgs []string
	if cfg.File != "" {
		clientArgs = append(clientArgs, "--config", cfg.File)
	}
	clientArgs = append(clientArgs,
		"--cols", fmt.Sprint(cfg.Columns),
		"--rows", fmt.Sprint(cfg.Rows),
		"--win", fmt.Sprint(cfg.RunLength),
		"--start", cfg.Start,
		"--theme", cfg.Theme,
		fmt.Sprintf("--cpu=%t", cfg.VsComputer),
	)

	s, err := server.New(server.Config{
		Addr:        cfg.SSH.Listen,
		HostKeyPath: cfg.SSH.HostKey,
		Binary:      cfg.SSH.Binary,
		Args:        clientArgs,
		IdleTimeout: cfg.SSH.IdleTimeout,
	}, logger)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.ListenAndServe()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigc:
		logger.Info("shutting down", "signal", sig.String(), "active", s.Active())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
