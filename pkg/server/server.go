// Package server hosts the game over SSH. Every session gets its own pseudo
// terminal running the connect4 binary, so players only need an ssh client.
package server

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const (
	DefaultIdleTimeout = 5 * time.Minute
	DefaultBinary      = "connect4"
	maxNameLength      = 16
)

type Config struct {
	Addr        string
	HostKeyPath string // an ephemeral ed25519 key is generated when empty
	Binary      string // defaults to connect4 next to the running executable
	Args        []string
	IdleTimeout time.Duration
}

type Server struct {
	cfg    Config
	ssh    *ssh.Server
	log    *slog.Logger
	active atomic.Int64
}

func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	binary, err := resolveBinary(cfg.Binary)
	if err != nil {
		return nil, err
	}
	cfg.Binary = binary

	signer, err := hostSigner(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, log: logger}
	s.ssh = &ssh.Server{
		Addr:        cfg.Addr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     s.handle,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}
	s.ssh.AddHostKey(signer)

	logger.Info("ssh server configured", "addr", cfg.Addr, "binary", binary,
		"host_key", signer.PublicKey().Type(), "fingerprint", gossh.FingerprintSHA256(signer.PublicKey()))

	return s, nil
}

func resolveBinary(name string) (string, error) {
	if name == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("server: locate executable: %w", err)
		}
		name = filepath.Join(filepath.Dir(exe), DefaultBinary)
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("server: game binary: %w", err)
	}
	return path, nil
}

// hostSigner loads the PEM encoded private key at path. Without a path a
// fresh ed25519 key is generated, so clients see a new host key after every
// restart.
func hostSigner(path string) (gossh.Signer, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("server: host key: %w", err)
		}
		signer, err := gossh.ParsePrivateKey(b)
		if err != nil {
			return nil, fmt.Errorf("server: host key %s: %w", path, err)
		}
		return signer, nil
	}

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("server: generate host key: %w", err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("server: generate host key: %w", err)
	}
	return signer, nil
}

// sessionName turns an ssh user into a player name: letters, digits, dash
// and underscore only, at most maxNameLength runes
func sessionName(user string) string {
	var (
		b strings.Builder
		n int
	)
	for _, r := range user {
		if n == maxNameLength {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
			n++
		}
	}
	return b.String()
}

func (s *Server) handle(sess ssh.Session) {
	log := s.log.With("user", sess.User(), "remote", sess.RemoteAddr().String())

	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "failed to start connect4: non-interactive terminals are not supported\n")
		log.Info("rejected session without pty")

		sess.Exit(1)
		return
	}

	active := s.active.Add(1)
	defer s.active.Add(-1)
	log.Info("session started", "term", ptyReq.Term, "active", active)

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	args := append([]string{}, s.cfg.Args...)
	if name := sessionName(sess.User()); name != "" {
		args = append(args, "--name", name)
	}
	cmd := exec.CommandContext(cmdCtx, s.cfg.Binary, args...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		log.Error("start game", "err", err)

		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cancelCmd()
	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		log.Debug("game exited", "err", err)
	}
	if code < 0 {
		code = 1
	}
	log.Info("session ended", "code", code)

	sess.Exit(code)
}

func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.Addr)
	return s.ssh.ListenAndServe()
}

func (s *Server) Serve(l net.Listener) error {
	s.log.Info("listening", "addr", l.Addr().String())
	return s.ssh.Serve(l)
}

// Shutdown stops accepting connections and waits for open sessions until
// ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.ssh.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.ssh.Close()
}

// Active returns the number of sessions currently running a game
func (s *Server) Active() int64 {
	return s.active.Load()
}
