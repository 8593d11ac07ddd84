package server

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

func TestHostSignerGenerated(t *testing.T) {
	a, err := hostSigner("")
	require.NoError(t, err)
	require.Equal(t, gossh.KeyAlgoED25519, a.PublicKey().Type())

	b, err := hostSigner("")
	require.NoError(t, err)
	require.NotEqual(t, a.PublicKey().Marshal(), b.PublicKey().Marshal())
}

func TestHostSignerFromFile(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "host_key")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	require.NoError(t, os.WriteFile(path, pemBytes, 0600))

	signer, err := hostSigner(path)
	require.NoError(t, err)
	require.Equal(t, gossh.KeyAlgoRSA, signer.PublicKey().Type())
}

func TestHostSignerErrors(t *testing.T) {
	_, err := hostSigner(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(path, []byte("not a key"), 0600))
	_, err = hostSigner(path)
	require.Error(t, err)
}

func TestSessionName(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{user: "alice", want: "alice"},
		{user: "bob_the-builder", want: "bob_the-builder"},
		{user: "eve; rm -rf /", want: "everm-rf"},
		{user: "", want: ""},
		{user: "a-very-long-user-name-indeed", want: "a-very-long-user"},
		{user: "日本", want: "日本"},
	}
	for _, tt := range tests {
		t.Run(tt.user, func(t *testing.T) {
			require.Equal(t, tt.want, sessionName(tt.user))
		})
	}
}

func TestNewMissingBinary(t *testing.T) {
	_, err := New(Config{Binary: filepath.Join(t.TempDir(), "connect4")}, nil)
	require.Error(t, err)
}

func startServer(t *testing.T, cfg Config) string {
	t.Helper()

	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	if cfg.Binary == "" {
		cfg.Binary = "/bin/sh"
	}

	s, err := New(cfg, nil)
	require.NoError(t, err)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go s.Serve(l)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Shutdown(ctx)
	})

	return l.Addr().String()
}

func dial(t *testing.T, addr string) *gossh.Session {
	t.Helper()

	client, err := gossh.Dial("tcp", addr, &gossh.ClientConfig{
		User:            "alice",
		Auth:            []gossh.AuthMethod{gossh.Password("anything")},
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         5 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	session, err := client.NewSession()
	require.NoError(t, err)
	return session
}

func TestSessionWithoutPty(t *testing.T) {
	addr := startServer(t, Config{})
	session := dial(t, addr)

	var out bytes.Buffer
	session.Stdout = &out
	require.NoError(t, session.Shell())

	err := session.Wait()
	var exitErr *gossh.ExitError
	require.True(t, errors.As(err, &exitErr), "err: %v", err)
	require.Equal(t, 1, exitErr.ExitStatus())
	require.Contains(t, out.String(), "non-interactive terminals are not supported")
}

func TestSessionRunsBinaryInPty(t *testing.T) {
	// sh -c puts the appended "--name alice" into $0 and $1
	addr := startServer(t, Config{Args: []string{"-c", `echo "hello $1 on $TERM"`}})
	session := dial(t, addr)

	require.NoError(t, session.RequestPty("xterm-256color", 24, 80, gossh.TerminalModes{}))

	var out bytes.Buffer
	session.Stdout = &out
	require.NoError(t, session.Shell())
	require.NoError(t, session.Wait())

	require.Contains(t, out.String(), "hello alice on xterm-256color")
}
