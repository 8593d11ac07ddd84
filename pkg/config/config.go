// Package config resolves settings for both binaries. Later sources win:
// built-in defaults, the YAML file, the environment (including a .env file)
// and finally command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/qnkhuat/connect4term/pkg/engine"
)

const (
	DefaultTheme       = "classic"
	DefaultSSHListen   = ":2222"
	DefaultIdleTimeout = 5 * time.Minute
	DefaultEnvFile     = ".env"
)

// Environment variables, looked up after the .env file is read
const (
	EnvConfig     = "CONNECT4_CONFIG"
	EnvCols       = "CONNECT4_COLS"
	EnvRows       = "CONNECT4_ROWS"
	EnvWin        = "CONNECT4_WIN"
	EnvStart      = "CONNECT4_START"
	EnvCPU        = "CONNECT4_CPU"
	EnvSeed       = "CONNECT4_SEED"
	EnvTheme      = "CONNECT4_THEME"
	EnvLog        = "CONNECT4_LOG"
	EnvDebug      = "CONNECT4_DEBUG"
	EnvSSHListen  = "CONNECT4_SSH_LISTEN"
	EnvSSHHostKey = "CONNECT4_SSH_HOST_KEY"
	EnvBinary     = "CONNECT4_BINARY"
)

type SSH struct {
	Listen      string        `yaml:"listen"`
	HostKey     string        `yaml:"host_key"`
	Binary      string        `yaml:"binary"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

type Config struct {
	Columns   int    `yaml:"columns"`
	Rows      int    `yaml:"rows"`
	RunLength int    `yaml:"run_length"`
	Start     string `yaml:"start"`

	VsComputer   bool   `yaml:"cpu"`
	Seed         int64  `yaml:"seed"` // 0 picks a seed from the clock
	Name         string `yaml:"name"`
	OpponentName string `yaml:"opponent_name"`

	Theme   string `yaml:"theme"`
	Text    bool   `yaml:"text"`
	LogPath string `yaml:"log"`
	Debug   bool   `yaml:"debug"`

	SSH SSH `yaml:"ssh"`

	// Path of the YAML file that was loaded, if any
	File string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Columns:   engine.DefaultColumns,
		Rows:      engine.DefaultRows,
		RunLength: engine.DefaultRunLength,
		Start:     "a",
		Theme:     DefaultTheme,
		SSH: SSH{
			Listen:      DefaultSSHListen,
			IdleTimeout: DefaultIdleTimeout,
		},
	}
}

// EngineConfig converts the board settings for the engine and validates them
func (c *Config) EngineConfig() (engine.Config, error) {
	start, err := engine.ParseMarker(c.Start)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config: start: %w", err)
	}

	ec := engine.Config{Columns: c.Columns, Rows: c.Rows, RunLength: c.RunLength, Start: start}
	if err := ec.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("config: %w", err)
	}
	return ec, nil
}

func (c *Config) Validate() error {
	if _, err := c.EngineConfig(); err != nil {
		return err
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("config: negative ssh idle timeout %s", c.SSH.IdleTimeout)
	}
	return nil
}

// LoadFile merges the YAML file at path into c. Keys missing from the file
// keep their current value.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(false)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	c.File = path
	return nil
}

// env layers real environment variables over the values read from a .env
// file. Empty variables count as unset.
type env map[string]string

func (e env) get(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, true
	}
	v, ok := e[key]
	return v, ok && v != ""
}

func readEnvFile(path string, required bool) (env, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return env{}, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return env(values), nil
}

func (c *Config) applyEnv(e env) error {
	var err error
	setInt := func(key string, dst *int) {
		if v, ok := e.get(key); ok && err == nil {
			n, perr := strconv.Atoi(strings.TrimSpace(v))
			if perr != nil {
				err = fmt.Errorf("config: %s: invalid integer %q", key, v)
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := e.get(key); ok && err == nil {
			b, perr := strconv.ParseBool(strings.TrimSpace(v))
			if perr != nil {
				err = fmt.Errorf("config: %s: invalid boolean %q", key, v)
				return
			}
			*dst = b
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := e.get(key); ok {
			*dst = v
		}
	}

	setInt(EnvCols, &c.Columns)
	setInt(EnvRows, &c.Rows)
	setInt(EnvWin, &c.RunLength)
	setString(EnvStart, &c.Start)
	setBool(EnvCPU, &c.VsComputer)
	setBool(EnvDebug, &c.Debug)
	setString(EnvTheme, &c.Theme)
	setString(EnvLog, &c.LogPath)
	setString(EnvSSHListen, &c.SSH.Listen)
	setString(EnvSSHHostKey, &c.SSH.HostKey)
	setString(EnvBinary, &c.SSH.Binary)

	if v, ok := e.get(EnvSeed); ok && err == nil {
		n, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if perr != nil {
			return fmt.Errorf("config: %s: invalid integer %q", EnvSeed, v)
		}
		c.Seed = n
	}

	return err
}

// Load builds the configuration for the named binary from args, the
// environment and the optional files they point to. flag.ErrHelp is returned
// as is when -h was requested.
func Load(name string, args []string, output io.Writer) (*Config, error) {
	var (
		configPath, envPath string

		cols, rows, win int
		start           string
		cpu             bool
		seed            int64
		playerName      string
		opponentName    string

		theme   string
		text    bool
		logPath string
		debug   bool

		listen  string
		hostKey string
		binary  string
		idle    time.Duration
	)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}
	fs.StringVar(&configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&envPath, "env", "", "path to a .env file (default ./.env when present)")
	fs.IntVar(&cols, "cols", engine.DefaultColumns, "number of columns")
	fs.IntVar(&rows, "rows", engine.DefaultRows, "number of rows")
	fs.IntVar(&win, "win", engine.DefaultRunLength, "number of markers in a row needed to win")
	fs.StringVar(&start, "start", "a", "player moving first after a reset (a or b)")
	fs.BoolVar(&cpu, "cpu", false, "play against the computer")
	fs.Int64Var(&seed, "seed", 0, "random seed for the computer opponent (0 uses the clock)")
	fs.StringVar(&playerName, "name", "", "name of the first player")
	fs.StringVar(&opponentName, "opponent", "", "name of the second player")
	fs.StringVar(&theme, "theme", DefaultTheme, "color theme")
	fs.BoolVar(&text, "text", false, "use the line based text interface")
	fs.StringVar(&logPath, "log", "", "path to log file")
	fs.BoolVar(&debug, "debug", false, "enable debug logging")
	fs.StringVar(&listen, "listen", DefaultSSHListen, "SSH listen address")
	fs.StringVar(&hostKey, "host-key", "", "SSH host key file (an ephemeral key is generated when empty)")
	fs.StringVar(&binary, "binary", "", "path to the connect4 binary served over SSH")
	fs.DurationVar(&idle, "idle-timeout", DefaultIdleTimeout, "SSH idle timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var (
		e   env
		err error
	)
	if envPath != "" {
		e, err = readEnvFile(envPath, true)
	} else {
		e, err = readEnvFile(DefaultEnvFile, false)
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()

	if configPath == "" {
		configPath, _ = e.get(EnvConfig)
	}
	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(e); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "cols":
			cfg.Columns = cols
		case "rows":
			cfg.Rows = rows
		case "win":
			cfg.RunLength = win
		case "start":
			cfg.Start = start
		case "cpu":
			cfg.VsComputer = cpu
		case "seed":
			cfg.Seed = seed
		case "name":
			cfg.Name = playerName
		case "opponent":
			cfg.OpponentName = opponentName
		case "theme":
			cfg.Theme = theme
		case "text":
			cfg.Text = text
		case "log":
			cfg.LogPath = logPath
		case "debug":
			cfg.Debug = debug
		case "listen":
			cfg.SSH.Listen = listen
		case "host-key":
			cfg.SSH.HostKey = hostKey
		case "binary":
			cfg.SSH.Binary = binary
		case "idle-timeout":
			cfg.SSH.IdleTimeout = idle
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
