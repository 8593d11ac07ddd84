package engine

import (
	"errors"
	"fmt"
)

const (
	DefaultColumns   = 7
	DefaultRows      = 6
	DefaultRunLength = 4
)

// ErrInvalidArgument is wrapped by every error the engine returns
var ErrInvalidArgument = errors.New("invalid argument")

// Config holds the board dimensions, the run length needed to win and the
// player who moves first after a reset.
type Config struct {
	Columns   int
	Rows      int
	RunLength int
	Start     Marker
}

func DefaultConfig() Config {
	return Config{
		Columns:   DefaultColumns,
		Rows:      DefaultRows,
		RunLength: DefaultRunLength,
		Start:     PlayerA,
	}
}

func (c Config) Validate() error {
	if c.Columns < 1 || c.Rows < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidArgument, c.Columns, c.Rows)
	}

	longest := c.Columns
	if c.Rows > longest {
		longest = c.Rows
	}
	if c.RunLength < 2 || c.RunLength > longest {
		return fmt.Errorf("%w: run length %d must be within [2, %d]", ErrInvalidArgument, c.RunLength, longest)
	}

	if !c.Start.Valid() {
		return fmt.Errorf("%w: starting player %s", ErrInvalidArgument, c.Start)
	}

	return nil
}
