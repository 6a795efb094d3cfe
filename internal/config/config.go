package config

import (
	"errors"
	"fmt"

	"loteria/internal/card"
)

// DefaultDBPath is where the web server keeps finished games when no path is
// configured. The text interface runs without a store unless one is set.
const DefaultDBPath = "loteria.db"

// Config holds the settings shared by the server and the text interface.
type Config struct {
	Addr       string
	DBPath     string
	MaxPlayers int
	BoardSize  int
	Dev        bool
}

var (
	ErrInvalidMaxPlayers = errors.New("max players must be at least 1")
	ErrInvalidBoardSize  = errors.New("board size must be at least 1")
	ErrBoardTooLarge     = errors.New("board needs more cards than the deck holds")
)

// Default returns the standard four-player, 4x4 configuration.
func Default() Config {
	return Config{
		Addr:       ":8080",
		MaxPlayers: 4,
		BoardSize:  4,
	}
}

// Validate reports the first setting the engine could not work with.
func (c Config) Validate() error {
	if c.MaxPlayers < 1 {
		return fmt.Errorf("%d: %w", c.MaxPlayers, ErrInvalidMaxPlayers)
	}
	if c.BoardSize < 1 {
		return fmt.Errorf("%d: %w", c.BoardSize, ErrInvalidBoardSize)
	}
	if c.BoardSize*c.BoardSize > card.Size {
		return fmt.Errorf("%dx%d: %w", c.BoardSize, c.BoardSize, ErrBoardTooLarge)
	}
	return nil
}
