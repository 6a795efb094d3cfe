package game

import (
	"errors"

	"loteria/internal/board"
	"loteria/internal/card"
	"loteria/internal/deck"
	"loteria/internal/pattern"
)

// Rule violations. Every guard in the engine returns one of these, possibly
// wrapped; match with errors.Is.
var (
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrNotInProgress      = errors.New("game is not in progress")
	ErrInvalidTransition  = errors.New("invalid game state transition")

	ErrGameFull      = errors.New("game is full")
	ErrNoPlayers     = errors.New("game has no players")
	ErrDeckExhausted = errors.New("deck is exhausted")

	ErrEmptyName          = errors.New("player name cannot be empty")
	ErrNilPlayer          = errors.New("player is required")
	ErrDuplicatePlayer    = errors.New("player already joined")
	ErrInvalidBoardCount  = errors.New("board count out of range")
	ErrInvalidMaxPlayers  = errors.New("max players must be positive")
	ErrBoardOwnerMismatch = errors.New("board belongs to another player")

	ErrUnknownPlayer     = errors.New("unknown player")
	ErrUnknownPattern    = errors.New("unknown pattern")
	ErrInvalidBoardIndex = errors.New("invalid board index")
)

// ErrorKind classifies failures so front ends can pick a message or status.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation: bad constructor arguments. Retrying with the same input fails again.
	KindValidation
	// KindPhase: command not allowed in the current state.
	KindPhase
	// KindCapacity: a limit or resource ran out.
	KindCapacity
	// KindLookup: a name or index did not resolve.
	KindLookup
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPhase:
		return "phase"
	case KindCapacity:
		return "capacity"
	case KindLookup:
		return "lookup"
	default:
		return "unknown"
	}
}

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrGameAlreadyStarted, KindPhase},
	{ErrNotInProgress, KindPhase},
	{ErrInvalidTransition, KindPhase},

	{ErrGameFull, KindCapacity},
	{ErrNoPlayers, KindCapacity},
	{ErrDeckExhausted, KindCapacity},
	{deck.ErrEmptyDeck, KindCapacity},
	{board.ErrInsufficientCards, KindCapacity},

	{ErrEmptyName, KindValidation},
	{ErrNilPlayer, KindValidation},
	{ErrDuplicatePlayer, KindValidation},
	{ErrInvalidBoardCount, KindValidation},
	{ErrInvalidMaxPlayers, KindValidation},
	{ErrBoardOwnerMismatch, KindValidation},
	{board.ErrInvalidSize, KindValidation},
	{board.ErrNoOwner, KindValidation},
	{board.ErrNotGenerated, KindValidation},
	{pattern.ErrEmptyName, KindValidation},
	{pattern.ErrNoPositions, KindValidation},
	{pattern.ErrInvalidKind, KindValidation},
	{pattern.ErrUnsupportedSize, KindValidation},

	{ErrUnknownPlayer, KindLookup},
	{ErrUnknownPattern, KindLookup},
	{ErrInvalidBoardIndex, KindLookup},
	{board.ErrOutOfRange, KindLookup},
}

// KindOf returns the kind of the first known error in err's chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	var invalid *card.InvalidCardError
	if errors.As(err, &invalid) {
		return KindValidation
	}
	return KindUnknown
}
