package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"loteria/internal/board"
	"loteria/internal/card"
	"loteria/internal/deck"
	"loteria/internal/pattern"
)

// Engine runs one Lotería game. It is not safe for concurrent use; callers
// serialize access (see session.Table).
type Engine struct {
	id         string
	maxPlayers int
	catalog    *card.Catalog
	deck       *deck.Deck
	rng        *rand.Rand
	now        func() time.Time

	players []*Player
	state   State
	current card.Card

	winner     *Player
	winPattern pattern.Pattern
	winBoard   int

	startedAt time.Time
	endedAt   time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the source used for deck shuffles and board generation.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed is WithRand over a seeded PCG source.
func WithSeed(seed uint64) Option {
	return WithRand(deck.NewRand(seed))
}

// WithClock overrides time.Now for start and end stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCatalog plays with a catalog other than the standard 54 cards.
func WithCatalog(c *card.Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// New creates an engine waiting for up to maxPlayers players.
func New(maxPlayers int, opts ...Option) (*Engine, error) {
	if maxPlayers < 1 {
		return nil, fmt.Errorf("max players %d: %w", maxPlayers, ErrInvalidMaxPlayers)
	}
	e := &Engine{
		id:         uuid.NewString(),
		maxPlayers: maxPlayers,
		catalog:    card.Standard(),
		now:        time.Now,
		state:      WaitingForPlayers,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = deck.NewRand(uint64(e.now().UnixNano()))
	}
	e.deck = deck.New(e.catalog, e.rng)
	return e, nil
}

func (e *Engine) ID() string { return e.id }

func (e *Engine) MaxPlayers() int { return e.maxPlayers }

func (e *Engine) State() State { return e.state }

// IsOver reports whether the game finished or was cancelled.
func (e *Engine) IsOver() bool { return e.state.Terminal() }

// Remaining is the number of cards left to call.
func (e *Engine) Remaining() int { return e.deck.Remaining() }

func (e *Engine) Catalog() *card.Catalog { return e.catalog }

func (e *Engine) transition(to State) error {
	if !e.state.CanTransition(to) {
		return fmt.Errorf("%s -> %s: %w", e.state, to, ErrInvalidTransition)
	}
	e.state = to
	if to.Terminal() {
		e.endedAt = e.now()
	}
	return nil
}

// AddPlayer registers p. Only allowed while waiting for players.
func (e *Engine) AddPlayer(p *Player) error {
	if p == nil {
		return ErrNilPlayer
	}
	if e.state != WaitingForPlayers {
		return fmt.Errorf("add %s in %s: %w", p.Name(), e.state, ErrGameAlreadyStarted)
	}
	if len(e.players) >= e.maxPlayers {
		return fmt.Errorf("add %s, %d/%d seats taken: %w", p.Name(), len(e.players), e.maxPlayers, ErrGameFull)
	}
	if _, ok := e.Player(p.Name()); ok {
		return fmt.Errorf("add %s: %w", p.Name(), ErrDuplicatePlayer)
	}
	e.players = append(e.players, p)
	return nil
}

// Player finds a participant by name, case-insensitively.
func (e *Engine) Player(name string) (*Player, bool) {
	key := Key(name)
	for _, p := range e.players {
		if p.Key() == key {
			return p, true
		}
	}
	return nil, false
}

// Players returns participants in join order.
func (e *Engine) Players() []*Player {
	return append([]*Player(nil), e.players...)
}

// Ready closes the roster. Start is still allowed without it.
func (e *Engine) Ready() error {
	if e.state != WaitingForPlayers {
		return fmt.Errorf("ready in %s: %w", e.state, ErrGameAlreadyStarted)
	}
	if len(e.players) == 0 {
		return ErrNoPlayers
	}
	for _, p := range e.players {
		p.SetReady(true)
	}
	return e.transition(ReadyToStart)
}

// Start resets the deck, deals every board from the full card set and
// resets again so the game begins with an empty call history.
func (e *Engine) Start() error {
	if e.state != WaitingForPlayers && e.state != ReadyToStart {
		return fmt.Errorf("start in %s: %w", e.state, ErrGameAlreadyStarted)
	}
	if len(e.players) == 0 {
		return ErrNoPlayers
	}

	// Check every board before dealing any, so a refused start leaves
	// all boards undealt.
	pool := e.deck.All()
	for _, p := range e.players {
		for i, b := range p.boards {
			if need := b.Size() * b.Size(); need > len(pool) {
				return fmt.Errorf("deal board %d for %s: needs %d cards, deck has %d: %w",
					i+1, p.Name(), need, len(pool), board.ErrInsufficientCards)
			}
		}
	}

	e.deck.Reset()
	pool = e.deck.All()
	for _, p := range e.players {
		for i, b := range p.boards {
			if err := b.Generate(pool, e.rng); err != nil {
				return fmt.Errorf("deal board %d for %s: %w", i+1, p.Name(), err)
			}
		}
	}
	e.deck.Reset()

	e.current = card.Card{}
	e.winner = nil
	e.winPattern = pattern.Pattern{}
	e.winBoard = 0
	e.startedAt = e.now()
	e.endedAt = time.Time{}
	return e.transition(InProgress)
}

// CallNext draws a card and marks it on every board that holds it.
func (e *Engine) CallNext() (card.Card, error) {
	if e.state != InProgress {
		return card.Card{}, fmt.Errorf("call in %s: %w", e.state, ErrNotInProgress)
	}
	if !e.deck.HasMore() {
		return card.Card{}, ErrDeckExhausted
	}
	c, err := e.deck.Draw()
	if err != nil {
		return card.Card{}, fmt.Errorf("%w: %w", ErrDeckExhausted, err)
	}
	e.current = c
	for _, p := range e.players {
		p.MarkCard(c)
	}
	return c, nil
}

// ClaimWin verifies pat on p's boards against the call history. A true
// result finishes the game and credits the pattern's points to p. Claims
// outside InProgress, from non-participants, or that fail verification
// return false and change nothing.
func (e *Engine) ClaimWin(p *Player, pat pattern.Pattern) bool {
	if e.state != InProgress || p == nil || pat.IsZero() {
		return false
	}
	player, ok := e.Player(p.Name())
	if !ok {
		return false
	}
	history := e.deck.Called()
	for i, b := range player.boards {
		if !pat.IsValidForBoardSize(b.Size()) {
			continue
		}
		if b.Matches(pat, history) {
			e.finish(player, board.Win{BoardIndex: i, Pattern: pat})
			return true
		}
	}
	return false
}

// ClaimAnyWin searches the standard patterns for p's boards and claims the
// first one the history completes.
func (e *Engine) ClaimAnyWin(p *Player) (board.Win, bool) {
	if e.state != InProgress || p == nil {
		return board.Win{}, false
	}
	player, ok := e.Player(p.Name())
	if !ok {
		return board.Win{}, false
	}
	var patterns []pattern.Pattern
	seen := map[int]bool{}
	for _, b := range player.boards {
		if !seen[b.Size()] {
			seen[b.Size()] = true
			patterns = append(patterns, pattern.Standard(b.Size())...)
		}
	}
	win, ok := board.FindWin(player.boards, patterns, e.deck.Called())
	if !ok {
		return board.Win{}, false
	}
	e.finish(player, win)
	return win, true
}

func (e *Engine) finish(p *Player, win board.Win) {
	e.winner = p
	e.winPattern = win.Pattern
	e.winBoard = win.BoardIndex
	p.AddScore(win.Pattern.Points())
	// InProgress -> Finished is always allowed.
	_ = e.transition(Finished)
}

// Pause suspends calling and claiming.
func (e *Engine) Pause() error {
	if e.state != InProgress {
		return fmt.Errorf("pause in %s: %w", e.state, ErrNotInProgress)
	}
	return e.transition(Paused)
}

// Resume continues a paused game.
func (e *Engine) Resume() error {
	if e.state != Paused {
		return fmt.Errorf("resume in %s: %w", e.state, ErrInvalidTransition)
	}
	return e.transition(InProgress)
}

// Cancel ends the game without a winner.
func (e *Engine) Cancel() error {
	return e.transition(Cancelled)
}

// CalledCards returns the call history in draw order.
func (e *Engine) CalledCards() []card.Card {
	return e.deck.Called()
}

// CurrentCard is the most recently called card, if any.
func (e *Engine) CurrentCard() (card.Card, bool) {
	return e.current, !e.current.IsZero()
}

// Winner returns the winning player once a claim succeeded.
func (e *Engine) Winner() (*Player, bool) {
	return e.winner, e.winner != nil
}

// WinningPattern returns the claimed pattern and zero-based board index.
func (e *Engine) WinningPattern() (pattern.Pattern, int, bool) {
	if e.winner == nil {
		return pattern.Pattern{}, 0, false
	}
	return e.winPattern, e.winBoard, true
}
