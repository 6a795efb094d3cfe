package session

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"loteria/internal/board"
	"loteria/internal/card"
	"loteria/internal/deck"
	"loteria/internal/game"
	"loteria/internal/pattern"
	"loteria/internal/stats"
	"loteria/internal/storage"
)

// Event types pushed to watchers.
const (
	EventState  = "state"
	EventCalled = "called"
	EventWinner = "winner"
)

// Event is the envelope sent to every watcher.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Watcher receives encoded events until it is removed.
type Watcher struct {
	Send chan []byte
}

// Config sets up each game a Table creates.
type Config struct {
	MaxPlayers int
	BoardSize  int
}

// Table owns the current engine and serializes every command against it.
// "New game" swaps in a fresh engine; statistics and watchers carry over.
type Table struct {
	mu       sync.Mutex
	cfg      Config
	engine   *game.Engine
	patterns *pattern.Registry
	caller   *game.Caller
	stats    *stats.Aggregator
	store    *storage.Store
	log      *zap.Logger
	rng      *rand.Rand
	now      func() time.Time
	recorded bool
	watchers map[*Watcher]struct{}
}

// Option configures a Table.
type Option func(*Table)

// WithStore persists finished games and replays stored ones into stats.
func WithStore(s *storage.Store) Option {
	return func(t *Table) { t.store = s }
}

func WithLogger(l *zap.Logger) Option {
	return func(t *Table) { t.log = l }
}

// WithRand fixes the randomness used for every game and announcement.
func WithRand(r *rand.Rand) Option {
	return func(t *Table) { t.rng = r }
}

func WithClock(now func() time.Time) Option {
	return func(t *Table) { t.now = now }
}

// New creates a table with an engine waiting for players. With a store,
// statistics are restored from previously saved games.
func New(cfg Config, opts ...Option) (*Table, error) {
	if cfg.BoardSize < 1 {
		return nil, fmt.Errorf("board size %d: %w", cfg.BoardSize, board.ErrInvalidSize)
	}
	if cfg.BoardSize*cfg.BoardSize > card.Size {
		return nil, fmt.Errorf("board size %d needs %d cards: %w", cfg.BoardSize, cfg.BoardSize*cfg.BoardSize, board.ErrInsufficientCards)
	}
	t := &Table{
		cfg:      cfg,
		patterns: pattern.NewStandardRegistry(cfg.BoardSize),
		stats:    stats.New(),
		log:      zap.NewNop(),
		now:      time.Now,
		watchers: make(map[*Watcher]struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = deck.NewRand(uint64(t.now().UnixNano()))
	}
	t.caller = game.NewCaller(t.rng)
	if err := t.newEngine(); err != nil {
		return nil, err
	}
	if t.store != nil {
		n, err := t.store.LoadStats(t.stats)
		if err != nil {
			return nil, fmt.Errorf("restore stats: %w", err)
		}
		t.log.Info("restored statistics", zap.Int("games", n))
	}
	return t, nil
}

func (t *Table) newEngine() error {
	e, err := game.New(t.cfg.MaxPlayers, game.WithRand(t.rng), game.WithClock(t.now))
	if err != nil {
		return err
	}
	t.engine = e
	t.recorded = false
	return nil
}

// Config returns the table settings.
func (t *Table) Config() Config { return t.cfg }

// Patterns lists the claimable patterns by key.
func (t *Table) Patterns() []pattern.Entry { return t.patterns.List() }

// Join seats a new player holding boards boards.
func (t *Table) Join(name string, boards int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, err := game.NewPlayerWithBoards(name, boards, t.cfg.BoardSize)
	if err != nil {
		return err
	}
	if err := t.engine.AddPlayer(p); err != nil {
		return err
	}
	t.log.Info("player joined", zap.String("game", t.engine.ID()), zap.String("player", p.Name()), zap.Int("boards", boards))
	t.broadcastLocked(EventState, t.engine.Summary())
	return nil
}

// Ready closes the roster.
func (t *Table) Ready() error {
	return t.apply("ready", (*game.Engine).Ready)
}

// Start deals the boards and opens calling.
func (t *Table) Start() error {
	return t.apply("start", (*game.Engine).Start)
}

func (t *Table) Pause() error {
	return t.apply("pause", (*game.Engine).Pause)
}

func (t *Table) Resume() error {
	return t.apply("resume", (*game.Engine).Resume)
}

// Cancel ends the game without a winner.
func (t *Table) Cancel() error {
	return t.apply("cancel", (*game.Engine).Cancel)
}

// apply runs a state command under the lock and announces the new state.
func (t *Table) apply(name string, cmd func(*game.Engine) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := cmd(t.engine); err != nil {
		return err
	}
	t.log.Info("game "+name, zap.String("game", t.engine.ID()), zap.Stringer("state", t.engine.State()))
	t.settleLocked()
	t.broadcastLocked(EventState, t.engine.Summary())
	return nil
}

// Call is one drawn card as presented to players.
type Call struct {
	Card         card.Card `json:"card"`
	Announcement string    `json:"announcement"`
	Number       int       `json:"number"` // position in the call history, from 1
	Remaining    int       `json:"remaining"`
}

// Call draws the next card.
func (t *Table) Call() (Call, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.engine.CallNext()
	if err != nil {
		return Call{}, err
	}
	call := Call{
		Card:         c,
		Announcement: t.caller.Announce(c),
		Number:       len(t.engine.CalledCards()),
		Remaining:    t.engine.Remaining(),
	}
	t.log.Debug("card called", zap.String("game", t.engine.ID()), zap.Int("card", c.Number), zap.Int("remaining", call.Remaining))
	t.broadcastLocked(EventCalled, call)
	return call, nil
}

// Claim is the outcome of a win claim.
type Claim struct {
	Player     string `json:"player"`
	Won        bool   `json:"won"`
	Pattern    string `json:"pattern,omitempty"`
	BoardIndex int    `json:"board,omitempty"` // 1-based
	Points     int    `json:"points,omitempty"`
}

// ClaimAny checks name's boards against every standard pattern.
func (t *Table) ClaimAny(name string) (Claim, error) {
	return t.Claim(name, "")
}

// Claim checks name's boards for the pattern registered under key. An empty
// key searches every standard pattern. A rejected claim is not an error.
func (t *Table) Claim(name, key string) (Claim, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.engine.Player(name)
	if !ok {
		return Claim{}, fmt.Errorf("%q: %w", name, game.ErrUnknownPlayer)
	}
	res := Claim{Player: p.Name()}
	if key == "" {
		if win, ok := t.engine.ClaimAnyWin(p); ok {
			res.Won = true
			res.Pattern = win.Pattern.Name()
			res.BoardIndex = win.BoardIndex + 1
			res.Points = win.Pattern.Points()
		}
	} else {
		pat, ok := t.patterns.Get(key)
		if !ok {
			return Claim{}, fmt.Errorf("%q: %w", key, game.ErrUnknownPattern)
		}
		if t.engine.ClaimWin(p, pat) {
			_, idx, _ := t.engine.WinningPattern()
			res.Won = true
			res.Pattern = pat.Name()
			res.BoardIndex = idx + 1
			res.Points = pat.Points()
		}
	}

	if !res.Won {
		t.log.Info("claim rejected", zap.String("game", t.engine.ID()), zap.String("player", p.Name()), zap.String("pattern", key))
		return res, nil
	}
	t.log.Info("claim accepted", zap.String("game", t.engine.ID()), zap.String("player", p.Name()), zap.String("pattern", res.Pattern))
	t.settleLocked()
	t.broadcastLocked(EventWinner, res)
	t.broadcastLocked(EventState, t.engine.Summary())
	return res, nil
}

// Cell is one board square.
type Cell struct {
	Card   card.Card `json:"card"`
	Marked bool      `json:"marked"`
}

// BoardView is a read-only rendering of one board.
type BoardView struct {
	Owner     string   `json:"owner"`
	Index     int      `json:"index"` // 1-based
	Count     int      `json:"count"` // boards the owner holds
	Size      int      `json:"size"`
	Generated bool     `json:"generated"`
	Cells     [][]Cell `json:"cells"`
}

// ViewBoard renders name's board at a 1-based index.
func (t *Table) ViewBoard(name string, index int) (BoardView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.engine.Player(name)
	if !ok {
		return BoardView{}, fmt.Errorf("%q: %w", name, game.ErrUnknownPlayer)
	}
	b, err := p.Board(index - 1)
	if err != nil {
		return BoardView{}, err
	}
	v := BoardView{
		Owner:     p.Name(),
		Index:     index,
		Count:     len(p.Boards()),
		Size:      b.Size(),
		Generated: b.Generated(),
		Cells:     make([][]Cell, b.Size()),
	}
	cards := b.Cards()
	for r := range v.Cells {
		v.Cells[r] = make([]Cell, b.Size())
		for c := range v.Cells[r] {
			v.Cells[r][c] = Cell{Card: cards[r][c], Marked: b.IsMarked(r, c)}
		}
	}
	return v, nil
}

// NewGame discards the current engine, records it first if it ended, and
// opens a fresh one. Players must join again.
func (t *Table) NewGame() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.settleLocked()
	old := t.engine.ID()
	if err := t.newEngine(); err != nil {
		return err
	}
	t.log.Info("new game", zap.String("previous", old), zap.String("game", t.engine.ID()))
	t.broadcastLocked(EventState, t.engine.Summary())
	return nil
}

// Snapshot returns the current game summary.
func (t *Table) Snapshot() game.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.engine.Summary()
}

// Stats returns the totals over every recorded game.
func (t *Table) Stats() stats.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.Snapshot()
}

// StatsReport renders the totals as text.
func (t *Table) StatsReport() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.Export()
}

// History lists stored games, newest first. Without a store it is empty.
func (t *Table) History(limit int) ([]storage.GameRow, error) {
	if t.store == nil {
		return nil, nil
	}
	return t.store.ListGames(limit)
}

// settleLocked records a game that reached a terminal state, once. Games
// cancelled before they started are not counted.
func (t *Table) settleLocked() {
	if t.recorded {
		return
	}
	r, ok := t.engine.Result()
	if !ok {
		return
	}
	t.recorded = true
	if r.StartedAt.IsZero() {
		return
	}
	t.stats.Record(stats.FromResult(r))
	if t.store == nil {
		return
	}
	if _, err := t.store.SaveResult(r); err != nil {
		t.log.Error("save result", zap.String("game", r.GameID), zap.Error(err))
	}
}

// Watch registers a new event subscriber.
func (t *Table) Watch() *Watcher {
	t.mu.Lock()
	defer t.mu.Unlock()
	w := &Watcher{Send: make(chan []byte, 64)}
	t.watchers[w] = struct{}{}
	return w
}

// Unwatch removes w and closes its channel.
func (t *Table) Unwatch(w *Watcher) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.watchers[w]; ok {
		close(w.Send)
		delete(t.watchers, w)
	}
}

func (t *Table) broadcastLocked(typ string, payload any) {
	if len(t.watchers) == 0 {
		return
	}
	msg, err := json.Marshal(Event{Type: typ, Payload: payload})
	if err != nil {
		t.log.Error("encode event", zap.String("type", typ), zap.Error(err))
		return
	}
	for w := range t.watchers {
		select {
		case w.Send <- msg:
		default:
			// drop message if buffer full
		}
	}
}
