package game

import (
	"time"

	"loteria/internal/card"
)

// Result is the record of a game that reached a terminal state.
type Result struct {
	GameID       string
	State        State
	Winner       string
	Participants []string
	Pattern      string
	Points       int
	BoardIndex   int
	Calls        []card.Card
	StartedAt    time.Time
	EndedAt      time.Time
}

// CardsCalled is the number of cards drawn before the game ended.
func (r Result) CardsCalled() int { return len(r.Calls) }

func (r Result) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Result reports the outcome once the game is over.
func (e *Engine) Result() (Result, bool) {
	if !e.IsOver() {
		return Result{}, false
	}
	r := Result{
		GameID:    e.id,
		State:     e.state,
		Calls:     e.deck.Called(),
		StartedAt: e.startedAt,
		EndedAt:   e.endedAt,
	}
	for _, p := range e.players {
		r.Participants = append(r.Participants, p.Name())
	}
	if e.winner != nil {
		r.Winner = e.winner.Name()
		r.Pattern = e.winPattern.Name()
		r.Points = e.winPattern.Points()
		r.BoardIndex = e.winBoard
	}
	return r, true
}

// PlayerSummary is the public view of one participant.
type PlayerSummary struct {
	Name   string `json:"name"`
	Boards int    `json:"boards"`
	Marked int    `json:"marked"`
	Score  int    `json:"score"`
	Ready  bool   `json:"ready"`
}

// Summary is a read-only snapshot of the engine for display.
type Summary struct {
	GameID     string          `json:"gameId"`
	State      State           `json:"state"`
	MaxPlayers int             `json:"maxPlayers"`
	Players    []PlayerSummary `json:"players"`
	Called     []card.Card     `json:"called"`
	Current    *card.Card      `json:"current,omitempty"`
	Remaining  int             `json:"remaining"`
	Winner     string          `json:"winner,omitempty"`
	Pattern    string          `json:"pattern,omitempty"`
}

func (e *Engine) Summary() Summary {
	s := Summary{
		GameID:     e.id,
		State:      e.state,
		MaxPlayers: e.maxPlayers,
		Players:    make([]PlayerSummary, 0, len(e.players)),
		Called:     e.deck.Called(),
		Remaining:  e.deck.Remaining(),
	}
	for _, p := range e.players {
		s.Players = append(s.Players, PlayerSummary{
			Name:   p.Name(),
			Boards: len(p.boards),
			Marked: p.MarkedCount(),
			Score:  p.Score(),
			Ready:  p.Ready(),
		})
	}
	if c, ok := e.CurrentCard(); ok {
		s.Current = &c
	}
	if e.winner != nil {
		s.Winner = e.winner.Name()
		s.Pattern = e.winPattern.Name()
	}
	return s
}
