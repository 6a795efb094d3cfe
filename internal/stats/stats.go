// Package stats folds finished games into running totals.
package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"loteria/internal/card"
	"loteria/internal/game"
)

// Record is what the aggregator needs from one finished game.
type Record struct {
	Winner       string
	Participants []string
	Calls        []card.Card
}

// FromResult extracts a Record from an engine result.
func FromResult(r game.Result) Record {
	return Record{
		Winner:       r.Winner,
		Participants: r.Participants,
		Calls:        r.Calls,
	}
}

// Aggregator keeps totals across games. Not safe for concurrent use.
type Aggregator struct {
	games  int
	wins   map[string]int
	played map[string]int
	names  map[string]string
	freq   map[int]int
	cards  map[int]card.Card
}

func New() *Aggregator {
	return &Aggregator{
		wins:   make(map[string]int),
		played: make(map[string]int),
		names:  make(map[string]string),
		freq:   make(map[int]int),
		cards:  make(map[int]card.Card),
	}
}

// Record adds one game. Player names are keyed case-insensitively; the
// first spelling seen is kept for display.
func (a *Aggregator) Record(r Record) {
	a.games++
	for _, name := range r.Participants {
		a.played[a.key(name)]++
	}
	if r.Winner != "" {
		a.wins[a.key(r.Winner)]++
	}
	for _, c := range r.Calls {
		a.freq[c.Number]++
		a.cards[c.Number] = c
	}
}

func (a *Aggregator) key(name string) string {
	k := game.Key(name)
	if _, ok := a.names[k]; !ok {
		a.names[k] = strings.TrimSpace(name)
	}
	return k
}

// Games is the number of recorded games.
func (a *Aggregator) Games() int { return a.games }

func (a *Aggregator) Wins(name string) int { return a.wins[game.Key(name)] }

// Played counts the games name took part in.
func (a *Aggregator) Played(name string) int { return a.played[game.Key(name)] }

// WinRate is wins over all recorded games, 0 when none were recorded.
func (a *Aggregator) WinRate(name string) float64 {
	if a.games == 0 {
		return 0
	}
	return float64(a.Wins(name)) / float64(a.games)
}

// CardFrequency is how many times c was called across all games.
func (a *Aggregator) CardFrequency(c card.Card) int { return a.freq[c.Number] }

// MostCalled returns the card called most often. Ties go to the lowest
// card number.
func (a *Aggregator) MostCalled() (card.Card, int, bool) {
	best, count := 0, 0
	for n, f := range a.freq {
		if f > count || (f == count && n < best) {
			best, count = n, f
		}
	}
	if count == 0 {
		return card.Card{}, 0, false
	}
	return a.cards[best], count, true
}

// Standing is one leaderboard row.
type Standing struct {
	Name    string  `json:"name"`
	Wins    int     `json:"wins"`
	Played  int     `json:"played"`
	WinRate float64 `json:"winRate"`
}

// Leaderboard lists every known player by wins, then name.
func (a *Aggregator) Leaderboard() []Standing {
	out := make([]Standing, 0, len(a.names))
	for k, name := range a.names {
		out = append(out, Standing{
			Name:    name,
			Wins:    a.wins[k],
			Played:  a.played[k],
			WinRate: a.WinRate(k),
		})
	}
	slices.SortFunc(out, func(x, y Standing) int {
		if c := cmp.Compare(y.Wins, x.Wins); c != 0 {
			return c
		}
		return cmp.Compare(strings.ToLower(x.Name), strings.ToLower(y.Name))
	})
	return out
}

// Snapshot is the JSON form of the totals.
type Snapshot struct {
	Games       int        `json:"games"`
	Leaderboard []Standing `json:"leaderboard"`
	MostCalled  *CardCount `json:"mostCalled,omitempty"`
}

// CardCount pairs a card with how often it was called.
type CardCount struct {
	Card  card.Card `json:"card"`
	Count int       `json:"count"`
}

func (a *Aggregator) Snapshot() Snapshot {
	s := Snapshot{Games: a.games, Leaderboard: a.Leaderboard()}
	if c, n, ok := a.MostCalled(); ok {
		s.MostCalled = &CardCount{Card: c, Count: n}
	}
	return s
}

// Export renders the totals as a plain text report.
func (a *Aggregator) Export() string {
	var b strings.Builder
	b.WriteString("--- Lotería Statistics ---\n")
	fmt.Fprintf(&b, "Total Games Played: %d\n\n", a.games)

	b.WriteString("Player Win Counts:\n")
	winners := 0
	for _, s := range a.Leaderboard() {
		if s.Wins == 0 {
			continue
		}
		winners++
		fmt.Fprintf(&b, "  - %s: %d wins\n", s.Name, s.Wins)
	}
	if winners == 0 {
		b.WriteString("  No wins recorded yet.\n")
	}

	b.WriteString("\nMost Frequently Called Card:\n")
	if c, n, ok := a.MostCalled(); ok {
		fmt.Fprintf(&b, "  %s (called %d times)\n", c.Name, n)
	} else {
		b.WriteString("  No cards have been called yet.\n")
	}
	b.WriteString("--------------------------\n")
	return b.String()
}
