package deck

import (
	"errors"
	"math/rand/v2"
	"time"

	"loteria/internal/card"
)

// ErrEmptyDeck is returned by Draw when no cards remain.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is the caller's pile. The master set is fixed at construction;
// remaining is drawn from the back and every drawn card is appended to called.
type Deck struct {
	catalog   *card.Catalog
	master    []card.Card
	remaining []card.Card
	called    []card.Card
	rng       *rand.Rand
}

// New creates a deck over the catalog, already reset and shuffled.
// A nil rng uses a time-seeded source.
func New(catalog *card.Catalog, rng *rand.Rand) *Deck {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	d := &Deck{
		catalog: catalog,
		master:  catalog.All(),
		rng:     rng,
	}
	d.Reset()
	return d
}

// NewRand returns a seeded PCG source for shuffles.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes the remaining pile in place.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.remaining), func(i, j int) {
		d.remaining[i], d.remaining[j] = d.remaining[j], d.remaining[i]
	})
}

// Draw removes the top card of the remaining pile and records it as called.
func (d *Deck) Draw() (card.Card, error) {
	n := len(d.remaining)
	if n == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	c := d.remaining[n-1]
	d.remaining = d.remaining[:n-1]
	d.called = append(d.called, c)
	return c, nil
}

// Reset clears the called history and refills remaining with a freshly
// shuffled copy of the master set.
func (d *Deck) Reset() {
	d.called = make([]card.Card, 0, len(d.master))
	d.remaining = make([]card.Card, len(d.master))
	copy(d.remaining, d.master)
	d.Shuffle()
}

// HasMore reports whether a Draw would succeed.
func (d *Deck) HasMore() bool {
	return len(d.remaining) > 0
}

// Remaining returns the number of cards left to draw.
func (d *Deck) Remaining() int {
	return len(d.remaining)
}

// All returns the master set in catalog order.
func (d *Deck) All() []card.Card {
	out := make([]card.Card, len(d.master))
	copy(out, d.master)
	return out
}

// Called returns the cards drawn since the last Reset, in draw order.
func (d *Deck) Called() []card.Card {
	out := make([]card.Card, len(d.called))
	copy(out, d.called)
	return out
}

// CardByNumber looks a card up in the master set.
func (d *Deck) CardByNumber(n int) (card.Card, bool) {
	return d.catalog.ByNumber(n)
}
