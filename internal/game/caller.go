package game

import (
	"fmt"
	"math/rand/v2"

	"loteria/internal/card"
	"loteria/internal/deck"
)

// Phrases the caller opens an announcement with.
var Phrases = []string{
	"¡Corre y se va con...!",
	"¡Se va y se corre con...!",
	"¡Siguiente carta...!",
	"¡La que sigue es...!",
	"¡Atención, atención...!",
}

// Caller turns called cards into announcements.
type Caller struct {
	rng     *rand.Rand
	phrases []string
}

// NewCaller uses rng to pick phrases. A nil rng is seeded from the global source.
func NewCaller(rng *rand.Rand) *Caller {
	if rng == nil {
		rng = deck.NewRand(rand.Uint64())
	}
	return &Caller{rng: rng, phrases: Phrases}
}

// Announce returns the phrase, card name and riddle for c.
func (c *Caller) Announce(cd card.Card) string {
	phrase := c.phrases[c.rng.IntN(len(c.phrases))]
	if cd.Riddle == "" {
		return fmt.Sprintf("%s %s", phrase, cd.SpanishName)
	}
	return fmt.Sprintf("%s %s. %s", phrase, cd.SpanishName, cd.Riddle)
}
