package card

import "fmt"

// Category groups cards by what they depict.
type Category string

const (
	People     Category = "people"
	Animals    Category = "animals"
	Objects    Category = "objects"
	Nature     Category = "nature"
	Food       Category = "food"
	Activities Category = "activities"
	Symbols    Category = "symbols"
	Misc       Category = "misc"
)

// Card is one of the 54 Lotería cards. Identity is the Number alone;
// compare cards with Equal, not ==.
type Card struct {
	Number      int      `json:"number"`
	Name        string   `json:"name"`
	SpanishName string   `json:"spanishName"`
	Riddle      string   `json:"riddle"`
	Category    Category `json:"category"`
}

// Equal reports whether c and other are the same card.
func (c Card) Equal(other Card) bool {
	return c.Number == other.Number
}

// IsZero reports whether c is the zero Card (no catalog card has number 0).
func (c Card) IsZero() bool {
	return c.Number == 0
}

func (c Card) String() string {
	return fmt.Sprintf("#%d: %s (%s)", c.Number, c.SpanishName, c.Name)
}
