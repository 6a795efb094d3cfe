package card

import (
	"fmt"
	"sync"
)

// Size is the number of cards in a standard Lotería deck.
const Size = 54

// Well-known card numbers.
const (
	ElGallo    = 1
	ElDiablo   = 2
	LaDama     = 3
	ElCatrin   = 4
	LaSirena   = 6
	LaCalavera = 42
)

// Catalog is an immutable registry of cards. It is built once and shared;
// every accessor returns copies.
type Catalog struct {
	cards    []Card
	byNumber map[int]Card
}

// NewCatalog builds a catalog from cards. Numbers must be unique and positive.
func NewCatalog(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards:    make([]Card, 0, len(cards)),
		byNumber: make(map[int]Card, len(cards)),
	}
	for _, card := range cards {
		if card.Number <= 0 {
			return nil, &InvalidCardError{Number: card.Number, Reason: "number must be positive"}
		}
		if _, dup := c.byNumber[card.Number]; dup {
			return nil, &InvalidCardError{Number: card.Number, Reason: "duplicate number"}
		}
		c.cards = append(c.cards, card)
		c.byNumber[card.Number] = card
	}
	return c, nil
}

// InvalidCardError is returned by NewCatalog for a bad card entry.
type InvalidCardError struct {
	Number int
	Reason string
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("invalid card %d: %s", e.Number, e.Reason)
}

// Standard returns the shared catalog of the 54 standard cards.
var Standard = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog(standardCards[:])
	if err != nil {
		panic(err)
	}
	return c
})

// Len returns the number of cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// All returns every card in catalog order.
func (c *Catalog) All() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// ByNumber looks a card up by its number.
func (c *Catalog) ByNumber(n int) (Card, bool) {
	card, ok := c.byNumber[n]
	return card, ok
}

// ByCategory returns the cards of a category in catalog order.
func (c *Catalog) ByCategory(cat Category) []Card {
	var out []Card
	for _, card := range c.cards {
		if card.Category == cat {
			out = append(out, card)
		}
	}
	return out
}

var standardCards = [Size]Card{
	{1, "The Rooster", "El Gallo", "El que le cantó a San Pedro.", Animals},
	{2, "The Devil", "El Diablo", "Pórtate bien cuatito, si no te lleva el coloradito.", Symbols},
	{3, "The Lady", "La Dama", "Puliendo el paso, por toda la calle real.", People},
	{4, "The Dandy", "El Catrín", "Don Ferruco en la alameda, su bastón quería tirar.", People},
	{5, "The Umbrella", "El Paraguas", "Para el sol y para el agua.", Objects},
	{6, "The Mermaid", "La Sirena", "Con los cantos de sirena, no te vayas a marear.", Nature},
	{7, "The Ladder", "La Escalera", "Súbeme paso a pasito, no quieras pegar brinquitos.", Objects},
	{8, "The Bottle", "La Botella", "La herramienta del borracho.", Objects},
	{9, "The Barrel", "El Barril", "Tanto bebió el albañil, que quedó como barril.", Objects},
	{10, "The Tree", "El Árbol", "El que a buen árbol se arrima, buena sombra le cobija.", Nature},
	{11, "The Melon", "El Melón", "Me lo das o me lo quitas.", Food},
	{12, "The Brave One", "El Valiente", "Por qué le corres cobarde, trayendo tan buen puñal.", People},
	{13, "The Little Hat", "El Gorrito", "Ponle su gorrito al nene, no se nos vaya a resfriar.", Objects},
	{14, "Death", "La Muerte", "La muerte siriqui siaca.", Symbols},
	{15, "The Pear", "La Pera", "El que espera, desespera.", Food},
	{16, "The Flag", "La Bandera", "Verde, blanco y colorado, la bandera del soldado.", Symbols},
	{17, "The Bandolon", "El Bandolón", "Tocando su bandolón, está el mariachi Simón.", Objects},
	{18, "The Cello", "El Violoncello", "Creció tanto el violoncello, que ya no cupo en el cielo.", Objects},
	{19, "The Heron", "La Garza", "Al otro lado del río, tengo mi banco de arena.", Animals},
	{20, "The Bird", "El Pájaro", "Tú me traes a puros brincos, como pájaro en la rama.", Animals},
	{21, "The Hand", "La Mano", "La mano de un criminal.", Symbols},
	{22, "The Boot", "La Bota", "Una bota igual que la otra.", Objects},
	{23, "The Moon", "La Luna", "El farol de los enamorados.", Nature},
	{24, "The Parrot", "El Cotorro", "Cotorro, cotorro, saca la pata y empiézame a platicar.", Animals},
	{25, "The Drunk", "El Borracho", "A qué borracho tan necio, ya no lo puedo aguantar.", People},
	{26, "The Little Black Man", "El Negrito", "El que se comió el azúcar.", People},
	{27, "The Heart", "El Corazón", "No me extrañes corazón, que regreso en el camión.", Symbols},
	{28, "The Watermelon", "La Sandía", "La barriga que Juan tenía, era de pura sandía.", Food},
	{29, "The Drum", "El Tambor", "No te arrugues, cuero viejo, que te quiero pa' tambor.", Objects},
	{30, "The Shrimp", "El Camarón", "Camarón que se duerme, se lo lleva la corriente.", Animals},
	{31, "The Arrows", "Las Jaras", "Las jaras del indio Adán, donde pegan, dan.", Objects},
	{32, "The Musician", "El Músico", "El músico trompas de hule, ya no me quiere tocar.", People},
	{33, "The Spider", "La Araña", "Atarántamela a palos, no me la dejes llegar.", Animals},
	{34, "The Soldier", "El Soldado", "Uno, dos y tres, el soldado pa'l cuartel.", People},
	{35, "The Star", "La Estrella", "La guía de los marineros.", Nature},
	{36, "The Saucepan", "El Cazo", "El caso que te hago es poco.", Objects},
	{37, "The World", "El Mundo", "Este mundo es una bola, y nosotros un bolón.", Symbols},
	{38, "The Apache", "El Apache", "¡Ah, Chihuahua! Cuánto apache con pantalón y huarache.", People},
	{39, "The Cactus", "El Nopal", "Al nopal lo van a ver, nomás cuando tiene tunas.", Nature},
	{40, "The Scorpion", "El Alacrán", "El que con la cola pica, le dan una paliza.", Animals},
	{41, "The Rose", "La Rosa", "Rosita, Rosaura, ven que te quiero ahora.", Nature},
	{42, "The Skull", "La Calavera", "Al pasar por el panteón, me encontré un calaverón.", Symbols},
	{43, "The Bell", "La Campana", "Tú con la campana y yo con tu hermana.", Objects},
	{44, "The Water Pitcher", "El Cantarito", "Tanto va el cántaro al agua, que se quiebra y te moja.", Objects},
	{45, "The Deer", "El Venado", "Saltando va buscando, pero no ve nada.", Animals},
	{46, "The Sun", "El Sol", "La cobija de los pobres.", Nature},
	{47, "The Crown", "La Corona", "El sombrero de los reyes.", Symbols},
	{48, "The Canoe", "La Chalupa", "Rema y rema va Lupita, sentada en su chalupita.", Objects},
	{49, "The Pine Tree", "El Pino", "Fresco y oloroso, en todo tiempo hermoso.", Nature},
	{50, "The Fish", "El Pescado", "El que por la boca muere, aunque mudo fuere.", Animals},
	{51, "The Palm Tree", "La Palma", "Palmero, sube a la palma y bájame un coco real.", Nature},
	{52, "The Flowerpot", "La Maceta", "El que nace pa' maceta, no sale del corredor.", Objects},
	{53, "The Harp", "El Arpa", "Arpa vieja de mi suegra, ya no sirves pa' tocar.", Objects},
	{54, "The Frog", "La Rana", "Al ver a la suegra, pegó un brinco de rana.", Animals},
}
