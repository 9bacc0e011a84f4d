package cards

import (
	"errors"
	"math/rand"
)

// ErrShoeExhausted is returned when a draw is requested with no cards
// remaining. Callers are expected to reshuffle before this occurs in
// normal play.
var ErrShoeExhausted = errors.New("no cards remaining in the shoe")

// Shoe is a multi-deck card source. The shuffle is driven entirely by
// the seeded generator supplied at construction, so the same seed
// always reproduces the identical draw order.
type Shoe struct {
	cards []Card
	decks int
	rng   *rand.Rand
}

// NewShoe creates a shoe of decks*52 cards shuffled with the given seed.
func NewShoe(decks int, seed int64) *Shoe {
	s := &Shoe{
		decks: decks,
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.rebuild()
	return s
}

// rebuild fills the shoe with fresh decks and shuffles them.
func (s *Shoe) rebuild() {
	s.cards = make([]Card, 0, s.decks*DeckSize)
	for d := 0; d < s.decks; d++ {
		for _, suit := range Suits {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()
}

// shuffle performs a Fisher-Yates shuffle using the shoe's generator.
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the next card from the shoe
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Reshuffle rebuilds the shoe to its full size and shuffles it using
// the shoe's existing generator stream.
func (s *Shoe) Reshuffle() {
	s.rebuild()
}

// Reseed replaces the shoe's generator with one seeded from seed and
// rebuilds the shoe. Draw order after a Reseed depends only on seed.
func (s *Shoe) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.rebuild()
}

// Load replaces the remaining cards with the given sequence; the first
// element is drawn first. Used to replay recorded shoes.
func (s *Shoe) Load(cards []Card) {
	s.cards = append([]Card(nil), cards...)
}
