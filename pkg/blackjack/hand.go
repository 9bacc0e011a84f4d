package blackjack

import "github.com/fadedpez/sentenza/pkg/cards"

// HandStatus represents the current state of a hand
type HandStatus string

const (
	// StatusActive means the hand can still take actions
	StatusActive HandStatus = "ACTIVE"
	// StatusStood means the player chose to stand
	StatusStood HandStatus = "STOOD"
	// StatusBust means the hand exceeded 21
	StatusBust HandStatus = "BUST"
	// StatusBlackjack means an untouched two-card 21
	StatusBlackjack HandStatus = "BLACKJACK"
	// StatusSurrendered means the player forfeited half the bet
	StatusSurrendered HandStatus = "SURRENDERED"
	// StatusDoubledStood means the hand doubled down and stands on its
	// single drawn card
	StatusDoubledStood HandStatus = "DOUBLED_STOOD"
)

// resolved reports whether the hand has left the turn rotation
func (s HandStatus) resolved() bool {
	return s != StatusActive
}

// cardValue returns the blackjack value of a rank, counting an ace high
func cardValue(rank cards.Rank) int {
	switch {
	case rank == cards.Ace:
		return 11
	case rank >= cards.Jack:
		return 10
	default:
		return int(rank)
	}
}

// evaluateCards computes the best total for a set of cards and whether
// an ace is currently counted as 11. Every ace starts at 11 and is
// demoted to 1 while the total exceeds 21. The result depends only on
// the multiset of ranks, never on card order.
func evaluateCards(cs []cards.Card) (value int, soft bool) {
	aces := 0
	for _, c := range cs {
		if c.Rank == cards.Ace {
			aces++
		}
		value += cardValue(c.Rank)
	}

	for value > 21 && aces > 0 {
		value -= 10
		aces--
	}

	return value, aces > 0 && value <= 21
}

// Hand is a single bet-carrying sequence of cards belonging to one
// player. Split hands carry a fromSplit tag instead of parent pointers;
// a player's hands for the round are an ordered flat sequence.
type Hand struct {
	cards      []cards.Card
	bet        int64
	status     HandStatus
	fromSplit  bool
	splitDepth int
}

// newHand creates an empty active hand carrying bet
func newHand(bet int64) *Hand {
	return &Hand{
		cards:  make([]cards.Card, 0, 2),
		bet:    bet,
		status: StatusActive,
	}
}

// newSplitHand creates a one-card hand produced by a split
func newSplitHand(card cards.Card, bet int64, depth int) *Hand {
	return &Hand{
		cards:      []cards.Card{card},
		bet:        bet,
		status:     StatusActive,
		fromSplit:  true,
		splitDepth: depth,
	}
}

// addCard appends a card and reclassifies the hand. A two-card 21 is a
// Blackjack only when the hand is not the product of a split; split
// hands that reach 21 are a strong hand, not a natural.
func (h *Hand) addCard(card cards.Card) {
	h.cards = append(h.cards, card)

	value, _ := evaluateCards(h.cards)
	if value > 21 {
		h.status = StatusBust
	} else if len(h.cards) == 2 && value == 21 && !h.fromSplit {
		h.status = StatusBlackjack
	}
}

// doubleBet doubles the escrowed bet for a double down
func (h *Hand) doubleBet() {
	h.bet *= 2
}

// takeSplitCard removes and returns the second card for a split
func (h *Hand) takeSplitCard() (cards.Card, bool) {
	if len(h.cards) != 2 {
		return cards.Card{}, false
	}
	card := h.cards[1]
	h.cards = h.cards[:1]
	return card, true
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []cards.Card {
	return append([]cards.Card(nil), h.cards...)
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Value returns the best total for the hand
func (h *Hand) Value() int {
	value, _ := evaluateCards(h.cards)
	return value
}

// IsSoft reports whether an ace is currently counted as 11
func (h *Hand) IsSoft() bool {
	_, soft := evaluateCards(h.cards)
	return soft
}

// Status returns the current status of the hand
func (h *Hand) Status() HandStatus {
	return h.status
}

// Bet returns the escrowed bet for the hand
func (h *Hand) Bet() int64 {
	return h.bet
}

// FromSplit reports whether this hand was produced by a split
func (h *Hand) FromSplit() bool {
	return h.fromSplit
}

// SplitDepth returns how many splits removed this hand is from the
// original two-card hand
func (h *Hand) SplitDepth() int {
	return h.splitDepth
}

// CanSplit reports whether the hand is a splittable pair
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// clone returns a deep copy of the hand
func (h *Hand) clone() *Hand {
	c := *h
	c.cards = append([]cards.Card(nil), h.cards...)
	return &c
}
