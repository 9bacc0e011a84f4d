package blackjack

import "github.com/fadedpez/sentenza/pkg/cards"

// DealerHand is the dealer's hand. The first card is always visible;
// the second card stays face-down until revealed at the start of dealer
// play or on a dealer blackjack.
type DealerHand struct {
	cards        []cards.Card
	holeRevealed bool
}

func newDealerHand() *DealerHand {
	return &DealerHand{cards: make([]cards.Card, 0, 2)}
}

// addCard appends a card to the dealer's hand
func (d *DealerHand) addCard(card cards.Card) {
	d.cards = append(d.cards, card)
}

// revealHole turns the hole card face-up
func (d *DealerHand) revealHole() {
	d.holeRevealed = true
}

// clear resets the hand for a new round
func (d *DealerHand) clear() {
	d.cards = d.cards[:0]
	d.holeRevealed = false
}

// Cards returns a copy of all cards in the hand, including the hole
// card. Snapshot construction is responsible for masking.
func (d *DealerHand) Cards() []cards.Card {
	return append([]cards.Card(nil), d.cards...)
}

// Len returns the number of cards in the hand
func (d *DealerHand) Len() int {
	return len(d.cards)
}

// UpCard returns the dealer's visible first card
func (d *DealerHand) UpCard() (cards.Card, bool) {
	if len(d.cards) == 0 {
		return cards.Card{}, false
	}
	return d.cards[0], true
}

// HoleRevealed reports whether the hole card has been turned face-up
func (d *DealerHand) HoleRevealed() bool {
	return d.holeRevealed
}

// Value returns the full value of the hand
func (d *DealerHand) Value() int {
	value, _ := evaluateCards(d.cards)
	return value
}

// VisibleValue returns the value of the face-up cards only: the full
// value once the hole is revealed, otherwise just the up card.
func (d *DealerHand) VisibleValue() int {
	if d.holeRevealed {
		return d.Value()
	}
	if len(d.cards) == 0 {
		return 0
	}
	return cardValue(d.cards[0].Rank)
}

// IsSoft reports whether an ace is currently counted as 11
func (d *DealerHand) IsSoft() bool {
	_, soft := evaluateCards(d.cards)
	return soft
}

// IsBlackjack reports whether the dealer holds a natural two-card 21
func (d *DealerHand) IsBlackjack() bool {
	return len(d.cards) == 2 && d.Value() == 21
}

// IsBust reports whether the dealer's hand exceeds 21
func (d *DealerHand) IsBust() bool {
	return d.Value() > 21
}
