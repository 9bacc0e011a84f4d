package blackjack

import "github.com/fadedpez/sentenza/pkg/cards"

// ensurePlayerTurn validates phase, turn ownership, and hand existence
// for a player action. Returns the hand on success.
func (g *Game) ensurePlayerTurn(playerID, handIndex int) (*Hand, error) {
	if g.state != StatePlayerTurn {
		return nil, NewGameError(ErrInvalidPhase, "player actions are only legal during player turns")
	}

	hands, ok := g.hands[playerID]
	if !ok {
		return nil, NewGameError(ErrPlayerNotFound, "player has no hands this round")
	}
	if handIndex < 0 || handIndex >= len(hands) {
		return nil, NewGameError(ErrInvalidHandIndex, "hand does not exist")
	}
	if !g.isPlayerTurn(playerID, handIndex) {
		return nil, NewGameError(ErrNotYourTurn, "it is not this hand's turn")
	}

	hand := hands[handIndex]
	if hand.status != StatusActive {
		return nil, NewGameError(ErrHandNotActive, "hand is already resolved")
	}
	return hand, nil
}

// Hit draws one card into the active hand. On bust the hand resolves
// and the turn auto-advances.
func (g *Game) Hit(playerID, handIndex int) (cards.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, err := g.ensurePlayerTurn(playerID, handIndex)
	if err != nil {
		return cards.Card{}, err
	}

	card, err := g.shoe.Draw()
	if err != nil {
		return cards.Card{}, WrapError(ErrShoeExhausted, "cannot hit", err)
	}

	hand.addCard(card)
	if hand.status.resolved() {
		g.advanceAfterHand()
	}
	return card, nil
}

// Stand resolves the hand as stood and advances the turn
func (g *Game) Stand(playerID, handIndex int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, err := g.ensurePlayerTurn(playerID, handIndex)
	if err != nil {
		return err
	}

	hand.status = StatusStood
	g.advanceAfterHand()
	return nil
}

// DoubleDown doubles the bet on a two-card hand, draws exactly one
// card, and stands the hand regardless of the resulting value unless it
// busts. Requires matching funds; split hands may double only when
// double-after-split is enabled.
func (g *Game) DoubleDown(playerID, handIndex int) (cards.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, err := g.ensurePlayerTurn(playerID, handIndex)
	if err != nil {
		return cards.Card{}, err
	}

	if hand.Len() != 2 {
		return cards.Card{}, NewGameError(ErrDoubleNotAllowed, "double down is only legal on a two-card hand")
	}
	if hand.fromSplit && !g.opts.DoubleAfterSplit {
		return cards.Card{}, NewGameError(ErrDoubleNotAllowed, "double after split is disabled")
	}
	if !g.opts.canDoubleValue(hand.Value()) {
		return cards.Card{}, NewGameError(ErrDoubleNotAllowed, "hand value is not eligible to double")
	}
	if g.money[playerID] < hand.bet {
		return cards.Card{}, NewGameError(ErrInsufficientFunds, "not enough money to double the bet")
	}
	if g.shoe.Remaining() == 0 {
		return cards.Card{}, NewGameError(ErrShoeExhausted, "cannot double down")
	}

	g.money[playerID] -= hand.bet
	hand.doubleBet()
	card := g.mustDraw()
	hand.addCard(card)

	if hand.status == StatusActive {
		hand.status = StatusDoubledStood
	}
	g.advanceAfterHand()
	return card, nil
}

// Split divides a two-card pair into two one-card hands, escrows a
// matching bet for the new hand, and deals one card to each. The new
// hand is inserted directly after the one it came from, so turn order
// stays a simple sequence traversal. Split aces receive one card each
// and stand immediately when the one-card rule is set.
func (g *Game) Split(playerID, handIndex int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, err := g.ensurePlayerTurn(playerID, handIndex)
	if err != nil {
		return err
	}

	if len(g.hands[playerID]) > g.opts.MaxSplits {
		return NewGameError(ErrSplitNotAllowed, "maximum splits reached")
	}
	if !hand.CanSplit() {
		return NewGameError(ErrSplitNotAllowed, "hand is not a splittable pair")
	}

	isAce := hand.cards[0].Rank == cards.Ace
	if isAce && hand.fromSplit && g.opts.SplitAcesOnlyOnce {
		return NewGameError(ErrSplitNotAllowed, "split aces cannot be re-split")
	}
	if g.money[playerID] < hand.bet {
		return NewGameError(ErrInsufficientFunds, "not enough money to match the bet for the split hand")
	}
	if g.shoe.Remaining() < 2 {
		return NewGameError(ErrShoeExhausted, "cannot split")
	}

	g.money[playerID] -= hand.bet

	splitCard, _ := hand.takeSplitCard()
	hand.fromSplit = true
	hand.splitDepth++
	newHand := newSplitHand(splitCard, hand.bet, hand.splitDepth)

	hand.addCard(g.mustDraw())
	newHand.addCard(g.mustDraw())

	oneCardAces := isAce && g.opts.SplitAcesOneCard
	if oneCardAces {
		if hand.status == StatusActive {
			hand.status = StatusStood
		}
		if newHand.status == StatusActive {
			newHand.status = StatusStood
		}
	}

	hands := g.hands[playerID]
	hands = append(hands, nil)
	copy(hands[handIndex+2:], hands[handIndex+1:])
	hands[handIndex+1] = newHand
	g.hands[playerID] = hands

	if oneCardAces {
		g.advanceAfterHand()
	}
	return nil
}

// Surrender forfeits the hand on its first decision, returning half the
// bet immediately. The hand is excluded from showdown payout math.
func (g *Game) Surrender(playerID, handIndex int) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, err := g.ensurePlayerTurn(playerID, handIndex)
	if err != nil {
		return 0, err
	}

	if !g.opts.Surrender {
		return 0, NewGameError(ErrSurrenderNotAllowed, "surrender is disabled at this table")
	}
	if hand.Len() != 2 || hand.fromSplit {
		return 0, NewGameError(ErrSurrenderNotAllowed, "surrender is only legal as a first decision")
	}

	hand.status = StatusSurrendered
	refund := g.opts.surrenderRefund(hand.bet)
	g.money[playerID] += refund

	g.advanceAfterHand()
	return refund, nil
}
