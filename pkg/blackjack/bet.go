package blackjack

import "github.com/fadedpez/sentenza/pkg/cards"

// Bet escrows amount out of the player's money and registers the bet
// for the coming round. One bet per player per round; once placed the
// bet stands until showdown settles it.
func (g *Game) Bet(playerID int, amount int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateBetting {
		return NewGameError(ErrInvalidPhase, "bets are only accepted during the betting phase")
	}
	if amount <= 0 {
		return NewGameError(ErrInvalidBetAmount, "bet must be a positive amount")
	}

	money, ok := g.money[playerID]
	if !ok {
		return NewGameError(ErrPlayerNotFound, "player has not joined the game")
	}
	if _, already := g.bets[playerID]; already {
		return NewGameError(ErrInvalidBetAmount, "player has already bet this round")
	}
	if amount > money {
		return NewGameError(ErrInsufficientFunds, "bet exceeds available money")
	}

	g.money[playerID] = money - amount
	g.bets[playerID] = amount
	return nil
}

// Deal starts the round: two cards to every betting player's first
// hand, then two to the dealer with the second face-down. If the
// dealer's up card is an ace and insurance is offered, the round enters
// the insurance window; otherwise play opens with the first unresolved
// hand. Naturals are detected here but settle at showdown.
func (g *Game) Deal() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateBetting {
		return NewGameError(ErrInvalidPhase, "deal is only legal from the betting phase")
	}
	if len(g.bets) == 0 {
		return NewGameError(ErrNoBetsPlaced, "no players have placed bets")
	}

	// Validate the shoe up front so the deal is all-or-nothing
	needed := (len(g.bets) + 1) * 2
	if g.shoe.Remaining() < needed {
		return NewGameError(ErrShoeExhausted, "not enough cards to deal the round")
	}

	// Betting order follows join order
	g.bettingOrder = g.bettingOrder[:0]
	for _, id := range g.players {
		if _, ok := g.bets[id]; ok {
			g.bettingOrder = append(g.bettingOrder, id)
		}
	}

	g.hands = make(map[int][]*Hand, len(g.bettingOrder))
	for _, id := range g.bettingOrder {
		g.hands[id] = []*Hand{newHand(g.bets[id])}
	}
	g.dealer.clear()

	g.dealOneToEachPlayer()
	g.dealer.addCard(g.mustDraw())
	g.dealOneToEachPlayer()
	g.dealer.addCard(g.mustDraw())

	g.turn = TurnPosition{}
	g.insuranceBets = make(map[int]int64)
	g.insuranceDecided = make(map[int]bool)
	g.result = nil

	if up, ok := g.dealer.UpCard(); ok && up.Rank == cards.Ace && g.opts.Insurance {
		g.state = StateInsurance
		return nil
	}

	g.advanceIfCurrentInactive()
	g.state = StatePlayerTurn
	if g.allPlayersDone() {
		g.state = StateDealerTurn
	}
	return nil
}

// dealOneToEachPlayer gives one card to every betting player's first hand
func (g *Game) dealOneToEachPlayer() {
	for _, id := range g.bettingOrder {
		g.hands[id][0].addCard(g.mustDraw())
	}
}

// mustDraw draws from a shoe already validated to hold enough cards
func (g *Game) mustDraw() cards.Card {
	card, err := g.shoe.Draw()
	if err != nil {
		// Deal validates the count before drawing; reaching this is a bug
		panic(err)
	}
	return card
}
