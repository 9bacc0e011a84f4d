package blackjack

// InsuranceOffered reports whether the insurance window is open
func (g *Game) InsuranceOffered() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == StateInsurance
}

// InsuranceBet returns the player's insurance stake for the round
func (g *Game) InsuranceBet(playerID int) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	stake, ok := g.insuranceBets[playerID]
	return stake, ok
}

// TakeInsurance places the side bet for the player: half the original
// bet, escrowed immediately. Each player decides at most once per round.
// Returns the stake.
func (g *Game) TakeInsurance(playerID int) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateInsurance {
		return 0, NewGameError(ErrInvalidPhase, "the insurance window is not open")
	}
	if !g.opts.Insurance {
		return 0, NewGameError(ErrInsuranceNotOffered, "insurance is not offered at this table")
	}
	if g.insuranceDecided[playerID] {
		return 0, NewGameError(ErrInsuranceAlreadyDecided, "player already made an insurance decision")
	}

	bet, ok := g.bets[playerID]
	if !ok {
		return 0, NewGameError(ErrNoBet, "player has not bet this round")
	}

	stake := bet / 2
	if g.money[playerID] < stake {
		return 0, NewGameError(ErrInsufficientFunds, "not enough money for insurance")
	}

	g.money[playerID] -= stake
	g.insuranceBets[playerID] = stake
	g.insuranceDecided[playerID] = true
	return stake, nil
}

// DeclineInsurance records that the player passes on the side bet
func (g *Game) DeclineInsurance(playerID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateInsurance {
		return NewGameError(ErrInvalidPhase, "the insurance window is not open")
	}
	if g.insuranceDecided[playerID] {
		return NewGameError(ErrInsuranceAlreadyDecided, "player already made an insurance decision")
	}
	if _, ok := g.bets[playerID]; !ok {
		return NewGameError(ErrNoBet, "player has not bet this round")
	}

	g.insuranceDecided[playerID] = true
	return nil
}

// AllInsuranceDecided reports whether every betting player has taken or
// declined insurance
func (g *Game) AllInsuranceDecided() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range g.bettingOrder {
		if !g.insuranceDecided[id] {
			return false
		}
	}
	return true
}

// FinishInsurance closes the insurance window. When the dealer has
// blackjack the hole card is revealed and the round goes straight to
// RoundOver, where showdown settles insurance and the original bets in
// one batch. Otherwise play opens with the first unresolved hand.
// Returns whether the dealer had blackjack.
func (g *Game) FinishInsurance() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateInsurance {
		return false, NewGameError(ErrInvalidPhase, "the insurance window is not open")
	}

	if g.dealer.IsBlackjack() {
		g.dealer.revealHole()
		g.state = StateRoundOver
		return true, nil
	}

	g.advanceIfCurrentInactive()
	g.state = StatePlayerTurn
	if g.allPlayersDone() {
		g.state = StateDealerTurn
	}
	return false, nil
}
