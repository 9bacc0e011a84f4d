package blackjack

import (
	"time"

	"github.com/google/uuid"

	"github.com/fadedpez/sentenza/pkg/cards"
)

// DealerPlay reveals the hole card and plays out the dealer's hand.
// The dealer draws to 17, hitting a soft 17 only when the table rule
// says so, and skips drawing entirely when no live hand is waiting on
// the outcome. Returns the cards drawn.
func (g *Game) DealerPlay() ([]cards.Card, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateDealerTurn {
		return nil, NewGameError(ErrInvalidPhase, "dealer plays only after all player hands resolve")
	}

	g.dealer.revealHole()

	if !g.anyLiveHandLocked() {
		g.state = StateRoundOver
		return nil, nil
	}

	var drawn []cards.Card
	for g.dealerMustHitLocked() {
		card, err := g.shoe.Draw()
		if err != nil {
			return drawn, WrapError(ErrShoeExhausted, "dealer cannot draw", err)
		}
		g.dealer.addCard(card)
		drawn = append(drawn, card)
	}

	g.state = StateRoundOver
	return drawn, nil
}

// dealerMustHitLocked applies the table's drawing rule
func (g *Game) dealerMustHitLocked() bool {
	value, soft := evaluateCards(g.dealer.cards)
	if value < 17 {
		return true
	}
	return value == 17 && soft && g.opts.DealerHitsSoft17
}

// anyLiveHandLocked reports whether any hand still needs the dealer's
// total to settle. Busted and surrendered hands lose regardless, so a
// table of nothing but those lets the dealer stand pat.
func (g *Game) anyLiveHandLocked() bool {
	for _, id := range g.bettingOrder {
		for _, h := range g.hands[id] {
			switch h.status {
			case StatusStood, StatusDoubledStood, StatusBlackjack:
				return true
			}
		}
	}
	return false
}

// Showdown settles every hand against the dealer and credits all
// winnings in a single batch. The settlement is recorded on the game;
// calling Showdown again for the same round returns the recorded
// result without moving money a second time.
func (g *Game) Showdown() (*RoundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateRoundOver {
		return nil, NewGameError(ErrInvalidPhase, "showdown is only legal once the round is over")
	}
	if g.result != nil {
		return g.result, nil
	}

	g.dealer.revealHole()

	dealerValue := g.dealer.Value()
	dealerBust := g.dealer.IsBust()
	dealerBlackjack := g.dealer.IsBlackjack()

	result := &RoundResult{
		RoundID:         uuid.New().String(),
		CompletedAt:     time.Now().UTC(),
		Players:         make([]PlayerResult, 0, len(g.bettingOrder)),
		DealerValue:     dealerValue,
		DealerBust:      dealerBust,
		DealerBlackjack: dealerBlackjack,
	}

	for _, id := range g.bettingOrder {
		pr := PlayerResult{PlayerID: id}

		var totalBet int64
		var refunds int64
		for i, hand := range g.hands[id] {
			hr := g.settleHandLocked(hand, dealerValue, dealerBust, dealerBlackjack)
			hr.HandIndex = i
			pr.Hands = append(pr.Hands, hr)
			pr.TotalPayout += hr.Payout
			totalBet += hand.bet
			if hand.status == StatusSurrendered {
				refunds += g.opts.surrenderRefund(hand.bet)
			}
		}

		pr.InsuranceBet = g.insuranceBets[id]
		if dealerBlackjack && pr.InsuranceBet > 0 {
			pr.InsurancePayout = pr.InsuranceBet + g.opts.insuranceWinnings(pr.InsuranceBet)
		}

		pr.Net = pr.TotalPayout + refunds + pr.InsurancePayout - totalBet - pr.InsuranceBet

		g.money[id] += pr.TotalPayout + pr.InsurancePayout
		result.Players = append(result.Players, pr)
	}

	g.result = result
	return result, nil
}

// settleHandLocked decides one hand's outcome against the dealer.
// Payout is the full amount returned to the player at showdown, stake
// included on a win or push.
func (g *Game) settleHandLocked(hand *Hand, dealerValue int, dealerBust, dealerBlackjack bool) HandResult {
	hr := HandResult{
		Bet:         hand.bet,
		PlayerValue: hand.Value(),
		DealerValue: dealerValue,
	}

	switch {
	case hand.status == StatusSurrendered:
		// Half the bet went back when the hand surrendered
		hr.Outcome = OutcomeSurrender

	case hand.status == StatusBust:
		hr.Outcome = OutcomeBust

	case hand.status == StatusBlackjack:
		if dealerBlackjack {
			hr.Outcome = OutcomePush
			hr.Payout = hand.bet
		} else {
			hr.Outcome = OutcomeBlackjack
			hr.Payout = hand.bet + g.opts.blackjackWinnings(hand.bet)
		}

	case dealerBust:
		hr.Outcome = OutcomeWin
		hr.Payout = hand.bet * 2

	case hr.PlayerValue > dealerValue:
		hr.Outcome = OutcomeWin
		hr.Payout = hand.bet * 2

	case hr.PlayerValue < dealerValue:
		hr.Outcome = OutcomeLose

	default:
		hr.Outcome = OutcomePush
		hr.Payout = hand.bet
	}

	return hr
}
