package blackjack

import "time"

// HandOutcome is the settled result of a single hand
type HandOutcome string

const (
	OutcomeWin       HandOutcome = "WIN"
	OutcomeLose      HandOutcome = "LOSE"
	OutcomePush      HandOutcome = "PUSH"
	OutcomeBlackjack HandOutcome = "BLACKJACK"
	OutcomeBust      HandOutcome = "BUST"
	OutcomeSurrender HandOutcome = "SURRENDER"
)

// HandResult records the settlement of one hand. Payout is the amount
// credited at showdown; for a surrendered hand it is zero because the
// refund was paid the moment the hand surrendered.
type HandResult struct {
	HandIndex   int         `json:"hand_index"`
	Outcome     HandOutcome `json:"outcome"`
	Bet         int64       `json:"bet"`
	Payout      int64       `json:"payout"`
	PlayerValue int         `json:"player_value"`
	DealerValue int         `json:"dealer_value"`
}

// PlayerResult aggregates a player's hands for the round. Net is the
// player's money movement over the whole round, surrender refunds and
// insurance included.
type PlayerResult struct {
	PlayerID        int          `json:"player_id"`
	Hands           []HandResult `json:"hands"`
	TotalPayout     int64        `json:"total_payout"`
	Net             int64        `json:"net"`
	InsuranceBet    int64        `json:"insurance_bet"`
	InsurancePayout int64        `json:"insurance_payout"`
}

// RoundResult is the full settlement record for one round
type RoundResult struct {
	RoundID         string         `json:"round_id"`
	CompletedAt     time.Time      `json:"completed_at"`
	Players         []PlayerResult `json:"players"`
	DealerValue     int            `json:"dealer_value"`
	DealerBust      bool           `json:"dealer_bust"`
	DealerBlackjack bool           `json:"dealer_blackjack"`
}
