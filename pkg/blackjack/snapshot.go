package blackjack

import "github.com/fadedpez/sentenza/pkg/cards"

// SnapshotVersion is bumped whenever the snapshot shape changes
const SnapshotVersion = 1

// HandSnapshot is the read-only projection of a single hand
type HandSnapshot struct {
	Index      int          `json:"index"`
	Cards      []cards.Card `json:"cards"`
	Value      int          `json:"value"`
	IsSoft     bool         `json:"is_soft"`
	Status     HandStatus   `json:"status"`
	Bet        int64        `json:"bet"`
	FromSplit  bool         `json:"from_split"`
	SplitDepth int          `json:"split_depth"`
	CanSplit   bool         `json:"can_split"`
}

// DealerSnapshot is the read-only projection of the dealer's hand. The
// hole card is nil while face-down, and Value covers visible cards only
// until the reveal.
type DealerSnapshot struct {
	Cards        []*cards.Card `json:"cards"`
	Value        int           `json:"value"`
	VisibleValue int           `json:"visible_value"`
	IsSoft       bool          `json:"is_soft"`
	IsBlackjack  bool          `json:"is_blackjack"`
	IsBust       bool          `json:"is_bust"`
	HoleRevealed bool          `json:"hole_revealed"`
}

// TurnRef points at the hand currently holding the turn
type TurnRef struct {
	PlayerID  int `json:"player_id"`
	HandIndex int `json:"hand_index"`
}

// Snapshot is a serializable view of the round from one player's seat.
// It is built fresh on every call and shares no memory with the game.
type Snapshot struct {
	Version  int       `json:"version"`
	State    GameState `json:"state"`
	PlayerID int       `json:"player_id"`
	Money    int64     `json:"money"`
	Bet      int64     `json:"bet"`

	Hands  []HandSnapshot `json:"hands"`
	Dealer DealerSnapshot `json:"dealer"`

	CurrentTurn *TurnRef `json:"current_turn"`

	InsuranceOffered bool   `json:"insurance_offered"`
	InsuranceBet     *int64 `json:"insurance_bet"`

	CardsRemaining int `json:"cards_remaining"`
}

// Snapshot builds the read-only view of the round for the given player.
// This is the only place dealer masking happens: while the hole card is
// face-down it appears as nil and never contributes to any reported
// value, so callers can hand the snapshot to any consumer.
func (g *Game) Snapshot(playerID int) (*Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	money, ok := g.money[playerID]
	if !ok {
		return nil, NewGameError(ErrPlayerNotFound, "player has not joined the game")
	}

	snap := &Snapshot{
		Version:          SnapshotVersion,
		State:            g.state,
		PlayerID:         playerID,
		Money:            money,
		Bet:              g.bets[playerID],
		Dealer:           g.dealerSnapshotLocked(),
		InsuranceOffered: g.state == StateInsurance,
		CardsRemaining:   g.shoe.Remaining(),
	}

	for i, hand := range g.hands[playerID] {
		snap.Hands = append(snap.Hands, HandSnapshot{
			Index:      i,
			Cards:      hand.Cards(),
			Value:      hand.Value(),
			IsSoft:     hand.IsSoft(),
			Status:     hand.status,
			Bet:        hand.bet,
			FromSplit:  hand.fromSplit,
			SplitDepth: hand.splitDepth,
			CanSplit:   hand.CanSplit(),
		})
	}

	if g.state == StatePlayerTurn {
		if current, ok := g.currentPlayerLocked(); ok {
			snap.CurrentTurn = &TurnRef{PlayerID: current, HandIndex: g.turn.HandIndex}
		}
	}

	if stake, ok := g.insuranceBets[playerID]; ok {
		snap.InsuranceBet = &stake
	}

	return snap, nil
}

func (g *Game) dealerSnapshotLocked() DealerSnapshot {
	ds := DealerSnapshot{
		VisibleValue: g.dealer.VisibleValue(),
		HoleRevealed: g.dealer.HoleRevealed(),
	}

	for i, card := range g.dealer.Cards() {
		if i == 1 && !ds.HoleRevealed {
			ds.Cards = append(ds.Cards, nil)
			continue
		}
		c := card
		ds.Cards = append(ds.Cards, &c)
	}

	if ds.HoleRevealed {
		ds.Value = g.dealer.Value()
		ds.IsSoft = g.dealer.IsSoft()
		ds.IsBlackjack = g.dealer.IsBlackjack()
		ds.IsBust = g.dealer.IsBust()
	} else {
		ds.Value = g.dealer.VisibleValue()
		up, hasUp := g.dealer.UpCard()
		ds.IsSoft = hasUp && up.Rank == cards.Ace
	}

	return ds
}
