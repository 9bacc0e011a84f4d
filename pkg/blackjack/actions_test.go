package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/sentenza/pkg/cards"
)

// dealScripted runs bet and deal over a scripted shoe. Extra cards
// after the opening four stay in the shoe for later draws.
func dealScripted(t *testing.T, opts Options, bankroll, bet int64, script []cards.Card) (*Game, int) {
	t.Helper()
	g, playerID := newTestGame(t, opts, bankroll, script)
	require.NoError(t, g.Bet(playerID, bet))
	require.NoError(t, g.Deal())
	return g, playerID
}

func TestHitDrawsCard(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Ten),   // player
		card(cards.Seven), // dealer up
		card(cards.Five),  // player
		card(cards.Nine),  // dealer hole
		card(cards.Four),  // hit card
	})

	drawn, err := g.Hit(playerID, 0)
	require.NoError(t, err)
	assert.Equal(t, card(cards.Four), drawn)

	hands := g.Hands(playerID)
	assert.Equal(t, 19, hands[0].Value())
	assert.Equal(t, StatusActive, hands[0].Status())
	assert.Equal(t, StatePlayerTurn, g.State(), "A live hand keeps the turn")
}

func TestHitToBustAdvancesToDealer(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Ten),
		card(cards.Seven),
		card(cards.Six),
		card(cards.Nine),
		card(cards.King), // hit card busts 16
	})

	_, err := g.Hit(playerID, 0)
	require.NoError(t, err)

	hands := g.Hands(playerID)
	assert.Equal(t, StatusBust, hands[0].Status())
	assert.Equal(t, 26, hands[0].Value())
	assert.Equal(t, StateDealerTurn, g.State(), "Bust on the last pending hand hands play to the dealer")
}

func TestStandResolvesHand(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Ten),
		card(cards.Seven),
		card(cards.Nine),
		card(cards.Five),
	})

	require.NoError(t, g.Stand(playerID, 0))

	hands := g.Hands(playerID)
	assert.Equal(t, StatusStood, hands[0].Status())
	assert.Equal(t, StateDealerTurn, g.State())
}

func TestActionsOutsidePlayerTurn(t *testing.T) {
	g, playerID := newTestGame(t, DefaultOptions(), 1000, nil)

	_, err := g.Hit(playerID, 0)
	assert.True(t, IsCode(err, ErrInvalidPhase))

	err = g.Stand(playerID, 0)
	assert.True(t, IsCode(err, ErrInvalidPhase))

	_, err = g.DoubleDown(playerID, 0)
	assert.True(t, IsCode(err, ErrInvalidPhase))

	err = g.Split(playerID, 0)
	assert.True(t, IsCode(err, ErrInvalidPhase))

	_, err = g.Surrender(playerID, 0)
	assert.True(t, IsCode(err, ErrInvalidPhase))
}

func TestActionValidationOrder(t *testing.T) {
	g := New(DefaultOptions(), 1)
	first := g.Join(1000)
	second := g.Join(1000)
	g.StartBetting()
	g.shoe.Load([]cards.Card{
		card(cards.Two), card(cards.Three), // first cards
		card(cards.Seven),                 // dealer up
		card(cards.Four), card(cards.Five), // second cards
		card(cards.Nine), // dealer hole
	})
	require.NoError(t, g.Bet(first, 50))
	require.NoError(t, g.Bet(second, 50))
	require.NoError(t, g.Deal())

	// first holds the turn; second must wait
	err := g.Stand(second, 0)
	assert.True(t, IsCode(err, ErrNotYourTurn))

	_, err = g.Hit(99, 0)
	assert.True(t, IsCode(err, ErrPlayerNotFound))

	_, err = g.Hit(first, 5)
	assert.True(t, IsCode(err, ErrInvalidHandIndex))
}

func TestDoubleDown(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Six),
		card(cards.Seven),
		card(cards.Five), // player has 11
		card(cards.Nine),
		card(cards.King), // double card, 21
	})

	drawn, err := g.DoubleDown(playerID, 0)
	require.NoError(t, err)
	assert.Equal(t, card(cards.King), drawn)

	hands := g.Hands(playerID)
	assert.Equal(t, StatusDoubledStood, hands[0].Status())
	assert.Equal(t, int64(100), hands[0].Bet(), "Double down doubles the escrowed bet")
	assert.Equal(t, 21, hands[0].Value())

	money, _ := g.Money(playerID)
	assert.Equal(t, int64(900), money, "The matching bet escrows on double")
	assert.Equal(t, StateDealerTurn, g.State())
}

func TestDoubleDownBust(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Ten),
		card(cards.Seven),
		card(cards.Six),
		card(cards.Nine),
		card(cards.King), // double card busts 16
	})

	_, err := g.DoubleDown(playerID, 0)
	require.NoError(t, err)

	hands := g.Hands(playerID)
	assert.Equal(t, StatusBust, hands[0].Status(), "Bust wins over the doubled stand")
}

func TestDoubleDownRejections(t *testing.T) {
	t.Run("insufficient funds", func(t *testing.T) {
		g, playerID := dealScripted(t, DefaultOptions(), 60, 50, []cards.Card{
			card(cards.Six), card(cards.Seven), card(cards.Five), card(cards.Nine), card(cards.King),
		})

		_, err := g.DoubleDown(playerID, 0)
		assert.True(t, IsCode(err, ErrInsufficientFunds))

		money, _ := g.Money(playerID)
		assert.Equal(t, int64(10), money, "Failed double moves no money")
	})

	t.Run("value not eligible", func(t *testing.T) {
		opts := DefaultOptions().WithDouble(DoubleNineToEleven)
		g, playerID := dealScripted(t, opts, 1000, 50, []cards.Card{
			card(cards.Ten), card(cards.Seven), card(cards.Six), card(cards.Nine),
		})

		_, err := g.DoubleDown(playerID, 0)
		assert.True(t, IsCode(err, ErrDoubleNotAllowed))
	})

	t.Run("three card hand", func(t *testing.T) {
		g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
			card(cards.Two), card(cards.Seven), card(cards.Three), card(cards.Nine),
			card(cards.Four), // hit card
		})
		_, err := g.Hit(playerID, 0)
		require.NoError(t, err)

		_, err = g.DoubleDown(playerID, 0)
		assert.True(t, IsCode(err, ErrDoubleNotAllowed))
	})
}

func TestSplitPair(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Eight),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Eight),
		card(cards.Nine),
		card(cards.Two),  // first split hand draw
		card(cards.Three), // second split hand draw
	})

	require.NoError(t, g.Split(playerID, 0))

	hands := g.Hands(playerID)
	require.Len(t, hands, 2)

	assert.Equal(t, []cards.Card{cardOf(cards.Hearts, cards.Eight), card(cards.Two)}, hands[0].Cards())
	assert.Equal(t, []cards.Card{cardOf(cards.Clubs, cards.Eight), card(cards.Three)}, hands[1].Cards())

	for _, h := range hands {
		assert.True(t, h.FromSplit())
		assert.Equal(t, 1, h.SplitDepth())
		assert.Equal(t, int64(50), h.Bet())
		assert.Equal(t, StatusActive, h.Status())
	}

	money, _ := g.Money(playerID)
	assert.Equal(t, int64(900), money, "Split escrows a matching bet")
	assert.Equal(t, TurnPosition{PlayerIndex: 0, HandIndex: 0}, g.CurrentTurn(), "Play continues on the first split hand")
}

func TestSplitAcesOneCardEach(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Ace),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Ace),
		card(cards.Nine),
		card(cards.King), // first split hand draw
		card(cards.Nine), // second split hand draw
	})

	require.NoError(t, g.Split(playerID, 0))

	hands := g.Hands(playerID)
	require.Len(t, hands, 2)
	assert.Equal(t, StatusStood, hands[0].Status(), "Split aces stand on their single card")
	assert.Equal(t, StatusStood, hands[1].Status())
	assert.Equal(t, 21, hands[0].Value())
	assert.NotEqual(t, StatusBlackjack, hands[0].Status(), "A split ace hitting 21 is not a natural")
	assert.Equal(t, StateDealerTurn, g.State())
}

func TestSplitAcesCannotResplit(t *testing.T) {
	// one-card split aces would stand immediately, so relax that rule
	// to leave the hand actionable after the first split
	opts := DefaultOptions().WithSplitAcesOneCard(false)
	g, playerID := dealScripted(t, opts, 1000, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Ace),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Ace),
		card(cards.Nine),
		cardOf(cards.Spades, cards.Ace), // first split hand draws another ace
		card(cards.Nine),
	})

	require.NoError(t, g.Split(playerID, 0))

	err := g.Split(playerID, 0)
	assert.True(t, IsCode(err, ErrSplitNotAllowed), "Re-splitting aces is rejected")
}

func TestSplitNonPairRejected(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Ten),
		card(cards.Seven),
		card(cards.Nine),
		card(cards.Five),
	})

	err := g.Split(playerID, 0)
	assert.True(t, IsCode(err, ErrSplitNotAllowed))
}

func TestSplitInsufficientFunds(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 60, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Eight),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Eight),
		card(cards.Nine),
	})

	err := g.Split(playerID, 0)
	assert.True(t, IsCode(err, ErrInsufficientFunds))

	money, _ := g.Money(playerID)
	assert.Equal(t, int64(10), money)
	assert.Len(t, g.Hands(playerID), 1, "Failed split leaves the hand intact")
}

func TestMaxSplits(t *testing.T) {
	opts := DefaultOptions().WithMaxSplits(1)
	g, playerID := dealScripted(t, opts, 1000, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Eight),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Eight),
		card(cards.Nine),
		cardOf(cards.Spades, cards.Eight), // first split hand draws another eight
		card(cards.Two),
	})

	require.NoError(t, g.Split(playerID, 0))
	require.Len(t, g.Hands(playerID), 2)

	err := g.Split(playerID, 0)
	assert.True(t, IsCode(err, ErrSplitNotAllowed), "Split cap reached")
}

func TestSurrenderRefundsHalf(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Ten),
		card(cards.Seven),
		card(cards.Six),
		card(cards.Nine),
	})

	refund, err := g.Surrender(playerID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(25), refund)

	money, _ := g.Money(playerID)
	assert.Equal(t, int64(975), money, "Half the bet comes back immediately")

	hands := g.Hands(playerID)
	assert.Equal(t, StatusSurrendered, hands[0].Status())
	assert.Equal(t, StateDealerTurn, g.State())
}

func TestSurrenderOnlyFirstDecision(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		card(cards.Two),
		card(cards.Seven),
		card(cards.Three),
		card(cards.Nine),
		card(cards.Four), // hit card
	})
	_, err := g.Hit(playerID, 0)
	require.NoError(t, err)

	_, err = g.Surrender(playerID, 0)
	assert.True(t, IsCode(err, ErrSurrenderNotAllowed))
}

func TestSurrenderDisabled(t *testing.T) {
	opts := DefaultOptions().WithSurrender(false)
	g, playerID := dealScripted(t, opts, 1000, 50, []cards.Card{
		card(cards.Ten),
		card(cards.Seven),
		card(cards.Six),
		card(cards.Nine),
	})

	_, err := g.Surrender(playerID, 0)
	assert.True(t, IsCode(err, ErrSurrenderNotAllowed))
}

func TestSurrenderAfterSplitRejected(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Eight),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Eight),
		card(cards.Nine),
		card(cards.Two),
		card(cards.Three),
	})
	require.NoError(t, g.Split(playerID, 0))

	_, err := g.Surrender(playerID, 0)
	assert.True(t, IsCode(err, ErrSurrenderNotAllowed), "Split hands cannot surrender")
}

func TestDoubleAfterSplitDisabled(t *testing.T) {
	opts := DefaultOptions().WithDoubleAfterSplit(false)
	g, playerID := dealScripted(t, opts, 1000, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Eight),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Eight),
		card(cards.Nine),
		card(cards.Two),
		card(cards.Three),
	})
	require.NoError(t, g.Split(playerID, 0))

	_, err := g.DoubleDown(playerID, 0)
	assert.True(t, IsCode(err, ErrDoubleNotAllowed))
}

func TestSplitHandsPlayInSequence(t *testing.T) {
	g, playerID := dealScripted(t, DefaultOptions(), 1000, 50, []cards.Card{
		cardOf(cards.Hearts, cards.Eight),
		card(cards.Seven),
		cardOf(cards.Clubs, cards.Eight),
		card(cards.Nine),
		card(cards.Two),
		card(cards.Three),
	})
	require.NoError(t, g.Split(playerID, 0))

	require.NoError(t, g.Stand(playerID, 0))
	assert.Equal(t, TurnPosition{PlayerIndex: 0, HandIndex: 1}, g.CurrentTurn())
	assert.Equal(t, StatePlayerTurn, g.State())

	require.NoError(t, g.Stand(playerID, 1))
	assert.Equal(t, StateDealerTurn, g.State())
}
