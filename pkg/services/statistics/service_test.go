package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fadedpez/sentenza/pkg/blackjack"
	"github.com/fadedpez/sentenza/pkg/repositories/history"
)

func handResult(outcome blackjack.HandOutcome, bet, payout int64) blackjack.HandResult {
	return blackjack.HandResult{Outcome: outcome, Bet: bet, Payout: payout}
}

func round(roundID string, players ...blackjack.PlayerResult) *blackjack.RoundResult {
	return &blackjack.RoundResult{
		RoundID:     roundID,
		CompletedAt: time.Now().UTC(),
		Players:     players,
	}
}

func TestPlayerStatistics(t *testing.T) {
	repo := history.NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RecordRound(ctx, "game-1", round("r1", blackjack.PlayerResult{
		PlayerID: 0,
		Hands: []blackjack.HandResult{
			handResult(blackjack.OutcomeWin, 50, 100),
		},
		Net: 50,
	})))
	require.NoError(t, svc.RecordRound(ctx, "game-1", round("r2", blackjack.PlayerResult{
		PlayerID: 0,
		Hands: []blackjack.HandResult{
			handResult(blackjack.OutcomeBust, 50, 0),
			handResult(blackjack.OutcomePush, 50, 50),
		},
		Net:             -75,
		InsuranceBet:    25,
		InsurancePayout: 0,
	})))
	require.NoError(t, svc.RecordRound(ctx, "game-1", round("r3", blackjack.PlayerResult{
		PlayerID: 0,
		Hands: []blackjack.HandResult{
			handResult(blackjack.OutcomeBlackjack, 50, 125),
		},
		Net: 75,
	})))

	stats, err := svc.PlayerStatistics(ctx, "game-1", 0)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.RoundsPlayed)
	assert.Equal(t, 4, stats.HandsPlayed)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Blackjacks)
	assert.Equal(t, 1, stats.Busts)
	assert.Equal(t, 1, stats.Losses, "A bust counts as a loss")
	assert.Equal(t, 1, stats.Pushes)
	assert.Equal(t, 1, stats.InsuranceBets)
	assert.Equal(t, 0, stats.InsuranceWins)
	assert.Equal(t, int64(200), stats.TotalBet)
	assert.Equal(t, int64(50), stats.Net)
}

func TestPlayerStatisticsEmptyHistory(t *testing.T) {
	svc := NewService(history.NewMemoryRepository())

	stats, err := svc.PlayerStatistics(context.Background(), "game-1", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, stats.RoundsPlayed)
	assert.Equal(t, int64(0), stats.Net)
}

func TestGameLeaderboard(t *testing.T) {
	repo := history.NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.RecordRound(ctx, "game-1", round("r1",
		blackjack.PlayerResult{
			PlayerID: 0,
			Hands:    []blackjack.HandResult{handResult(blackjack.OutcomeLose, 50, 0)},
			Net:      -50,
		},
		blackjack.PlayerResult{
			PlayerID: 1,
			Hands:    []blackjack.HandResult{handResult(blackjack.OutcomeWin, 50, 100)},
			Net:      50,
		},
	)))
	require.NoError(t, svc.RecordRound(ctx, "game-1", round("r2",
		blackjack.PlayerResult{
			PlayerID: 0,
			Hands:    []blackjack.HandResult{handResult(blackjack.OutcomeWin, 50, 100)},
			Net:      50,
		},
	)))

	board, err := svc.GameLeaderboard(ctx, "game-1")
	require.NoError(t, err)

	assert.Equal(t, 2, board.TotalRounds)
	require.Len(t, board.Players, 2)

	top := board.Players[0]
	assert.Equal(t, 1, top.PlayerID, "Net +50 in one round ranks first")
	assert.Equal(t, 1, top.Rank)
	assert.True(t, top.IsTopWinner)
	assert.Equal(t, 1.0, top.WinRate)

	second := board.Players[1]
	assert.Equal(t, 0, second.PlayerID)
	assert.Equal(t, 2, second.Rank)
	assert.True(t, second.IsTopPlayer, "Player 0 played the most rounds")
	assert.Equal(t, 0.5, second.WinRate)
}

func TestGameLeaderboardEmpty(t *testing.T) {
	svc := NewService(history.NewMemoryRepository())

	board, err := svc.GameLeaderboard(context.Background(), "game-1")
	require.NoError(t, err)
	assert.Empty(t, board.Players)
	assert.Equal(t, 0, board.TotalRounds)
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	repoErr := errors.New("storage offline")
	repo := history.NewMockRepository(t)
	repo.On("PlayerRounds", mock.Anything, "game-1", 0).Return(nil, repoErr)
	repo.On("GameRounds", mock.Anything, "game-1", 0).Return(nil, repoErr)

	svc := NewService(repo)

	_, err := svc.PlayerStatistics(context.Background(), "game-1", 0)
	assert.ErrorIs(t, err, repoErr)

	_, err = svc.GameLeaderboard(context.Background(), "game-1")
	assert.ErrorIs(t, err, repoErr)

	repo.AssertExpectations(t)
}
