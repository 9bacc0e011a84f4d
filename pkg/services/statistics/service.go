package statistics

import (
	"context"
	"sort"
	"time"

	"github.com/fadedpez/sentenza/pkg/blackjack"
	"github.com/fadedpez/sentenza/pkg/repositories/history"
)

// Service provides methods for retrieving and processing player statistics
type Service struct {
	repository history.Repository
}

// NewService creates a new statistics service
func NewService(repository history.Repository) *Service {
	return &Service{
		repository: repository,
	}
}

// PlayerStatistics aggregates a player's settled hands over a game session
type PlayerStatistics struct {
	PlayerID      int   `json:"player_id"`
	RoundsPlayed  int   `json:"rounds_played"`
	HandsPlayed   int   `json:"hands_played"`
	Wins          int   `json:"wins"`
	Losses        int   `json:"losses"`
	Pushes        int   `json:"pushes"`
	Blackjacks    int   `json:"blackjacks"`
	Busts         int   `json:"busts"`
	Surrenders    int   `json:"surrenders"`
	InsuranceBets int   `json:"insurance_bets"`
	InsuranceWins int   `json:"insurance_wins"`
	TotalBet      int64 `json:"total_bet"`
	Net           int64 `json:"net"`
}

// PlayerRank is a player's statistics with ranking information
type PlayerRank struct {
	*PlayerStatistics
	Rank        int     `json:"rank"`
	WinRate     float64 `json:"win_rate"`
	IsTopWinner bool    `json:"is_top_winner"`
	IsTopPlayer bool    `json:"is_top_player"`
}

// Leaderboard ranks every player in a game session by net winnings
type Leaderboard struct {
	Players     []*PlayerRank `json:"players"`
	TotalRounds int           `json:"total_rounds"`
	LastUpdated time.Time     `json:"last_updated"`
}

// PlayerStatistics aggregates the stored rounds for one player
func (s *Service) PlayerStatistics(ctx context.Context, gameID string, playerID int) (*PlayerStatistics, error) {
	rounds, err := s.repository.PlayerRounds(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	stats := &PlayerStatistics{PlayerID: playerID}
	for _, round := range rounds {
		for _, pr := range round.Players {
			if pr.PlayerID != playerID {
				continue
			}
			accumulate(stats, pr)
		}
	}
	return stats, nil
}

// GameLeaderboard ranks every player seen in the session's stored rounds
func (s *Service) GameLeaderboard(ctx context.Context, gameID string) (*Leaderboard, error) {
	rounds, err := s.repository.GameRounds(ctx, gameID, 0)
	if err != nil {
		return nil, err
	}

	byPlayer := make(map[int]*PlayerStatistics)
	for _, round := range rounds {
		for _, pr := range round.Players {
			stats, ok := byPlayer[pr.PlayerID]
			if !ok {
				stats = &PlayerStatistics{PlayerID: pr.PlayerID}
				byPlayer[pr.PlayerID] = stats
			}
			accumulate(stats, pr)
		}
	}

	ranks := make([]*PlayerRank, 0, len(byPlayer))
	for _, stats := range byPlayer {
		var winRate float64
		if stats.HandsPlayed > 0 {
			winRate = float64(stats.Wins+stats.Blackjacks) / float64(stats.HandsPlayed)
		}
		ranks = append(ranks, &PlayerRank{
			PlayerStatistics: stats,
			WinRate:          winRate,
		})
	}

	// Sort by net winnings (descending), player id as tiebreak for
	// stable output
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Net != ranks[j].Net {
			return ranks[i].Net > ranks[j].Net
		}
		return ranks[i].PlayerID < ranks[j].PlayerID
	})

	if len(ranks) > 0 {
		ranks[0].IsTopWinner = true

		mostRoundsIdx := 0
		for i := 1; i < len(ranks); i++ {
			if ranks[i].RoundsPlayed > ranks[mostRoundsIdx].RoundsPlayed {
				mostRoundsIdx = i
			}
		}
		ranks[mostRoundsIdx].IsTopPlayer = true
	}

	for i := range ranks {
		ranks[i].Rank = i + 1
	}

	return &Leaderboard{
		Players:     ranks,
		TotalRounds: len(rounds),
		LastUpdated: time.Now().UTC(),
	}, nil
}

// RecordRound stores a settled round for later aggregation
func (s *Service) RecordRound(ctx context.Context, gameID string, result *blackjack.RoundResult) error {
	return s.repository.SaveRound(ctx, gameID, result)
}

// accumulate folds one round's player result into the running totals
func accumulate(stats *PlayerStatistics, pr blackjack.PlayerResult) {
	stats.RoundsPlayed++
	stats.Net += pr.Net
	if pr.InsuranceBet > 0 {
		stats.InsuranceBets++
		if pr.InsurancePayout > 0 {
			stats.InsuranceWins++
		}
	}

	for _, hand := range pr.Hands {
		stats.HandsPlayed++
		stats.TotalBet += hand.Bet

		switch hand.Outcome {
		case blackjack.OutcomeWin:
			stats.Wins++
		case blackjack.OutcomeBlackjack:
			stats.Blackjacks++
		case blackjack.OutcomeLose:
			stats.Losses++
		case blackjack.OutcomeBust:
			stats.Busts++
			stats.Losses++
		case blackjack.OutcomePush:
			stats.Pushes++
		case blackjack.OutcomeSurrender:
			stats.Surrenders++
		}
	}
}
