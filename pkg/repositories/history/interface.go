package history

import (
	"context"

	"github.com/fadedpez/sentenza/pkg/blackjack"
)

// Repository defines storage operations for settled round results
type Repository interface {
	// SaveRound stores a settled round for a game session
	SaveRound(ctx context.Context, gameID string, result *blackjack.RoundResult) error

	// GameRounds retrieves the most recent rounds for a game session,
	// oldest first, capped at limit when limit is positive
	GameRounds(ctx context.Context, gameID string, limit int) ([]*blackjack.RoundResult, error)

	// PlayerRounds retrieves the rounds in a game session that the
	// player took part in
	PlayerRounds(ctx context.Context, gameID string, playerID int) ([]*blackjack.RoundResult, error)

	// Close closes any resources used by the repository
	Close() error
}
