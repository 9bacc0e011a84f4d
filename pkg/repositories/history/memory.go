package history

import (
	"context"
	"sync"

	"github.com/fadedpez/sentenza/pkg/blackjack"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of gameID to rounds in completion order
	gameRounds map[string][]*blackjack.RoundResult
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		gameRounds: make(map[string][]*blackjack.RoundResult),
	}
}

// SaveRound stores a settled round for a game session
func (r *MemoryRepository) SaveRound(ctx context.Context, gameID string, result *blackjack.RoundResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gameRounds[gameID] = append(r.gameRounds[gameID], result)
	return nil
}

// GameRounds retrieves rounds for a game session, oldest first
func (r *MemoryRepository) GameRounds(ctx context.Context, gameID string, limit int) ([]*blackjack.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rounds := r.gameRounds[gameID]
	if rounds == nil {
		return []*blackjack.RoundResult{}, nil
	}

	// If we have more rounds than the limit, return only the most recent ones
	if limit > 0 && len(rounds) > limit {
		rounds = rounds[len(rounds)-limit:]
	}

	out := make([]*blackjack.RoundResult, len(rounds))
	copy(out, rounds)
	return out, nil
}

// PlayerRounds retrieves the rounds the player took part in
func (r *MemoryRepository) PlayerRounds(ctx context.Context, gameID string, playerID int) ([]*blackjack.RoundResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := []*blackjack.RoundResult{}
	for _, round := range r.gameRounds[gameID] {
		for _, pr := range round.Players {
			if pr.PlayerID == playerID {
				results = append(results, round)
				break
			}
		}
	}
	return results, nil
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}
