package history

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fadedpez/sentenza/pkg/blackjack"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a new mock repository
func NewMockRepository(t mock.TestingT) *MockRepository {
	m := &MockRepository{}
	m.Test(t)
	return m
}

// SaveRound mocks the SaveRound method
func (m *MockRepository) SaveRound(ctx context.Context, gameID string, result *blackjack.RoundResult) error {
	args := m.Called(ctx, gameID, result)
	return args.Error(0)
}

// GameRounds mocks the GameRounds method
func (m *MockRepository) GameRounds(ctx context.Context, gameID string, limit int) ([]*blackjack.RoundResult, error) {
	args := m.Called(ctx, gameID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blackjack.RoundResult), args.Error(1)
}

// PlayerRounds mocks the PlayerRounds method
func (m *MockRepository) PlayerRounds(ctx context.Context, gameID string, playerID int) ([]*blackjack.RoundResult, error) {
	args := m.Called(ctx, gameID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*blackjack.RoundResult), args.Error(1)
}

// Close mocks the Close method
func (m *MockRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
