package blackjack

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a specific validation failure
type ErrorCode string

const (
	// Phase and turn errors
	ErrInvalidPhase     ErrorCode = "INVALID_PHASE"
	ErrNotYourTurn      ErrorCode = "NOT_YOUR_TURN"
	ErrInvalidHandIndex ErrorCode = "INVALID_HAND_INDEX"
	ErrHandNotActive    ErrorCode = "HAND_NOT_ACTIVE"

	// Player and money errors
	ErrPlayerNotFound    ErrorCode = "PLAYER_NOT_FOUND"
	ErrNoBet             ErrorCode = "NO_BET"
	ErrNoBetsPlaced      ErrorCode = "NO_BETS_PLACED"
	ErrInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrInvalidBetAmount  ErrorCode = "INVALID_BET_AMOUNT"

	// Action eligibility errors
	ErrSplitNotAllowed     ErrorCode = "SPLIT_NOT_ALLOWED"
	ErrDoubleNotAllowed    ErrorCode = "DOUBLE_NOT_ALLOWED"
	ErrSurrenderNotAllowed ErrorCode = "SURRENDER_NOT_ALLOWED"

	// Insurance errors
	ErrInsuranceNotOffered     ErrorCode = "INSURANCE_NOT_OFFERED"
	ErrInsuranceAlreadyDecided ErrorCode = "INSURANCE_ALREADY_DECIDED"

	// Shoe errors
	ErrShoeExhausted ErrorCode = "SHOE_EXHAUSTED"
)

// GameError represents a validation failure for a game action. Every
// failed action returns a GameError with a specific code and leaves the
// game state untouched.
type GameError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GameError) Unwrap() error {
	return e.Err
}

// NewGameError creates a new GameError
func NewGameError(code ErrorCode, message string) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a GameError
func WrapError(code ErrorCode, message string, err error) *GameError {
	return &GameError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode checks if an error is a GameError with the given code
func IsCode(err error, code ErrorCode) bool {
	var gameErr *GameError
	if !errors.As(err, &gameErr) {
		return false
	}
	return gameErr.Code == code
}
