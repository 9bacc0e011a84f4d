package blackjack

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fadedpez/sentenza/pkg/cards"
)

// GameState is the current phase of the round state machine
type GameState string

const (
	// StateIdle means no round is in play; players may join or leave
	StateIdle GameState = "IDLE"
	// StateBetting accepts one bet per joined player
	StateBetting GameState = "BETTING"
	// StateInsurance offers the side bet while the dealer shows an ace
	StateInsurance GameState = "INSURANCE"
	// StatePlayerTurn waits for player actions
	StatePlayerTurn GameState = "PLAYER_TURN"
	// StateDealerTurn means all player hands are resolved
	StateDealerTurn GameState = "DEALER_TURN"
	// StateRoundOver means the round can be settled and cleared
	StateRoundOver GameState = "ROUND_OVER"
)

// TurnPosition identifies the hand whose turn it currently is
type TurnPosition struct {
	// PlayerIndex indexes the betting order for this round
	PlayerIndex int `json:"player_index"`
	// HandIndex indexes the player's hands (splits append hands)
	HandIndex int `json:"hand_index"`
}

// Game owns the full lifecycle of a blackjack round for one or more
// players against a single dealer. All mutation flows through the
// action methods, each of which validates before applying so that a
// failed call leaves no side effect. A single logical owner must drive
// the game; the mutex only serializes the API surface.
type Game struct {
	mu sync.Mutex

	// ID uniquely identifies this table session
	ID string

	opts Options
	shoe *cards.Shoe

	state  GameState
	nextID int

	players []int // join order
	money   map[int]int64

	bets   map[int]int64
	hands  map[int][]*Hand
	dealer *DealerHand

	bettingOrder []int // players who bet this round, in join order
	turn         TurnPosition

	insuranceBets    map[int]int64
	insuranceDecided map[int]bool

	// result is the recorded showdown for the current round; Showdown
	// returns it unchanged on re-invocation so money settles exactly once
	result *RoundResult
}

// New creates a game with the given rules and a shoe shuffled from seed
func New(opts Options, seed int64) *Game {
	return &Game{
		ID:               uuid.New().String(),
		opts:             opts,
		shoe:             cards.NewShoe(opts.Decks, seed),
		state:            StateIdle,
		money:            make(map[int]int64),
		bets:             make(map[int]int64),
		hands:            make(map[int][]*Hand),
		dealer:           newDealerHand(),
		insuranceBets:    make(map[int]int64),
		insuranceDecided: make(map[int]bool),
	}
}

// Options returns the rule configuration for this game
func (g *Game) Options() Options {
	return g.opts
}

// Join adds a player with the given bankroll and returns the assigned id
func (g *Game) Join(money int64) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	g.players = append(g.players, id)
	g.money[id] = money
	return id
}

// Leave removes a player and their money from the game. Only legal
// between rounds; any bet placed for the coming round is discarded
// with the player.
func (g *Game) Leave(playerID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateIdle && g.state != StateBetting {
		return NewGameError(ErrInvalidPhase, "cannot leave during a round")
	}
	if _, ok := g.money[playerID]; !ok {
		return NewGameError(ErrPlayerNotFound, "player has not joined the game")
	}

	for i, id := range g.players {
		if id == playerID {
			g.players = append(g.players[:i], g.players[i+1:]...)
			break
		}
	}
	delete(g.money, playerID)
	delete(g.bets, playerID)
	delete(g.hands, playerID)
	return nil
}

// PlayerCount returns the number of joined players
func (g *Game) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.players)
}

// State returns the current phase
func (g *Game) State() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// StartBetting opens the betting phase
func (g *Game) StartBetting() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateBetting
}

// CardsRemaining returns the number of cards left in the shoe
func (g *Game) CardsRemaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.shoe.Remaining()
}

// Money returns the current bankroll for the player
func (g *Game) Money(playerID int) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	money, ok := g.money[playerID]
	return money, ok
}

// BetAmount returns the player's escrowed bet for the current round
func (g *Game) BetAmount(playerID int) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	bet, ok := g.bets[playerID]
	return bet, ok
}

// Hands returns deep copies of the player's hands for the round
func (g *Game) Hands(playerID int) []*Hand {
	g.mu.Lock()
	defer g.mu.Unlock()

	hands := g.hands[playerID]
	out := make([]*Hand, 0, len(hands))
	for _, h := range hands {
		out = append(out, h.clone())
	}
	return out
}

// CurrentTurn returns the current turn position
func (g *Game) CurrentTurn() TurnPosition {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn
}

// CurrentPlayer returns the player whose turn it is, if any
func (g *Game) CurrentPlayer() (int, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentPlayerLocked()
}

func (g *Game) currentPlayerLocked() (int, bool) {
	if g.turn.PlayerIndex >= len(g.bettingOrder) {
		return 0, false
	}
	return g.bettingOrder[g.turn.PlayerIndex], true
}

// NeedsReshuffle reports whether the dealt fraction of the shoe has
// reached the configured penetration. Always false when penetration is 0.
func (g *Game) NeedsReshuffle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.needsReshuffleLocked()
}

func (g *Game) needsReshuffleLocked() bool {
	if g.opts.Penetration == 0 {
		return false
	}
	total := g.opts.Decks * cards.DeckSize
	used := 1 - float64(g.shoe.Remaining())/float64(total)
	return used >= g.opts.Penetration
}

// Reshuffle rebuilds the shoe between rounds
func (g *Game) Reshuffle() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reshuffleLocked()
}

func (g *Game) reshuffleLocked() error {
	if g.state != StateIdle && g.state != StateBetting {
		return NewGameError(ErrInvalidPhase, "cannot reshuffle during a round")
	}
	g.shoe.Reshuffle()
	return nil
}

// CheckAndReshuffle reshuffles if penetration has been reached. It
// should be called between rounds; returns whether a reshuffle happened.
func (g *Game) CheckAndReshuffle() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.needsReshuffleLocked() {
		return false, nil
	}
	if err := g.reshuffleLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// Reset reseeds the shoe and rebuilds it to full size. Players and
// their money are preserved; only legal between rounds.
func (g *Game) Reset(seed int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateIdle && g.state != StateBetting {
		return NewGameError(ErrInvalidPhase, "cannot reset during a round")
	}
	g.shoe.Reseed(seed)
	return nil
}

// ClearRound discards all hands, bets, insurance state, and the
// recorded round result, returning the game to Idle. Player ids and
// money are preserved.
func (g *Game) ClearRound() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.bets = make(map[int]int64)
	g.hands = make(map[int][]*Hand)
	g.dealer.clear()
	g.bettingOrder = nil
	g.insuranceBets = make(map[int]int64)
	g.insuranceDecided = make(map[int]bool)
	g.turn = TurnPosition{}
	g.result = nil
	g.state = StateIdle
}

// currentHandLocked returns the hand at the turn pointer, if any
func (g *Game) currentHandLocked() *Hand {
	playerID, ok := g.currentPlayerLocked()
	if !ok {
		return nil
	}
	hands := g.hands[playerID]
	if g.turn.HandIndex >= len(hands) {
		return nil
	}
	return hands[g.turn.HandIndex]
}

// advanceIfCurrentInactive skips the turn pointer past an already
// resolved first hand (a dealt blackjack) when play opens.
func (g *Game) advanceIfCurrentInactive() {
	if h := g.currentHandLocked(); h != nil && h.status.resolved() {
		g.advanceToNextActiveHand()
	}
}

// advanceToNextActiveHand moves the turn pointer to the next hand still
// able to act: within a player, hands in creation order; then the next
// player in betting order. Leaves PlayerIndex == len(bettingOrder) when
// no hands remain.
func (g *Game) advanceToNextActiveHand() {
	for {
		playerID, ok := g.currentPlayerLocked()
		if ok {
			hands := g.hands[playerID]
			g.turn.HandIndex++
			if g.turn.HandIndex < len(hands) {
				if hands[g.turn.HandIndex].status == StatusActive {
					return
				}
				continue
			}
		}

		g.turn.PlayerIndex++
		g.turn.HandIndex = 0

		if g.turn.PlayerIndex >= len(g.bettingOrder) {
			return
		}

		nextID := g.bettingOrder[g.turn.PlayerIndex]
		if hands := g.hands[nextID]; len(hands) > 0 && hands[0].status == StatusActive {
			return
		}
	}
}

// allPlayersDone reports whether the turn pointer has passed every hand
func (g *Game) allPlayersDone() bool {
	return g.turn.PlayerIndex >= len(g.bettingOrder)
}

// advanceAfterHand advances the rotation and hands play to the dealer
// when every hand is resolved
func (g *Game) advanceAfterHand() {
	g.advanceToNextActiveHand()
	if g.allPlayersDone() {
		g.state = StateDealerTurn
	}
}

// isPlayerTurn reports whether the given player and hand hold the turn
func (g *Game) isPlayerTurn(playerID, handIndex int) bool {
	current, ok := g.currentPlayerLocked()
	return ok && current == playerID && g.turn.HandIndex == handIndex
}
