package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/fadedpez/sentenza/internal/config"
	"github.com/fadedpez/sentenza/pkg/blackjack"
	"github.com/fadedpez/sentenza/pkg/repositories/history"
	"github.com/fadedpez/sentenza/pkg/services/statistics"
)

type CLI struct {
	Bankroll int64 `short:"b" help:"Starting bankroll (overrides BLACKJACK_BANKROLL)" default:"0"`
	Seed     int64 `short:"s" help:"Shoe seed for a reproducible session; 0 picks one from the clock" default:"0"`
	Decks    int   `short:"d" help:"Number of decks in the shoe (overrides BLACKJACK_DECKS)" default:"0"`
	Verbose  bool  `short:"v" help:"Enable debug logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "blackjack",
	})
	logger.SetLevel(log.WarnLevel)
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", "error", err)
	}

	if cli.Bankroll > 0 {
		cfg.Bankroll = cli.Bankroll
	}
	if cli.Decks > 0 {
		cfg.Decks = cli.Decks
	}
	seed := cfg.Seed
	if cli.Seed != 0 {
		seed = cli.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Print(titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	session := &session{
		logger: logger,
		game:   blackjack.New(cfg.Options(), seed),
		stats:  statistics.NewService(history.NewMemoryRepository()),
		input:  bufio.NewScanner(os.Stdin),
	}
	session.playerID = session.game.Join(cfg.Bankroll)

	logger.Debug("Session started", "game_id", session.game.ID, "seed", seed, "bankroll", cfg.Bankroll)

	if err := session.run(); err != nil {
		logger.Fatal("Session ended with an error", "error", err)
	}

	ctx.Exit(0)
}

type session struct {
	logger   *log.Logger
	game     *blackjack.Game
	stats    *statistics.Service
	playerID int
	input    *bufio.Scanner
	lastBet  int64
}

// run drives rounds until the player quits or runs out of money
func (s *session) run() error {
	defer s.printSummary()

	for {
		money, _ := s.game.Money(s.playerID)
		if money <= 0 {
			fmt.Println(loseStyle.Render("You are out of money."))
			return nil
		}

		if reshuffled, err := s.game.CheckAndReshuffle(); err != nil {
			return err
		} else if reshuffled {
			fmt.Println(hiddenStyle.Render("Reshuffling the shoe."))
			s.logger.Debug("Shoe reshuffled")
		}

		ok, err := s.playRound()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		s.game.ClearRound()
	}
}

func (s *session) playRound() (bool, error) {
	s.game.StartBetting()

	if !s.promptBet() {
		return false, nil
	}

	if err := s.game.Deal(); err != nil {
		return false, err
	}

	if s.game.State() == blackjack.StateInsurance {
		if err := s.runInsurance(); err != nil {
			return false, err
		}
	}

	for s.game.State() == blackjack.StatePlayerTurn {
		quit, err := s.promptAction()
		if err != nil {
			return false, err
		}
		if quit {
			return false, nil
		}
	}

	if s.game.State() == blackjack.StateDealerTurn {
		drawn, err := s.game.DealerPlay()
		if err != nil {
			return false, err
		}
		if len(drawn) > 0 {
			parts := make([]string, 0, len(drawn))
			for _, card := range drawn {
				parts = append(parts, renderCard(card))
			}
			fmt.Printf("Dealer draws %s\n", strings.Join(parts, " "))
		}
	}

	result, err := s.game.Showdown()
	if err != nil {
		return false, err
	}
	s.showResult(result)

	if err := s.stats.RecordRound(context.Background(), s.game.ID, result); err != nil {
		return false, err
	}
	s.logger.Debug("Round recorded", "round_id", result.RoundID, "dealer", result.DealerValue)

	return true, nil
}

// promptBet reads the round's bet; empty input repeats the last bet
func (s *session) promptBet() bool {
	money, _ := s.game.Money(s.playerID)
	for {
		if s.lastBet > 0 && s.lastBet <= money {
			fmt.Printf("Bet (money %d, enter for %d, q to quit): ", money, s.lastBet)
		} else {
			fmt.Printf("Bet (money %d, q to quit): ", money)
		}
		line, ok := s.readLine()
		if !ok || line == "q" || line == "quit" {
			return false
		}

		amount := s.lastBet
		if line != "" {
			parsed, err := strconv.ParseInt(line, 10, 64)
			if err != nil {
				fmt.Println("Enter a whole number.")
				continue
			}
			amount = parsed
		}

		if err := s.game.Bet(s.playerID, amount); err != nil {
			fmt.Println(gameErrorMessage(err))
			continue
		}
		s.lastBet = amount
		return true
	}
}

func (s *session) runInsurance() error {
	snap, err := s.game.Snapshot(s.playerID)
	if err != nil {
		return err
	}
	fmt.Print(renderTable(snap))

	for {
		fmt.Print("Dealer shows an ace. Take insurance? (y/n): ")
		line, ok := s.readLine()
		if !ok {
			break
		}
		if line == "y" || line == "yes" {
			stake, err := s.game.TakeInsurance(s.playerID)
			if err != nil {
				fmt.Println(gameErrorMessage(err))
				continue
			}
			fmt.Printf("Insurance placed for %d.\n", stake)
			break
		}
		if line == "n" || line == "no" {
			if err := s.game.DeclineInsurance(s.playerID); err != nil {
				fmt.Println(gameErrorMessage(err))
				continue
			}
			break
		}
	}

	dealerBlackjack, err := s.game.FinishInsurance()
	if err != nil {
		return err
	}
	if dealerBlackjack {
		fmt.Println(loseStyle.Render("Dealer has blackjack."))
	}
	return nil
}

// promptAction runs one player decision for the hand holding the turn
func (s *session) promptAction() (quit bool, err error) {
	snap, err := s.game.Snapshot(s.playerID)
	if err != nil {
		return false, err
	}
	fmt.Print(renderTable(snap))

	if snap.CurrentTurn == nil {
		return false, nil
	}
	handIndex := snap.CurrentTurn.HandIndex

	fmt.Print("Action (hit/stand/double/split/surrender, q to quit): ")
	line, ok := s.readLine()
	if !ok || line == "q" || line == "quit" {
		return true, nil
	}

	switch line {
	case "h", "hit":
		card, err := s.game.Hit(s.playerID, handIndex)
		if err != nil {
			fmt.Println(gameErrorMessage(err))
			return false, nil
		}
		fmt.Printf("You draw %s\n", renderCard(card))
	case "s", "stand":
		if err := s.game.Stand(s.playerID, handIndex); err != nil {
			fmt.Println(gameErrorMessage(err))
		}
	case "d", "double":
		card, err := s.game.DoubleDown(s.playerID, handIndex)
		if err != nil {
			fmt.Println(gameErrorMessage(err))
			return false, nil
		}
		fmt.Printf("Doubled. You draw %s\n", renderCard(card))
	case "p", "split":
		if err := s.game.Split(s.playerID, handIndex); err != nil {
			fmt.Println(gameErrorMessage(err))
		}
	case "r", "surrender":
		refund, err := s.game.Surrender(s.playerID, handIndex)
		if err != nil {
			fmt.Println(gameErrorMessage(err))
			return false, nil
		}
		fmt.Printf("Surrendered, %d returned.\n", refund)
	default:
		fmt.Println("Unknown action.")
	}
	return false, nil
}

func (s *session) showResult(result *blackjack.RoundResult) {
	snap, err := s.game.Snapshot(s.playerID)
	if err == nil {
		fmt.Print(renderTable(snap))
	}

	for _, pr := range result.Players {
		if pr.PlayerID != s.playerID {
			continue
		}
		for _, hr := range pr.Hands {
			fmt.Println(renderOutcome(hr))
		}
		if pr.InsuranceBet > 0 {
			if pr.InsurancePayout > 0 {
				fmt.Println(winStyle.Render(fmt.Sprintf("Insurance pays %d", pr.InsurancePayout)))
			} else {
				fmt.Println(loseStyle.Render("Insurance lost"))
			}
		}
	}
	fmt.Println()
}

func (s *session) printSummary() {
	stats, err := s.stats.PlayerStatistics(context.Background(), s.game.ID, s.playerID)
	if err != nil {
		s.logger.Error("Failed to compute session statistics", "error", err)
		return
	}
	if stats.RoundsPlayed == 0 {
		return
	}
	fmt.Println()
	fmt.Print(renderStatistics(stats))
}

func (s *session) readLine() (string, bool) {
	if !s.input.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(s.input.Text())), true
}

// gameErrorMessage favors the engine's message over the raw error string
func gameErrorMessage(err error) string {
	var gameErr *blackjack.GameError
	if errors.As(err, &gameErr) {
		return gameErr.Message + "."
	}
	return err.Error()
}
