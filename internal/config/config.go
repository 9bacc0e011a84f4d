package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/fadedpez/sentenza/pkg/blackjack"
)

// Config holds all configuration for the application
type Config struct {
	// Table rules
	Decks              int
	DealerHitsSoft17   bool
	BlackjackPayoutNum int64
	BlackjackPayoutDen int64
	Double             string
	MaxSplits          int
	DoubleAfterSplit   bool
	SplitAcesOnlyOnce  bool
	SplitAcesOneCard   bool
	Surrender          bool
	Insurance          bool
	Penetration        float64

	// Session defaults
	Bankroll int64
	Seed     int64

	// Environment
	Environment string // "development" or "production"
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	defaults := blackjack.DefaultOptions()

	cfg := &Config{
		Decks:              getEnvInt("BLACKJACK_DECKS", defaults.Decks),
		DealerHitsSoft17:   getEnvBool("BLACKJACK_DEALER_HITS_SOFT_17", defaults.DealerHitsSoft17),
		BlackjackPayoutNum: getEnvInt64("BLACKJACK_PAYOUT_NUM", defaults.BlackjackPayoutNum),
		BlackjackPayoutDen: getEnvInt64("BLACKJACK_PAYOUT_DEN", defaults.BlackjackPayoutDen),
		Double:             getEnvWithDefault("BLACKJACK_DOUBLE_RULE", string(defaults.Double)),
		MaxSplits:          getEnvInt("BLACKJACK_MAX_SPLITS", defaults.MaxSplits),
		DoubleAfterSplit:   getEnvBool("BLACKJACK_DOUBLE_AFTER_SPLIT", defaults.DoubleAfterSplit),
		SplitAcesOnlyOnce:  getEnvBool("BLACKJACK_SPLIT_ACES_ONLY_ONCE", defaults.SplitAcesOnlyOnce),
		SplitAcesOneCard:   getEnvBool("BLACKJACK_SPLIT_ACES_ONE_CARD", defaults.SplitAcesOneCard),
		Surrender:          getEnvBool("BLACKJACK_SURRENDER", defaults.Surrender),
		Insurance:          getEnvBool("BLACKJACK_INSURANCE", defaults.Insurance),
		Penetration:        getEnvFloat("BLACKJACK_PENETRATION", defaults.Penetration),
		Bankroll:           getEnvInt64("BLACKJACK_BANKROLL", 1000),
		Seed:               getEnvInt64("BLACKJACK_SEED", 0),
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that the configured rules are playable
func (c *Config) validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("BLACKJACK_DECKS must be at least 1, got %d", c.Decks)
	}
	if c.BlackjackPayoutDen < 1 {
		return fmt.Errorf("BLACKJACK_PAYOUT_DEN must be at least 1, got %d", c.BlackjackPayoutDen)
	}
	if c.MaxSplits < 0 {
		return fmt.Errorf("BLACKJACK_MAX_SPLITS must not be negative, got %d", c.MaxSplits)
	}
	if c.Penetration < 0 || c.Penetration >= 1 {
		return fmt.Errorf("BLACKJACK_PENETRATION must be in [0, 1), got %v", c.Penetration)
	}
	if c.Bankroll < 1 {
		return fmt.Errorf("BLACKJACK_BANKROLL must be positive, got %d", c.Bankroll)
	}
	switch blackjack.DoubleRule(c.Double) {
	case blackjack.DoubleAny, blackjack.DoubleNineOrTen, blackjack.DoubleNineToEleven,
		blackjack.DoubleNineToFifteen, blackjack.DoubleNone:
	default:
		return fmt.Errorf("BLACKJACK_DOUBLE_RULE %q is not a known rule", c.Double)
	}
	return nil
}

// Options maps the configuration onto a rule set for a new game
func (c *Config) Options() blackjack.Options {
	return blackjack.DefaultOptions().
		WithDecks(c.Decks).
		WithDealerHitsSoft17(c.DealerHitsSoft17).
		WithBlackjackPayout(c.BlackjackPayoutNum, c.BlackjackPayoutDen).
		WithDouble(blackjack.DoubleRule(c.Double)).
		WithMaxSplits(c.MaxSplits).
		WithDoubleAfterSplit(c.DoubleAfterSplit).
		WithSplitAcesOnlyOnce(c.SplitAcesOnlyOnce).
		WithSplitAcesOneCard(c.SplitAcesOneCard).
		WithSurrender(c.Surrender).
		WithInsurance(c.Insurance).
		WithPenetration(c.Penetration)
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
