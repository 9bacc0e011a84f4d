package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fadedpez/sentenza/pkg/blackjack"
	"github.com/fadedpez/sentenza/pkg/cards"
	"github.com/fadedpez/sentenza/pkg/services/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#1A7A2E")).
			Padding(0, 1).
			Bold(true)

	dealerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E06C75")).
			Bold(true)

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#61AFEF")).
			Bold(true)

	redSuitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	blackSuitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))
	hiddenStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))

	winStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")).Bold(true)
	loseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true)
	pushStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")).Bold(true)

	moneyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
)

var suitGlyphs = map[cards.Suit]string{
	cards.Hearts:   "♥",
	cards.Diamonds: "♦",
	cards.Clubs:    "♣",
	cards.Spades:   "♠",
}

// renderCard draws one card as a compact glyph, red suits in red
func renderCard(card cards.Card) string {
	glyph := suitGlyphs[card.Suit] + card.Rank.String()
	if card.Suit == cards.Hearts || card.Suit == cards.Diamonds {
		return redSuitStyle.Render(glyph)
	}
	return blackSuitStyle.Render(glyph)
}

// renderTable draws the full table from the player's snapshot
func renderTable(snap *blackjack.Snapshot) string {
	var b strings.Builder

	b.WriteString(dealerStyle.Render("Dealer"))
	b.WriteString("  ")
	for i, card := range snap.Dealer.Cards {
		if i > 0 {
			b.WriteString(" ")
		}
		if card == nil {
			b.WriteString(hiddenStyle.Render("[??]"))
			continue
		}
		b.WriteString(renderCard(*card))
	}
	if len(snap.Dealer.Cards) > 0 {
		if snap.Dealer.HoleRevealed {
			b.WriteString(fmt.Sprintf("  (%d)", snap.Dealer.Value))
		} else {
			b.WriteString(fmt.Sprintf("  (showing %d)", snap.Dealer.VisibleValue))
		}
	}
	b.WriteString("\n")

	for _, hand := range snap.Hands {
		label := "You"
		if len(snap.Hands) > 1 {
			label = fmt.Sprintf("Hand %d", hand.Index+1)
		}
		b.WriteString(playerStyle.Render(label))
		b.WriteString("  ")
		for i, card := range hand.Cards {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(renderCard(card))
		}
		value := fmt.Sprintf("  (%d", hand.Value)
		if hand.IsSoft {
			value += " soft"
		}
		value += ")"
		b.WriteString(value)
		if hand.Status != blackjack.StatusActive {
			b.WriteString("  " + strings.ToLower(string(hand.Status)))
		}
		if snap.CurrentTurn != nil && snap.CurrentTurn.HandIndex == hand.Index {
			b.WriteString("  ←")
		}
		b.WriteString("\n")
	}

	b.WriteString(moneyStyle.Render(fmt.Sprintf("Money %d", snap.Money)))
	if snap.Bet > 0 {
		b.WriteString(fmt.Sprintf("  bet %d", snap.Bet))
	}
	if snap.InsuranceBet != nil {
		b.WriteString(fmt.Sprintf("  insurance %d", *snap.InsuranceBet))
	}
	b.WriteString(fmt.Sprintf("  shoe %d", snap.CardsRemaining))
	b.WriteString("\n")

	return b.String()
}

// renderOutcome colors a settled hand's result line
func renderOutcome(hr blackjack.HandResult) string {
	line := fmt.Sprintf("%s  you %d vs dealer %d, bet %d", hr.Outcome, hr.PlayerValue, hr.DealerValue, hr.Bet)
	switch hr.Outcome {
	case blackjack.OutcomeWin, blackjack.OutcomeBlackjack:
		return winStyle.Render(line + fmt.Sprintf(", paid %d", hr.Payout))
	case blackjack.OutcomePush:
		return pushStyle.Render(line + ", stake returned")
	default:
		return loseStyle.Render(line)
	}
}

// renderStatistics prints the session summary for one player
func renderStatistics(stats *statistics.PlayerStatistics) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" Session summary "))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Rounds %d, hands %d\n", stats.RoundsPlayed, stats.HandsPlayed))
	b.WriteString(fmt.Sprintf("Wins %d (blackjacks %d), losses %d (busts %d), pushes %d, surrenders %d\n",
		stats.Wins+stats.Blackjacks, stats.Blackjacks, stats.Losses, stats.Busts, stats.Pushes, stats.Surrenders))
	if stats.InsuranceBets > 0 {
		b.WriteString(fmt.Sprintf("Insurance taken %d, won %d\n", stats.InsuranceBets, stats.InsuranceWins))
	}
	b.WriteString(fmt.Sprintf("Total bet %d, net ", stats.TotalBet))
	switch {
	case stats.Net > 0:
		b.WriteString(winStyle.Render(fmt.Sprintf("+%d", stats.Net)))
	case stats.Net < 0:
		b.WriteString(loseStyle.Render(fmt.Sprintf("%d", stats.Net)))
	default:
		b.WriteString(pushStyle.Render("0"))
	}
	b.WriteString("\n")

	return b.String()
}
