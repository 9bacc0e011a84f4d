package blackjack

// DoubleRule restricts which hand totals may double down
type DoubleRule string

const (
	// DoubleAny allows doubling on any two-card hand
	DoubleAny DoubleRule = "ANY"
	// DoubleNineOrTen allows doubling only on 9 or 10
	DoubleNineOrTen DoubleRule = "NINE_OR_TEN"
	// DoubleNineToEleven allows doubling only on 9 through 11
	DoubleNineToEleven DoubleRule = "NINE_TO_ELEVEN"
	// DoubleNineToFifteen allows doubling only on 9 through 15
	DoubleNineToFifteen DoubleRule = "NINE_TO_FIFTEEN"
	// DoubleNone disables doubling down
	DoubleNone DoubleRule = "NONE"
)

// Rounding selects how fractional payouts are settled into whole units
type Rounding string

const (
	RoundDown    Rounding = "DOWN"
	RoundUp      Rounding = "UP"
	RoundNearest Rounding = "NEAREST"
)

// Options is the fixed rule configuration for a Game. It is immutable
// for the lifetime of a Game instance; changing rules requires
// constructing a new Game.
type Options struct {
	// Decks is the number of 52-card decks in the shoe
	Decks int

	// DealerHitsSoft17 makes the dealer draw on a soft 17 instead of standing
	DealerHitsSoft17 bool

	// BlackjackPayoutNum/Den express the blackjack bonus ratio (default 3:2)
	BlackjackPayoutNum int64
	BlackjackPayoutDen int64

	// Double restricts which totals may double down
	Double DoubleRule

	// MaxSplits caps how many times one player may split per round
	MaxSplits int

	// DoubleAfterSplit allows doubling on hands produced by a split
	DoubleAfterSplit bool

	// SplitAcesOnlyOnce forbids re-splitting a hand that came from split aces
	SplitAcesOnlyOnce bool

	// SplitAcesOneCard deals exactly one card to each split ace and stands it
	SplitAcesOneCard bool

	// Surrender allows forfeiting half the bet on the first decision
	Surrender bool

	// Insurance offers the side bet when the dealer shows an ace
	Insurance bool

	// InsurancePayoutNum/Den express the insurance win ratio (default 2:1)
	InsurancePayoutNum int64
	InsurancePayoutDen int64

	// BlackjackRounding settles fractional blackjack bonuses
	BlackjackRounding Rounding

	// SurrenderRounding settles fractional surrender refunds
	SurrenderRounding Rounding

	// Penetration is the fraction of the shoe dealt before a reshuffle
	// is recommended. 0 disables the check.
	Penetration float64
}

// DefaultOptions returns a standard six-deck table: blackjack pays 3:2,
// dealer stands on soft 17, double on any two cards including after
// split, up to three splits, split aces get one card each, surrender
// and insurance offered, reshuffle at 75% penetration.
func DefaultOptions() Options {
	return Options{
		Decks:              6,
		DealerHitsSoft17:   false,
		BlackjackPayoutNum: 3,
		BlackjackPayoutDen: 2,
		Double:             DoubleAny,
		MaxSplits:          3,
		DoubleAfterSplit:   true,
		SplitAcesOnlyOnce:  true,
		SplitAcesOneCard:   true,
		Surrender:          true,
		Insurance:          true,
		InsurancePayoutNum: 2,
		InsurancePayoutDen: 1,
		BlackjackRounding:  RoundDown,
		SurrenderRounding:  RoundNearest,
		Penetration:        0.75,
	}
}

// WithDecks sets the number of decks
func (o Options) WithDecks(decks int) Options {
	o.Decks = decks
	return o
}

// WithDealerHitsSoft17 sets whether the dealer draws on soft 17
func (o Options) WithDealerHitsSoft17(hits bool) Options {
	o.DealerHitsSoft17 = hits
	return o
}

// WithBlackjackPayout sets the blackjack bonus ratio
func (o Options) WithBlackjackPayout(num, den int64) Options {
	o.BlackjackPayoutNum = num
	o.BlackjackPayoutDen = den
	return o
}

// WithDouble sets the double-down rule
func (o Options) WithDouble(rule DoubleRule) Options {
	o.Double = rule
	return o
}

// WithMaxSplits sets the split cap
func (o Options) WithMaxSplits(n int) Options {
	o.MaxSplits = n
	return o
}

// WithDoubleAfterSplit sets whether split hands may double
func (o Options) WithDoubleAfterSplit(allowed bool) Options {
	o.DoubleAfterSplit = allowed
	return o
}

// WithSplitAcesOnlyOnce sets whether split aces may be re-split
func (o Options) WithSplitAcesOnlyOnce(onlyOnce bool) Options {
	o.SplitAcesOnlyOnce = onlyOnce
	return o
}

// WithSplitAcesOneCard sets whether split aces receive exactly one card
func (o Options) WithSplitAcesOneCard(oneCard bool) Options {
	o.SplitAcesOneCard = oneCard
	return o
}

// WithSurrender sets whether surrender is allowed
func (o Options) WithSurrender(allowed bool) Options {
	o.Surrender = allowed
	return o
}

// WithInsurance sets whether insurance is offered
func (o Options) WithInsurance(offered bool) Options {
	o.Insurance = offered
	return o
}

// WithInsurancePayout sets the insurance win ratio
func (o Options) WithInsurancePayout(num, den int64) Options {
	o.InsurancePayoutNum = num
	o.InsurancePayoutDen = den
	return o
}

// WithBlackjackRounding sets the rounding mode for blackjack bonuses
func (o Options) WithBlackjackRounding(mode Rounding) Options {
	o.BlackjackRounding = mode
	return o
}

// WithSurrenderRounding sets the rounding mode for surrender refunds
func (o Options) WithSurrenderRounding(mode Rounding) Options {
	o.SurrenderRounding = mode
	return o
}

// WithPenetration sets the reshuffle threshold
func (o Options) WithPenetration(penetration float64) Options {
	o.Penetration = penetration
	return o
}

// divRound divides n by d settling the remainder per the rounding mode.
// n and d must be non-negative and d non-zero.
func divRound(n, d int64, mode Rounding) int64 {
	q := n / d
	r := n % d
	if r == 0 {
		return q
	}
	switch mode {
	case RoundUp:
		return q + 1
	case RoundNearest:
		if 2*r >= d {
			return q + 1
		}
		return q
	default:
		return q
	}
}

// blackjackWinnings returns the bonus portion of a blackjack payout
func (o Options) blackjackWinnings(bet int64) int64 {
	return divRound(bet*o.BlackjackPayoutNum, o.BlackjackPayoutDen, o.BlackjackRounding)
}

// surrenderRefund returns the portion of the bet returned on surrender
func (o Options) surrenderRefund(bet int64) int64 {
	return divRound(bet, 2, o.SurrenderRounding)
}

// insuranceWinnings returns the win portion of an insurance payout,
// excluding the returned stake
func (o Options) insuranceWinnings(stake int64) int64 {
	return divRound(stake*o.InsurancePayoutNum, o.InsurancePayoutDen, RoundDown)
}

// canDoubleValue reports whether the double rule permits this total
func (o Options) canDoubleValue(value int) bool {
	switch o.Double {
	case DoubleAny:
		return true
	case DoubleNineOrTen:
		return value == 9 || value == 10
	case DoubleNineToEleven:
		return value >= 9 && value <= 11
	case DoubleNineToFifteen:
		return value >= 9 && value <= 15
	default:
		return false
	}
}
