package odds

import "github.com/shopspring/decimal"

// Outcome is the settled state of a wager.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
	OutcomePush Outcome = "push"
	OutcomeVoid Outcome = "void"
)

// Settlement is the realized result of one wager. PnL is profit on a win,
// the negated stake on a loss, and zero on a push or void.
type Settlement struct {
	Outcome Outcome         `json:"outcome"`
	PnL     decimal.Decimal `json:"pnl"`
}

// Void is the settlement for a wager whose inputs cannot be resolved.
func Void() Settlement {
	return Settlement{Outcome: OutcomeVoid, PnL: decimal.Zero}
}

// winProfit is the profit on a winning stake at an American price: stake
// multiplied by the payout-per-unit-risk implied by the price.
func winProfit(stake decimal.Decimal, price *float64) decimal.Decimal {
	dec := DecimalOdds(price)
	if dec == nil {
		return decimal.Zero
	}
	return stake.Mul(decimal.NewFromFloat(*dec - 1))
}

// MoneylineOutcome settles a moneyline wager on side. It is void exactly when
// the winner is unknown.
func MoneylineOutcome(side string, winner *string, price *float64, stake decimal.Decimal) Settlement {
	if winner == nil {
		return Void()
	}
	if *winner == side {
		return Settlement{Outcome: OutcomeWin, PnL: winProfit(stake, price)}
	}
	return Settlement{Outcome: OutcomeLoss, PnL: stake.Neg()}
}

// SpreadOutcome settles a point-spread wager. margin is the margin of victory
// signed for the wagered side and spread is that side's closing line; the
// cover margin is margin - spread. Missing inputs settle void.
func SpreadOutcome(margin, spread, price *float64, stake decimal.Decimal) Settlement {
	if margin == nil || spread == nil {
		return Void()
	}
	cover := decimal.NewFromFloat(*margin).Sub(decimal.NewFromFloat(*spread))
	return settleSigned(cover, price, stake)
}

// TotalOutcome settles an over/under wager. The differential is combined
// score minus the total line for "over" and the negation for "under".
func TotalOutcome(direction string, combined, total, price *float64, stake decimal.Decimal) Settlement {
	if combined == nil || total == nil {
		return Void()
	}
	diff := decimal.NewFromFloat(*combined).Sub(decimal.NewFromFloat(*total))
	if direction == "under" {
		diff = diff.Neg()
	}
	return settleSigned(diff, price, stake)
}

// settleSigned maps a signed cover margin or differential to a settlement:
// positive wins, zero pushes, negative loses.
func settleSigned(margin decimal.Decimal, price *float64, stake decimal.Decimal) Settlement {
	switch {
	case margin.IsPositive():
		return Settlement{Outcome: OutcomeWin, PnL: winProfit(stake, price)}
	case margin.IsZero():
		return Settlement{Outcome: OutcomePush, PnL: decimal.Zero}
	default:
		return Settlement{Outcome: OutcomeLoss, PnL: stake.Neg()}
	}
}
