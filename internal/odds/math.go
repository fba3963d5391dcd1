// Package odds implements expected-value and settlement arithmetic over
// American-odds prices. Every function is total: unresolvable inputs yield a
// nil result or a void settlement, never a panic.
package odds

import "math"

// ImpliedProbability converts an American price to its implied probability.
// Positive p implies 100/(p+100); negative p implies |p|/(|p|+100). A nil or
// zero price has no defined probability.
func ImpliedProbability(price *float64) *float64 {
	if price == nil || *price == 0 {
		return nil
	}
	p := *price
	var prob float64
	if p > 0 {
		prob = 100 / (p + 100)
	} else {
		prob = math.Abs(p) / (math.Abs(p) + 100)
	}
	return &prob
}

// DecimalOdds converts an American price to decimal odds.
func DecimalOdds(price *float64) *float64 {
	if price == nil || *price == 0 {
		return nil
	}
	p := *price
	var dec float64
	if p > 0 {
		dec = p/100 + 1
	} else {
		dec = 100/math.Abs(p) + 1
	}
	return &dec
}

// payoutAndRisk returns the profit per unit risked and the units risked per
// unit won for an American price.
func payoutAndRisk(price float64) (payout, risk float64) {
	if price > 0 {
		return price / 100, 1
	}
	return 1, math.Abs(price) / 100
}

// EVFromPrice computes expected value per unit stake for a true probability
// against an American price. EV = prob*payout - (1-prob)*risk. Returns nil
// when either input is absent or the price is zero.
func EVFromPrice(prob, price *float64) *float64 {
	if prob == nil || price == nil || *price == 0 {
		return nil
	}
	payout, risk := payoutAndRisk(*price)
	ev := *prob*payout - (1-*prob)*risk
	return &ev
}

// EVFromDecimalOdds computes expected value per unit stake against decimal
// odds: EV = prob*(dec-1) - (1-prob).
func EVFromDecimalOdds(prob, dec *float64) *float64 {
	if prob == nil || dec == nil {
		return nil
	}
	ev := *prob*(*dec-1) - (1 - *prob)
	return &ev
}
