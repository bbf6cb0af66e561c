// Package pricing quotes court bookings from a facility rate card.
package pricing

import (
	"github.com/shopspring/decimal"
)

// Tier thresholds.
const (
	group50Hours = 50.0
	group10Hours = 10.0
	team5Courts  = 5
	team3Courts  = 3
	blockHours   = 1.5
)

// Rates is the facility rate card, in USD.
type Rates struct {
	Prime       decimal.Decimal // per block, or per hour for contractors
	NonPrime    decimal.Decimal
	Group50     decimal.Decimal // per hour, contractors at 50+ hours
	Group10     decimal.Decimal // per hour, contractors at 10+ hours
	Team5       decimal.Decimal // flat, 5+ courts
	Team3       decimal.Decimal // flat, 3-4 courts
	BallMachine decimal.Decimal // per hour; reference only, not quoted
}

// DefaultRates returns the standard rate card.
func DefaultRates() Rates {
	return Rates{
		Prime:       decimal.RequireFromString("12.00"),
		NonPrime:    decimal.RequireFromString("10.00"),
		Group50:     decimal.RequireFromString("4.00"),
		Group10:     decimal.RequireFromString("4.50"),
		Team5:       decimal.RequireFromString("50.00"),
		Team3:       decimal.RequireFromString("30.00"),
		BallMachine: decimal.RequireFromString("10.00"),
	}
}
