package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// RateQuote is the pricing outcome for one booking request. Total and
// Description are copied onto the booking at creation.
type RateQuote struct {
	RatePerBlock decimal.Decimal
	Total        decimal.Decimal
	Description  string
	IsPrimeTime  bool

	// Duration and the extra-hours figures are informational; Total does not
	// include ExtraAmount for flat block pricing.
	DurationHours float64
	ExtraHours    float64
	ExtraAmount   decimal.Decimal
	BlendedTotal  decimal.Decimal
}

// PriceContext carries optional pricing inputs beyond type and time.
type PriceContext struct {
	CourtCount *int
	TotalHours *float64
	IsYouth    bool
}

type PriceRequest struct {
	Type     Type
	Date     timegrid.Date
	Interval timegrid.Interval
	Context  PriceContext
}

// Pricer quotes a booking request.
type Pricer interface {
	Quote(req PriceRequest) (RateQuote, error)
}

type CancelReason string

const (
	ReasonWeather  CancelReason = "weather"
	ReasonNoShow   CancelReason = "no_show"
	ReasonCustomer CancelReason = "customer"
	ReasonFacility CancelReason = "facility"
)

type RefundStatus string

const (
	RefundNone    RefundStatus = "none"
	RefundPartial RefundStatus = "partial"
	RefundFull    RefundStatus = "full"
	RefundCredit  RefundStatus = "credit"
)

func (r RefundStatus) Valid() bool {
	switch r {
	case RefundNone, RefundPartial, RefundFull, RefundCredit:
		return true
	}
	return false
}

// RefundSuggestion is advisory: staff may override any field before confirming.
type RefundSuggestion struct {
	Amount      decimal.Decimal
	Status      RefundStatus
	Description string
}

// RefundAdvisor suggests a refund disposition for a cancellation.
type RefundAdvisor interface {
	SuggestRefund(b *Booking, reason CancelReason, now time.Time) RefundSuggestion
}
