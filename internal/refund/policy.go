// Package refund suggests refund dispositions for cancelled bookings.
package refund

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/booking"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// DefaultNoticeHours is the customer cancellation notice that earns a full refund.
const DefaultNoticeHours = 24.0

// Policy turns a cancellation reason and lead time into a RefundSuggestion.
// It never mutates the booking.
type Policy struct {
	noticeHours float64
}

func NewPolicy() *Policy {
	return &Policy{noticeHours: DefaultNoticeHours}
}

// NewPolicyWithNotice allows a facility-specific notice window.
func NewPolicyWithNotice(hours float64) *Policy {
	return &Policy{noticeHours: hours}
}

func (p *Policy) SuggestRefund(b *booking.Booking, reason booking.CancelReason, now time.Time) booking.RefundSuggestion {
	paid := decimal.Zero
	if b != nil {
		paid = b.PaymentAmount
	}

	switch reason {
	case booking.ReasonWeather:
		return full(paid, "Weather cancellation - full refund")
	case booking.ReasonFacility:
		return full(paid, "Facility cancellation - full refund")
	case booking.ReasonNoShow:
		return none("No-show - no refund")
	case booking.ReasonCustomer:
		if b == nil {
			return none("Customer cancellation - no refund")
		}
		lead := timegrid.HoursUntil(b.Date, b.TimeStart, now)
		if lead >= p.noticeHours {
			return full(paid, fmt.Sprintf("Customer cancellation with %.1f hours notice - full refund", lead))
		}
		return none(fmt.Sprintf("Customer cancellation under %.0f hours notice - no refund", p.noticeHours))
	default:
		return none(fmt.Sprintf("Unrecognized reason %q - no refund", reason))
	}
}

func full(amount decimal.Decimal, description string) booking.RefundSuggestion {
	return booking.RefundSuggestion{Amount: amount, Status: booking.RefundFull, Description: description}
}

func none(description string) booking.RefundSuggestion {
	return booking.RefundSuggestion{Amount: decimal.Zero, Status: booking.RefundNone, Description: description}
}
