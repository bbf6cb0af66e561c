package booking

import (
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// IsAvailable reports whether [iv.Start, iv.End) on the given court and date
// is free in the snapshot. Cancelled bookings and the booking whose code is
// excludeID never block. The interval must already be validated.
func IsAvailable(bookings []*Booking, date timegrid.Date, courtID int, iv timegrid.Interval, excludeID string) bool {
	for _, b := range bookings {
		if !blocks(b, date, courtID) {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.Interval().Overlaps(iv) {
			return false
		}
	}
	return true
}

// BookingAt returns the non-cancelled booking covering t on the given court
// and date, or nil when the slot is free.
func BookingAt(bookings []*Booking, date timegrid.Date, courtID int, t timegrid.Time) *Booking {
	for _, b := range bookings {
		if blocks(b, date, courtID) && b.Interval().Contains(t) {
			return b
		}
	}
	return nil
}

func blocks(b *Booking, date timegrid.Date, courtID int) bool {
	return b != nil &&
		b.Status != StatusCancelled &&
		b.Date == date &&
		b.CourtID == courtID
}
