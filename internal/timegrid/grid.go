// Package timegrid holds the half-hour slot lattice and the wall-clock
// arithmetic shared by availability, pricing and refund decisions.
// All values are naive local times; no timezone conversion happens here.
package timegrid

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-scheduler/internal/pkg/apperror"
)

// DefaultStepMinutes is the width of one lattice slot.
const DefaultStepMinutes = 30

var ErrInvalidInterval = apperror.New(http.StatusBadRequest, "end time must be after start time")

var (
	primeStart = Time{Hour: 17}
	primeEnd   = Time{Hour: 21}
)

// Interval is a half-open [Start, End) range of wall-clock time.
type Interval struct {
	Start Time
	End   Time
}

// NewInterval rejects ranges where end <= start.
func NewInterval(start, end Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

func (iv Interval) Validate() error {
	if iv.End.TotalMinutes() <= iv.Start.TotalMinutes() {
		return ErrInvalidInterval
	}
	return nil
}

// Overlaps reports whether the two half-open ranges share any minute.
// Back-to-back ranges (one ends exactly when the other starts) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return !(iv.End.TotalMinutes() <= other.Start.TotalMinutes() ||
		iv.Start.TotalMinutes() >= other.End.TotalMinutes())
}

// Contains reports whether t falls inside [Start, End).
func (iv Interval) Contains(t Time) bool {
	m := t.TotalMinutes()
	return m >= iv.Start.TotalMinutes() && m < iv.End.TotalMinutes()
}

func (iv Interval) Hours() float64 {
	return DurationHours(iv.Start, iv.End)
}

// SlotLattice lists slot boundaries from start (inclusive) up to end (exclusive).
// A non-positive step falls back to DefaultStepMinutes.
func SlotLattice(start, end Time, stepMinutes int) []Time {
	if stepMinutes <= 0 {
		stepMinutes = DefaultStepMinutes
	}
	var slots []Time
	for m := start.TotalMinutes(); m < end.TotalMinutes(); m += stepMinutes {
		slots = append(slots, FromMinutes(m))
	}
	return slots
}

// WeekOf returns the Monday-to-Sunday week containing date.
func WeekOf(date Date) [7]Date {
	offset := (int(date.Weekday()) + 6) % 7
	monday := date.AddDays(-offset)

	var week [7]Date
	for i := range week {
		week[i] = monday.AddDays(i)
	}
	return week
}

// IsPrimeTime is true all weekend, and on weekdays for 17:00 <= t < 21:00.
func IsPrimeTime(date Date, t Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return Interval{Start: primeStart, End: primeEnd}.Contains(t)
}

// IsPast only flags elapsed slots on now's own calendar day. Earlier dates are
// deliberately not reported as past: the check guards same-day booking only.
func IsPast(date Date, t Time, now time.Time) bool {
	if date != DateOf(now) {
		return false
	}
	return t.Before(ClockOf(now))
}

// DurationHours is (end - start) in hours. It is negative when end < start;
// callers validate ordering first.
func DurationHours(start, end Time) float64 {
	return float64(end.TotalMinutes()-start.TotalMinutes()) / 60
}

// HoursUntil returns signed hours from now to date@t, reading date and t as
// wall-clock values in now's location.
func HoursUntil(date Date, t Time, now time.Time) float64 {
	target := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, now.Location()).
		Add(time.Duration(t.TotalMinutes()) * time.Minute)
	return target.Sub(now).Hours()
}
