package timegrid

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time is a wall-clock time of day with minute granularity.
// Values are always normalized so that 0 <= Minute < 60.
type Time struct {
	Hour   int
	Minute int
}

// NewTime accepts arbitrary minute values and carries the overflow into hours,
// so NewTime(9, 90) == 10:30. Hours are not wrapped at 24; 24:00 is a valid
// end-of-day bound.
func NewTime(hour, minute int) Time {
	return FromMinutes(hour*60 + minute)
}

// FromMinutes builds a Time from minutes since midnight. Negative input clamps to 00:00.
func FromMinutes(total int) Time {
	if total < 0 {
		total = 0
	}
	return Time{Hour: total / 60, Minute: total % 60}
}

// ClockOf returns the time-of-day of t, truncated to the minute.
func ClockOf(t time.Time) Time {
	return Time{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseTime accepts "H:MM", "HH:MM" and "HH:MM:SS" (seconds are dropped).
func ParseTime(s string) (Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return Time{}, fmt.Errorf("invalid time %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return Time{}, fmt.Errorf("invalid time %q: bad minute", s)
	}
	if h == 24 && m != 0 {
		return Time{}, fmt.Errorf("invalid time %q: past end of day", s)
	}
	return Time{Hour: h, Minute: m}, nil
}

// MustParseTime is ParseTime for constants and tests.
func MustParseTime(s string) Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TotalMinutes returns minutes since midnight.
func (t Time) TotalMinutes() int {
	return t.Hour*60 + t.Minute
}

func (t Time) Add(minutes int) Time {
	return FromMinutes(t.TotalMinutes() + minutes)
}

func (t Time) Before(other Time) bool { return t.TotalMinutes() < other.TotalMinutes() }
func (t Time) After(other Time) bool  { return t.TotalMinutes() > other.TotalMinutes() }

// HHMM renders the compact 4-digit form used in booking codes.
func (t Time) HHMM() string {
	return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(b []byte) error {
	parsed, err := ParseTime(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
