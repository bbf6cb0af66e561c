package timegrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotLattice(t *testing.T) {
	slots := SlotLattice(MustParseTime("06:00"), MustParseTime("08:00"), 30)
	require.Len(t, slots, 4)
	assert.Equal(t, "06:00", slots[0].String())
	assert.Equal(t, "07:30", slots[3].String())

	// Restartable: same inputs, same output.
	assert.Equal(t, slots, SlotLattice(MustParseTime("06:00"), MustParseTime("08:00"), 30))

	// Zero step falls back to 30 minutes
	assert.Len(t, SlotLattice(MustParseTime("06:00"), MustParseTime("07:00"), 0), 2)

	// Empty when end <= start
	assert.Empty(t, SlotLattice(MustParseTime("10:00"), MustParseTime("10:00"), 30))
}

func TestWeekOf(t *testing.T) {
	tests := []struct {
		name string
		date Date
	}{
		{"Monday", NewDate(2024, time.December, 16)},
		{"Wednesday", NewDate(2024, time.December, 18)},
		{"Sunday", NewDate(2024, time.December, 22)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := WeekOf(tt.date)
			assert.Equal(t, NewDate(2024, time.December, 16), week[0])
			assert.Equal(t, NewDate(2024, time.December, 22), week[6])
			assert.Equal(t, time.Monday, week[0].Weekday())
		})
	}

	// Crosses a year boundary
	week := WeekOf(NewDate(2025, time.January, 1))
	assert.Equal(t, NewDate(2024, time.December, 30), week[0])
	assert.Equal(t, NewDate(2025, time.January, 5), week[6])
}

func TestIsPrimeTime(t *testing.T) {
	tuesday := NewDate(2024, time.December, 17)
	saturday := NewDate(2024, time.December, 21)

	tests := []struct {
		name string
		date Date
		time string
		want bool
	}{
		{"Weekday morning", tuesday, "10:00", false},
		{"Weekday prime start inclusive", tuesday, "17:00", true},
		{"Weekday evening", tuesday, "18:00", true},
		{"Weekday last prime slot", tuesday, "20:30", true},
		{"Weekday prime end exclusive", tuesday, "21:00", false},
		{"Saturday morning", saturday, "06:00", true},
		{"Sunday late", saturday.AddDays(1), "21:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPrimeTime(tt.date, MustParseTime(tt.time)))
		})
	}
}

func TestIsPast(t *testing.T) {
	now := time.Date(2024, time.December, 16, 10, 15, 0, 0, time.Local)
	today := DateOf(now)

	assert.True(t, IsPast(today, MustParseTime("09:30"), now))
	assert.True(t, IsPast(today, MustParseTime("10:00"), now))
	assert.False(t, IsPast(today, MustParseTime("10:15"), now), "current minute is not past")
	assert.False(t, IsPast(today, MustParseTime("11:00"), now))

	// Only today is guarded
	assert.False(t, IsPast(today.AddDays(-1), MustParseTime("09:00"), now))
	assert.False(t, IsPast(today.AddDays(1), MustParseTime("09:00"), now))
}

func TestDurationHours(t *testing.T) {
	assert.Equal(t, 1.5, DurationHours(MustParseTime("09:00"), MustParseTime("10:30")))
	assert.Equal(t, -1.0, DurationHours(MustParseTime("10:00"), MustParseTime("09:00")))
}

func TestHoursUntil(t *testing.T) {
	now := time.Date(2024, time.December, 16, 9, 0, 0, 0, time.UTC)
	date := NewDate(2024, time.December, 17)

	assert.Equal(t, 24.0, HoursUntil(date, MustParseTime("09:00"), now))
	assert.Equal(t, 25.5, HoursUntil(date, MustParseTime("10:30"), now))
	assert.Equal(t, -1.0, HoursUntil(DateOf(now), MustParseTime("08:00"), now))
}

func TestInterval(t *testing.T) {
	_, err := NewInterval(MustParseTime("10:00"), MustParseTime("10:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewInterval(MustParseTime("10:00"), MustParseTime("09:30"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	a, err := NewInterval(MustParseTime("09:00"), MustParseTime("10:00"))
	require.NoError(t, err)
	b := Interval{Start: MustParseTime("10:00"), End: MustParseTime("11:00")}
	c := Interval{Start: MustParseTime("09:30"), End: MustParseTime("10:30")}

	assert.False(t, a.Overlaps(b), "back-to-back is not an overlap")
	assert.False(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))

	assert.True(t, a.Contains(MustParseTime("09:00")))
	assert.False(t, a.Contains(MustParseTime("10:00")))
}

func TestTimeParsingAndNormalization(t *testing.T) {
	assert.Equal(t, Time{Hour: 10, Minute: 30}, NewTime(9, 90))
	assert.Equal(t, 630, NewTime(9, 90).TotalMinutes())

	tm, err := ParseTime(" 9:00 ")
	require.NoError(t, err)
	assert.Equal(t, "0900", tm.HHMM())

	tm, err = ParseTime("18:30:00")
	require.NoError(t, err)
	assert.Equal(t, "18:30", tm.String())

	_, err = ParseTime("25:00")
	assert.Error(t, err)
	_, err = ParseTime("nine")
	assert.Error(t, err)
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.December, 31)
	b := NewDate(2025, time.January, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, b, a.AddDays(1))

	d, err := ParseDate("2024-12-16")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())
	assert.Equal(t, "2024-12-16", d.String())
}
