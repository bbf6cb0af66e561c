package booking

import (
	"fmt"

	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// Synthesize builds the 9-character DDCC-HHMM booking code from day of month,
// court number and start time. Month and year are not part of the code, so the
// same court and start time on the 16th of any month yields the same code.
func Synthesize(date timegrid.Date, courtID int, start timegrid.Time) string {
	return fmt.Sprintf("%02d%02d-%s", date.Day, courtID, start.HHMM())
}
