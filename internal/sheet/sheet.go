// Package sheet reads the front desk spreadsheet export into bookings.
//
// The export is CSV with a header row. Column order is free; names are
// matched case-insensitively after trimming. Required columns are date,
// court, start, end and type.
package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/booking"
	"github.com/nekogravitycat/court-scheduler/internal/court"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

var required = []string{"date", "court", "start", "end", "type"}

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("sheet: no header row")

// RowError reports a malformed cell. Line is the 1-based line in the file,
// counting the header.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("sheet: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("sheet: line %d, column %q: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Parse reads every data row, tagged with its line in the file. Blank lines
// are skipped. The first malformed row aborts the parse.
func Parse(r io.Reader) ([]booking.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("sheet: read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, &RowError{Line: 1, Column: name, Err: errors.New("missing column")}
		}
	}

	var out []booking.ImportRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, &RowError{Line: parseErr.Line, Err: parseErr.Err}
			}
			return nil, fmt.Errorf("sheet: read row: %w", err)
		}
		// The reader drops empty lines, so count from its own position.
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}

		b, err := parseRow(rowReader{rec: rec, cols: cols, line: line})
		if err != nil {
			return nil, err
		}
		out = append(out, booking.ImportRow{Line: line, Booking: b})
	}
	return out, nil
}

type rowReader struct {
	rec  []string
	cols map[string]int
	line int
}

func (r rowReader) get(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r rowReader) fail(column string, err error) error {
	return &RowError{Line: r.line, Column: column, Err: err}
}

func parseRow(r rowReader) (*booking.Booking, error) {
	date, err := timegrid.ParseDate(r.get("date"))
	if err != nil {
		return nil, r.fail("date", err)
	}
	courtID, err := court.ParseID(r.get("court"))
	if err != nil {
		return nil, r.fail("court", err)
	}
	start, err := timegrid.ParseTime(r.get("start"))
	if err != nil {
		return nil, r.fail("start", err)
	}
	end, err := timegrid.ParseTime(r.get("end"))
	if err != nil {
		return nil, r.fail("end", err)
	}
	t := booking.Type(strings.ToLower(r.get("type")))
	if !t.Valid() {
		return nil, r.fail("type", fmt.Errorf("unknown booking type %q", r.get("type")))
	}

	b := &booking.Booking{
		Date:      date,
		CourtID:   courtID,
		TimeStart: start,
		TimeEnd:   end,
		Type:      t,
		Customer:  r.get("customer"),
		Notes:     r.get("notes"),
		IsYouth:   Truthy(r.get("youth")),
		Status:    booking.StatusActive,
	}

	if v := r.get("entity"); v != "" {
		b.EntityID = &v
	}
	if v := r.get("amount"); v != "" {
		amount, err := decimal.NewFromString(strings.TrimPrefix(v, "$"))
		if err != nil {
			return nil, r.fail("amount", err)
		}
		b.PaymentAmount = amount.Round(2)
		b.PaymentDescription = r.get("description")
		if b.PaymentDescription == "" {
			b.PaymentDescription = "Imported amount"
		}
	}
	if Truthy(r.get("paid")) {
		b.PaymentStatus = booking.PaymentPaid
	}
	return b, nil
}

// Truthy normalizes the spreadsheet's boolean spellings.
func Truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "x":
		return true
	}
	return false
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
