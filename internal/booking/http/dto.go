package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/booking"
	courtHttp "github.com/nekogravitycat/court-scheduler/internal/court/http"
	"github.com/nekogravitycat/court-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Date     string `form:"date"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Week     string `form:"week"`
	CourtID  int    `form:"court_id" binding:"omitempty,min=1,max=17"`
	Status   string `form:"status" binding:"omitempty,oneof=active cancelled no_show completed"`
	Type     string `form:"type"`
	EntityID string `form:"entity_id" binding:"omitempty,uuid"`
	Keyword  string `form:"q" binding:"omitempty,max=64"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=date court start created_at"`
}

// Filter converts the query into a booking.Filter, parsing the date fields.
func (r *ListBookingsRequest) Filter() (booking.Filter, error) {
	f := booking.Filter{
		CourtID:   r.CourtID,
		Status:    r.Status,
		Type:      r.Type,
		EntityID:  r.EntityID,
		Keyword:   r.Keyword,
		Page:      r.Page,
		PageSize:  r.PageSize,
		SortBy:    r.SortBy,
		SortOrder: r.SortOrder,
	}
	var err error
	if f.Date, err = optionalDate(r.Date); err != nil {
		return f, err
	}
	if f.DateFrom, err = optionalDate(r.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = optionalDate(r.DateTo); err != nil {
		return f, err
	}
	if f.Week, err = optionalDate(r.Week); err != nil {
		return f, err
	}
	return f, nil
}

func optionalDate(s string) (*timegrid.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := timegrid.ParseDate(s)
	if err != nil {
		return nil, booking.ErrInvalidInput
	}
	return &d, nil
}

type CreateBookingRequest struct {
	Date       timegrid.Date `json:"date"`
	CourtID    int           `json:"court_id" binding:"required,min=1,max=17"`
	TimeStart  timegrid.Time `json:"time_start"`
	TimeEnd    timegrid.Time `json:"time_end"`
	Type       string        `json:"type" binding:"required"`
	EntityID   *string       `json:"entity_id" binding:"omitempty,uuid"`
	Customer   string        `json:"customer" binding:"omitempty,max=128"`
	Notes      string        `json:"notes" binding:"omitempty,max=1000"`
	IsYouth    bool          `json:"is_youth"`
	CourtCount *int          `json:"court_count"`
	TotalHours *float64      `json:"total_hours"`
}

type UpdateBookingRequest struct {
	Date               *timegrid.Date   `json:"date"`
	CourtID            *int             `json:"court_id" binding:"omitempty,min=1,max=17"`
	TimeStart          *timegrid.Time   `json:"time_start"`
	TimeEnd            *timegrid.Time   `json:"time_end"`
	Type               *string          `json:"type"`
	EntityID           *string          `json:"entity_id"`
	Customer           *string          `json:"customer" binding:"omitempty,max=128"`
	Notes              *string          `json:"notes" binding:"omitempty,max=1000"`
	IsYouth            *bool            `json:"is_youth"`
	CourtCount         *int             `json:"court_count"`
	TotalHours         *float64         `json:"total_hours"`
	PaymentAmount      *decimal.Decimal `json:"payment_amount"`
	PaymentStatus      *string          `json:"payment_status" binding:"omitempty,oneof=pending paid waived"`
	PaymentDescription *string          `json:"payment_description" binding:"omitempty,max=256"`
}

type CancelBookingRequest struct {
	Reason       string           `json:"reason" binding:"required,oneof=weather no_show customer facility"`
	RefundStatus *string          `json:"refund_status" binding:"omitempty,oneof=none partial full credit"`
	RefundAmount *decimal.Decimal `json:"refund_amount"`
	RefundNote   *string          `json:"refund_note" binding:"omitempty,max=512"`
}

type QuoteBookingRequest struct {
	Date       timegrid.Date `json:"date"`
	TimeStart  timegrid.Time `json:"time_start"`
	TimeEnd    timegrid.Time `json:"time_end"`
	Type       string        `json:"type" binding:"required"`
	EntityID   *string       `json:"entity_id" binding:"omitempty,uuid"`
	IsYouth    bool          `json:"is_youth"`
	CourtCount *int          `json:"court_count"`
	TotalHours *float64      `json:"total_hours"`
}

type CancellationResponse struct {
	At           time.Time `json:"at"`
	By           string    `json:"by"`
	Reason       string    `json:"reason"`
	RefundStatus string    `json:"refund_status"`
	RefundAmount string    `json:"refund_amount"`
	RefundNote   string    `json:"refund_note,omitempty"`
}

type CheckInResponse struct {
	At time.Time `json:"at"`
	By string    `json:"by"`
}

type BookingResponse struct {
	UID                string                `json:"uid"`
	ID                 string                `json:"id"`
	Date               timegrid.Date         `json:"date"`
	CourtID            int                   `json:"court_id"`
	TimeStart          timegrid.Time         `json:"time_start"`
	TimeEnd            timegrid.Time         `json:"time_end"`
	Type               string                `json:"type"`
	EntityID           *string               `json:"entity_id,omitempty"`
	Customer           string                `json:"customer,omitempty"`
	Notes              string                `json:"notes,omitempty"`
	IsYouth            bool                  `json:"is_youth"`
	CourtCount         *int                  `json:"court_count,omitempty"`
	Status             string                `json:"status"`
	PaymentAmount      string                `json:"payment_amount"`
	PaymentStatus      string                `json:"payment_status"`
	PaymentDescription string                `json:"payment_description"`
	CheckedIn          bool                  `json:"checked_in"`
	CheckIn            *CheckInResponse      `json:"check_in,omitempty"`
	Cancellation       *CancellationResponse `json:"cancellation,omitempty"`
	CreatedBy          string                `json:"created_by"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		UID:                b.UID,
		ID:                 b.ID,
		Date:               b.Date,
		CourtID:            b.CourtID,
		TimeStart:          b.TimeStart,
		TimeEnd:            b.TimeEnd,
		Type:               string(b.Type),
		EntityID:           b.EntityID,
		Customer:           b.Customer,
		Notes:              b.Notes,
		IsYouth:            b.IsYouth,
		CourtCount:         b.CourtCount,
		Status:             string(b.Status),
		PaymentAmount:      b.PaymentAmount.StringFixed(2),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentDescription: b.PaymentDescription,
		CheckedIn:          b.CheckedIn(),
		CreatedBy:          b.CreatedBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if ci := b.CheckIn; ci != nil {
		resp.CheckIn = &CheckInResponse{At: ci.At, By: ci.By}
	}
	if c := b.Cancellation; c != nil {
		resp.Cancellation = &CancellationResponse{
			At:           c.At,
			By:           c.By,
			Reason:       string(c.Reason),
			RefundStatus: string(c.RefundStatus),
			RefundAmount: c.RefundAmount.StringFixed(2),
			RefundNote:   c.RefundNote,
		}
	}
	return resp
}

type QuoteResponse struct {
	RatePerBlock  string  `json:"rate_per_block"`
	Total         string  `json:"total"`
	Description   string  `json:"description"`
	IsPrimeTime   bool    `json:"is_prime_time"`
	DurationHours float64 `json:"duration_hours"`
	ExtraHours    float64 `json:"extra_hours"`
	ExtraAmount   string  `json:"extra_amount"`
	BlendedTotal  string  `json:"blended_total"`
}

func NewQuoteResponse(q booking.RateQuote) QuoteResponse {
	return QuoteResponse{
		RatePerBlock:  q.RatePerBlock.StringFixed(2),
		Total:         q.Total.StringFixed(2),
		Description:   q.Description,
		IsPrimeTime:   q.IsPrimeTime,
		DurationHours: q.DurationHours,
		ExtraHours:    q.ExtraHours,
		ExtraAmount:   q.ExtraAmount.StringFixed(2),
		BlendedTotal:  q.BlendedTotal.StringFixed(2),
	}
}

type RefundSuggestionResponse struct {
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// SlotResponse is one cell of the day grid. Booking is a compact tag.
type SlotResponse struct {
	Time        timegrid.Time `json:"time"`
	IsPrimeTime bool          `json:"is_prime_time"`
	IsPast      bool          `json:"is_past"`
	Booking     *BookingTag   `json:"booking,omitempty"`
}

type BookingTag struct {
	UID      string `json:"uid"`
	ID       string `json:"id"`
	Type     string `json:"type"`
	Customer string `json:"customer,omitempty"`
	Status   string `json:"status"`
}

type CourtScheduleResponse struct {
	Court courtHttp.CourtTag `json:"court"`
	Slots []SlotResponse     `json:"slots"`
}

type DayScheduleResponse struct {
	Date   timegrid.Date           `json:"date"`
	Courts []CourtScheduleResponse `json:"courts"`
}

func NewDayScheduleResponse(s *booking.DaySchedule) DayScheduleResponse {
	resp := DayScheduleResponse{Date: s.Date, Courts: make([]CourtScheduleResponse, len(s.Courts))}
	for i, cs := range s.Courts {
		slots := make([]SlotResponse, len(cs.Slots))
		for j, slot := range cs.Slots {
			slots[j] = SlotResponse{Time: slot.Time, IsPrimeTime: slot.IsPrimeTime, IsPast: slot.IsPast}
			if b := slot.Booking; b != nil {
				slots[j].Booking = &BookingTag{
					UID:      b.UID,
					ID:       b.ID,
					Type:     string(b.Type),
					Customer: b.Customer,
					Status:   string(b.Status),
				}
			}
		}
		resp.Courts[i] = CourtScheduleResponse{Court: courtHttp.CourtTag{ID: cs.Court.ID, Name: cs.Court.Name}, Slots: slots}
	}
	return resp
}

// ImportSkipResponse points at the skipped row by its line in the uploaded file.
type ImportSkipResponse struct {
	Line   int    `json:"line"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

type ImportResponse struct {
	Imported []BookingResponse    `json:"imported"`
	Skipped  []ImportSkipResponse `json:"skipped"`
}
