package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-scheduler/internal/auth"
	"github.com/nekogravitycat/court-scheduler/internal/booking"
	"github.com/nekogravitycat/court-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/court-scheduler/internal/pkg/response"
	"github.com/nekogravitycat/court-scheduler/internal/sheet"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

// maxImportBytes caps the CSV upload size.
const maxImportBytes = 2 << 20

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter, err := req.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if body.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		Date:       body.Date,
		CourtID:    body.CourtID,
		Start:      body.TimeStart,
		End:        body.TimeEnd,
		Type:       body.Type,
		EntityID:   body.EntityID,
		Customer:   body.Customer,
		Notes:      body.Notes,
		IsYouth:    body.IsYouth,
		CourtCount: body.CourtCount,
		TotalHours: body.TotalHours,
	}, auth.GetStaffID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Update(c.Request.Context(), uri.ID, booking.UpdateRequest{
		Date:               body.Date,
		CourtID:            body.CourtID,
		Start:              body.TimeStart,
		End:                body.TimeEnd,
		Type:               body.Type,
		EntityID:           body.EntityID,
		Customer:           body.Customer,
		Notes:              body.Notes,
		IsYouth:            body.IsYouth,
		CourtCount:         body.CourtCount,
		TotalHours:         body.TotalHours,
		PaymentAmount:      body.PaymentAmount,
		PaymentStatus:      body.PaymentStatus,
		PaymentDescription: body.PaymentDescription,
	}, auth.GetStaffID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, h.service.CheckIn)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.service.MarkNoShow)
}

func (h *Handler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// transition runs a body-less lifecycle operation on the booking in the path.
func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, uid, actor string) (*booking.Booking, error)) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := op(c.Request.Context(), uri.ID, auth.GetStaffID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) RefundSuggestion(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	s, err := h.service.SuggestRefund(c.Request.Context(), uri.ID, c.Query("reason"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, RefundSuggestionResponse{
		Amount:      s.Amount.StringFixed(2),
		Status:      string(s.Status),
		Description: s.Description,
	})
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body CancelBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID, booking.CancelRequest{
		Reason:       body.Reason,
		RefundStatus: body.RefundStatus,
		RefundAmount: body.RefundAmount,
		RefundNote:   body.RefundNote,
	}, auth.GetStaffID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Quote(c *gin.Context) {
	var body QuoteBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if body.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	q, err := h.service.Quote(c.Request.Context(), booking.QuoteRequest{
		Date:       body.Date,
		Start:      body.TimeStart,
		End:        body.TimeEnd,
		Type:       body.Type,
		EntityID:   body.EntityID,
		IsYouth:    body.IsYouth,
		CourtCount: body.CourtCount,
		TotalHours: body.TotalHours,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewQuoteResponse(q))
}

func (h *Handler) Schedule(c *gin.Context) {
	date, err := timegrid.ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	s, err := h.service.DaySchedule(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewDayScheduleResponse(s))
}

// Import accepts the spreadsheet export as a raw CSV body.
func (h *Handler) Import(c *gin.Context) {
	rows, err := sheet.Parse(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sheet", "details": err.Error()})
		return
	}

	result, err := h.service.Import(c.Request.Context(), rows, auth.GetStaffID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := ImportResponse{
		Imported: make([]BookingResponse, len(result.Imported)),
		Skipped:  make([]ImportSkipResponse, len(result.Skipped)),
	}
	for i, b := range result.Imported {
		resp.Imported[i] = NewBookingResponse(b)
	}
	for i, s := range result.Skipped {
		resp.Skipped[i] = ImportSkipResponse{Line: s.Line, ID: s.ID, Reason: s.Reason}
	}
	c.JSON(http.StatusOK, resp)
}
