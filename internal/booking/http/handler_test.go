package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/court-scheduler/internal/booking"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

const (
	testStaffID = "3f8e6a52-3c1b-4e0f-9d55-0d6f1a2b7c11"
	testUID     = "9b2d8e4a-6f31-4c8b-a0e7-51d2c3b4a596"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) result(args mock.Arguments) (*booking.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req booking.CreateRequest, actor string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, req, actor))
}

func (m *mockService) GetByID(ctx context.Context, uid string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, uid))
}

func (m *mockService) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*booking.Booking), args.Int(1), args.Error(2)
}

func (m *mockService) Update(ctx context.Context, uid string, req booking.UpdateRequest, actor string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, uid, req, actor))
}

func (m *mockService) CheckIn(ctx context.Context, uid string, actor string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, uid, actor))
}

func (m *mockService) SuggestRefund(ctx context.Context, uid string, reason string) (booking.RefundSuggestion, error) {
	args := m.Called(ctx, uid, reason)
	return args.Get(0).(booking.RefundSuggestion), args.Error(1)
}

func (m *mockService) Cancel(ctx context.Context, uid string, req booking.CancelRequest, actor string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, uid, req, actor))
}

func (m *mockService) MarkNoShow(ctx context.Context, uid string, actor string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, uid, actor))
}

func (m *mockService) Complete(ctx context.Context, uid string, actor string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, uid, actor))
}

func (m *mockService) DaySchedule(ctx context.Context, date timegrid.Date) (*booking.DaySchedule, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.DaySchedule), args.Error(1)
}

func (m *mockService) Quote(ctx context.Context, req booking.QuoteRequest) (booking.RateQuote, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(booking.RateQuote), args.Error(1)
}

func (m *mockService) Import(ctx context.Context, rows []booking.ImportRow, actor string) (*booking.ImportResult, error) {
	args := m.Called(ctx, rows, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.ImportResult), args.Error(1)
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	signedIn := func(c *gin.Context) {
		c.Set("staffID", testStaffID)
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), signedIn, func(c *gin.Context) { c.Next() })
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sample() *booking.Booking {
	return &booking.Booking{
		UID:                testUID,
		ID:                 "1605-0900",
		Date:               timegrid.NewDate(2024, 12, 16),
		CourtID:            5,
		TimeStart:          timegrid.NewTime(9, 0),
		TimeEnd:            timegrid.NewTime(10, 0),
		Type:               booking.TypeOpen,
		Status:             booking.StatusActive,
		PaymentAmount:      decimal.RequireFromString("10"),
		PaymentStatus:      booking.PaymentPending,
		PaymentDescription: "Open play (non-prime) - $10.00 per block",
		CreatedBy:          testStaffID,
	}
}

func TestHandler_Create(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(req booking.CreateRequest) bool {
		return req.CourtID == 5 &&
			req.Date == timegrid.NewDate(2024, 12, 16) &&
			req.Start == timegrid.NewTime(9, 0) &&
			req.Type == "open"
	}), testStaffID).Return(sample(), nil)

	w := do(r, http.MethodPost, "/v1/bookings", `{
		"date": "2024-12-16", "court_id": 5,
		"time_start": "09:00", "time_end": "10:00", "type": "open"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1605-0900", resp.ID)
	assert.Equal(t, "10.00", resp.PaymentAmount)
	assert.Equal(t, timegrid.NewTime(10, 0), resp.TimeEnd)
	svc.AssertExpectations(t)
}

func TestHandler_CreateRejectsBadInput(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	w := do(r, http.MethodPost, "/v1/bookings", `{"court_id": 5, "time_start": "09:00", "time_end": "10:00", "type": "open"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/bookings", `{"date": "16/12/2024", "court_id": 5, "type": "open"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/bookings", `{"date": "2024-12-16", "court_id": 18, "time_start": "09:00", "time_end": "10:00", "type": "open"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_ConflictMapsTo409(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)
	svc.On("Create", mock.Anything, mock.Anything, testStaffID).Return(nil, booking.ErrTimeConflict)

	w := do(r, http.MethodPost, "/v1/bookings", `{
		"date": "2024-12-16", "court_id": 5,
		"time_start": "09:30", "time_end": "10:30", "type": "open"
	}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "time slot already booked")
}

func TestHandler_GetRequiresUUID(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	w := do(r, http.MethodGet, "/v1/bookings/1605-0900", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.On("GetByID", mock.Anything, testUID).Return(nil, booking.ErrNotFound)
	w = do(r, http.MethodGet, "/v1/bookings/"+testUID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Cancel(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	cancelled := sample()
	cancelled.Status = booking.StatusCancelled
	cancelled.Cancellation = &booking.Cancellation{
		By:           testStaffID,
		Reason:       booking.ReasonWeather,
		RefundStatus: booking.RefundFull,
		RefundAmount: decimal.RequireFromString("10"),
	}
	svc.On("Cancel", mock.Anything, testUID, mock.MatchedBy(func(req booking.CancelRequest) bool {
		return req.Reason == "weather" && req.RefundAmount == nil
	}), testStaffID).Return(cancelled, nil)

	w := do(r, http.MethodPost, "/v1/bookings/"+testUID+"/cancel", `{"reason": "weather"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Cancellation)
	assert.Equal(t, "10.00", resp.Cancellation.RefundAmount)
	assert.Equal(t, "full", resp.Cancellation.RefundStatus)

	w = do(r, http.MethodPost, "/v1/bookings/"+testUID+"/cancel", `{"reason": "bored"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_RefundSuggestion(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)
	svc.On("SuggestRefund", mock.Anything, testUID, "customer").Return(booking.RefundSuggestion{
		Amount:      decimal.Zero,
		Status:      booking.RefundNone,
		Description: "Customer cancellation under 24 hours notice - no refund",
	}, nil)

	w := do(r, http.MethodGet, "/v1/bookings/"+testUID+"/refund-suggestion?reason=customer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"amount": "0.00",
		"status": "none",
		"description": "Customer cancellation under 24 hours notice - no refund"
	}`, w.Body.String())
}

func TestHandler_CheckInConflict(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)
	svc.On("CheckIn", mock.Anything, testUID, testStaffID).Return(nil, booking.ErrAlreadyCheckedIn)

	w := do(r, http.MethodPost, "/v1/bookings/"+testUID+"/check-in", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_ListByWeek(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	week := timegrid.NewDate(2024, 12, 18)
	svc.On("List", mock.Anything, mock.MatchedBy(func(f booking.Filter) bool {
		return f.Week != nil && *f.Week == week && f.CourtID == 5 && f.Page == 1 && f.PageSize == 20
	})).Return([]*booking.Booking{sample()}, 1, nil)

	w := do(r, http.MethodGet, "/v1/bookings?week=2024-12-18&court_id=5", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = do(r, http.MethodGet, "/v1/bookings?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Schedule(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	w := do(r, http.MethodGet, "/v1/schedule", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	date := timegrid.NewDate(2024, 12, 16)
	svc.On("DaySchedule", mock.Anything, date).Return(&booking.DaySchedule{Date: date}, nil)
	w = do(r, http.MethodGet, "/v1/schedule?date=2024-12-16", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-12-16"`)
}

func TestHandler_Import(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	imported := sample()
	svc.On("Import", mock.Anything, mock.MatchedBy(func(rows []booking.ImportRow) bool {
		return len(rows) == 2 &&
			rows[0].Line == 2 && rows[0].Booking.CourtID == 5 &&
			rows[1].Line == 4 && rows[1].Booking.CourtID == 5
	}), testStaffID).Return(&booking.ImportResult{
		Imported: []*booking.Booking{imported},
		Skipped:  []booking.ImportSkip{{Line: 4, ID: "1605-0930", Reason: "time slot already booked"}},
	}, nil)

	csv := "date,court,start,end,type\n2024-12-16,5,09:00,10:00,open\n\n2024-12-16,05,09:30,10:30,open\n"
	w := do(r, http.MethodPost, "/v1/bookings/import", csv)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"line":4`)
	assert.Contains(t, w.Body.String(), `"reason":"time slot already booked"`)

	w = do(r, http.MethodPost, "/v1/bookings/import", strings.Repeat(" ", 3))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
