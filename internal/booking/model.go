package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/pkg/apperror"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict         = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidTimeRange     = timegrid.ErrInvalidInterval
	ErrInvalidType          = apperror.New(http.StatusBadRequest, "invalid booking type")
	ErrInvalidStatus        = apperror.New(http.StatusConflict, "booking is no longer active")
	ErrCourtNotFound        = apperror.New(http.StatusNotFound, "court not found")
	ErrCourtUnavailable     = apperror.New(http.StatusConflict, "court is not open for bookings")
	ErrEntityRequired       = apperror.New(http.StatusBadRequest, "contractor or team bookings require an entity")
	ErrEntityNotAllowed     = apperror.New(http.StatusBadRequest, "entity can only be set on contractor or team bookings")
	ErrEntityMismatch       = apperror.New(http.StatusBadRequest, "entity kind does not match booking type")
	ErrEntityNotFound       = apperror.New(http.StatusNotFound, "entity not found")
	ErrAlreadyCheckedIn     = apperror.New(http.StatusConflict, "booking already checked in")
	ErrInvalidReason        = apperror.New(http.StatusBadRequest, "invalid cancellation reason")
	ErrInvalidRefund        = apperror.New(http.StatusBadRequest, "refund amount must be between zero and the payment amount")
	ErrRefundAmountRequired = apperror.New(http.StatusBadRequest, "a partial refund needs an explicit amount")
	ErrActorRequired        = apperror.New(http.StatusUnauthorized, "staff identity is required")
	ErrInvalidInput         = apperror.New(http.StatusBadRequest, "invalid input parameters")
	ErrInvalidCourtCount    = apperror.New(http.StatusBadRequest, "court count must be positive")
)

// Type classifies a booking for pricing and display.
type Type string

const (
	TypeOpen        Type = "open"
	TypeContractor  Type = "contractor"
	TypeTeamUSTA    Type = "team_usta"
	TypeTeamHS      Type = "team_hs"
	TypeTeamCollege Type = "team_college"
	TypeTeamOther   Type = "team_other"
	TypeTournament  Type = "tournament"
	TypeMaintenance Type = "maintenance"
	TypeHold        Type = "hold"
)

var validTypes = map[Type]bool{
	TypeOpen: true, TypeContractor: true,
	TypeTeamUSTA: true, TypeTeamHS: true, TypeTeamCollege: true, TypeTeamOther: true,
	TypeTournament: true, TypeMaintenance: true, TypeHold: true,
}

func (t Type) Valid() bool { return validTypes[t] }

func (t Type) IsTeam() bool { return strings.HasPrefix(string(t), "team_") }

// RequiresEntity is true for types that reference a contractor or team.
func (t Type) RequiresEntity() bool { return t == TypeContractor || t.IsTeam() }

// Blocking types occupy a court without a customer (maintenance windows, holds).
func (t Type) Blocking() bool { return t == TypeMaintenance || t == TypeHold }

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
	StatusCompleted Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentWaived  PaymentStatus = "waived"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentPaid || p == PaymentWaived
}

// Booking reserves one court on one date for [TimeStart, TimeEnd).
type Booking struct {
	UID       string // storage record id (uuid)
	ID        string // synthesized DDCC-HHMM code
	Date      timegrid.Date
	CourtID   int
	TimeStart timegrid.Time
	TimeEnd   timegrid.Time
	Type      Type
	EntityID  *string
	Customer  string
	Notes     string
	IsYouth   bool
	// CourtCount is the precomputed number of courts a team booking spans.
	CourtCount *int

	Status             Status
	PaymentAmount      decimal.Decimal
	PaymentStatus      PaymentStatus
	PaymentDescription string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	Cancellation *Cancellation
	CheckIn      *CheckIn
}

// Cancellation is populated only once a booking is cancelled.
type Cancellation struct {
	At           time.Time
	By           string
	Reason       CancelReason
	RefundStatus RefundStatus
	RefundAmount decimal.Decimal
	RefundNote   string
}

type CheckIn struct {
	At time.Time
	By string
}

func (b *Booking) Interval() timegrid.Interval {
	return timegrid.Interval{Start: b.TimeStart, End: b.TimeEnd}
}

func (b *Booking) CheckedIn() bool { return b.CheckIn != nil }

func (b *Booking) IsActive() bool { return b.Status == StatusActive }

// Filter defines parameters for listing bookings.
type Filter struct {
	Date      *timegrid.Date
	DateFrom  *timegrid.Date
	DateTo    *timegrid.Date
	Week      *timegrid.Date // any day of the Monday-first week to list
	CourtID   int
	Status    string
	Type      string
	EntityID  string
	Keyword   string // matches booking code or customer
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
