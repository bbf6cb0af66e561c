package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-scheduler/internal/court"
	"github.com/nekogravitycat/court-scheduler/internal/entity"
	"github.com/nekogravitycat/court-scheduler/internal/pkg/apperror"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

type CreateRequest struct {
	Date       timegrid.Date
	CourtID    int
	Start      timegrid.Time
	End        timegrid.Time
	Type       string
	EntityID   *string
	Customer   string
	Notes      string
	IsYouth    bool
	CourtCount *int
	// TotalHours overrides the contractor's cumulative monthly hours.
	TotalHours *float64
}

type UpdateRequest struct {
	Date               *timegrid.Date
	CourtID            *int
	Start              *timegrid.Time
	End                *timegrid.Time
	Type               *string
	EntityID           *string
	Customer           *string
	Notes              *string
	IsYouth            *bool
	CourtCount         *int
	TotalHours         *float64
	PaymentAmount      *decimal.Decimal
	PaymentStatus      *string
	PaymentDescription *string
}

type CancelRequest struct {
	Reason       string
	RefundStatus *string
	RefundAmount *decimal.Decimal
	RefundNote   *string
}

type QuoteRequest struct {
	Date       timegrid.Date
	Start      timegrid.Time
	End        timegrid.Time
	Type       string
	EntityID   *string
	IsYouth    bool
	CourtCount *int
	TotalHours *float64
}

// Slot is one lattice cell of the day grid.
type Slot struct {
	Time        timegrid.Time
	IsPrimeTime bool
	IsPast      bool
	Booking     *Booking
}

type CourtSchedule struct {
	Court *court.Court
	Slots []Slot
}

type DaySchedule struct {
	Date   timegrid.Date
	Courts []CourtSchedule
}

// ImportRow is one parsed sheet row. Line is its line in the source file,
// counting the header.
type ImportRow struct {
	Line    int
	Booking *Booking
}

// ImportSkip reports a row that was not inserted.
type ImportSkip struct {
	Line   int
	ID     string
	Reason string
}

type ImportResult struct {
	Imported []*Booking
	Skipped  []ImportSkip
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, actor string) (*Booking, error)
	GetByID(ctx context.Context, uid string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, uid string, req UpdateRequest, actor string) (*Booking, error)
	CheckIn(ctx context.Context, uid string, actor string) (*Booking, error)
	SuggestRefund(ctx context.Context, uid string, reason string) (RefundSuggestion, error)
	Cancel(ctx context.Context, uid string, req CancelRequest, actor string) (*Booking, error)
	MarkNoShow(ctx context.Context, uid string, actor string) (*Booking, error)
	Complete(ctx context.Context, uid string, actor string) (*Booking, error)
	DaySchedule(ctx context.Context, date timegrid.Date) (*DaySchedule, error)
	Quote(ctx context.Context, req QuoteRequest) (RateQuote, error)
	Import(ctx context.Context, rows []ImportRow, actor string) (*ImportResult, error)
}

// Options configures the facility day and the service clock.
type Options struct {
	Open        timegrid.Time
	Close       timegrid.Time
	SlotMinutes int
	Now         func() time.Time
}

func DefaultOptions() Options {
	return Options{
		Open:        timegrid.NewTime(6, 0),
		Close:       timegrid.NewTime(22, 0),
		SlotMinutes: timegrid.DefaultStepMinutes,
		Now:         time.Now,
	}
}

type service struct {
	repo          Repository
	courtService  court.Service
	entityService entity.Service
	pricer        Pricer
	refunds       RefundAdvisor
	logger        *zap.Logger
	opts          Options
}

func NewService(
	repo Repository,
	courtService court.Service,
	entityService entity.Service,
	pricer Pricer,
	refunds RefundAdvisor,
	logger *zap.Logger,
	opts Options,
) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		repo:          repo,
		courtService:  courtService,
		entityService: entityService,
		pricer:        pricer,
		refunds:       refunds,
		logger:        logger,
		opts:          opts,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest, actor string) (*Booking, error) {
	if actor == "" {
		return nil, ErrActorRequired
	}
	t := Type(req.Type)
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	iv, err := timegrid.NewInterval(req.Start, req.End)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	if req.CourtCount != nil && *req.CourtCount < 1 {
		return nil, ErrInvalidCourtCount
	}
	if err := s.checkCourt(ctx, req.CourtID, t); err != nil {
		return nil, err
	}
	entityID := normalizeEntityID(req.EntityID)
	if err := s.checkEntity(ctx, t, entityID); err != nil {
		return nil, err
	}

	snapshot, err := s.repo.ListForCourtDay(ctx, req.Date, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !IsAvailable(snapshot, req.Date, req.CourtID, iv, "") {
		return nil, ErrTimeConflict
	}

	b := &Booking{
		ID:         Synthesize(req.Date, req.CourtID, req.Start),
		Date:       req.Date,
		CourtID:    req.CourtID,
		TimeStart:  req.Start,
		TimeEnd:    req.End,
		Type:       t,
		EntityID:   entityID,
		Customer:   strings.TrimSpace(req.Customer),
		Notes:      strings.TrimSpace(req.Notes),
		IsYouth:    req.IsYouth,
		CourtCount: req.CourtCount,
		Status:     StatusActive,
		CreatedBy:  actor,
	}

	quote, err := s.quoteFor(ctx, b, req.TotalHours, "")
	if err != nil {
		return nil, err
	}
	applyQuote(b, quote)

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("code", b.ID),
		zap.Int("court", b.CourtID),
		zap.String("type", string(b.Type)),
		zap.String("amount", b.PaymentAmount.StringFixed(2)),
		zap.String("actor", actor),
	)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, uid string) (*Booking, error) {
	return s.repo.GetByUID(ctx, uid)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !Status(filter.Status).Valid() {
		return nil, 0, ErrInvalidInput
	}
	if filter.Type != "" && !Type(filter.Type).Valid() {
		return nil, 0, ErrInvalidType
	}
	if filter.CourtID != 0 && !court.ValidID(filter.CourtID) {
		return nil, 0, court.ErrInvalidID
	}
	if filter.Week != nil {
		week := timegrid.WeekOf(*filter.Week)
		filter.DateFrom = &week[0]
		filter.DateTo = &week[6]
		filter.Week = nil
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, 0, ErrInvalidInput
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, uid string, req UpdateRequest, actor string) (*Booking, error) {
	if actor == "" {
		return nil, ErrActorRequired
	}
	b, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, ErrInvalidStatus
	}

	next := *b
	slotChanged := false
	repriced := false

	if req.Date != nil && *req.Date != b.Date {
		next.Date = *req.Date
		slotChanged = true
	}
	if req.CourtID != nil && *req.CourtID != b.CourtID {
		next.CourtID = *req.CourtID
		slotChanged = true
	}
	if req.Start != nil && *req.Start != b.TimeStart {
		next.TimeStart = *req.Start
		slotChanged = true
	}
	if req.End != nil && *req.End != b.TimeEnd {
		next.TimeEnd = *req.End
		slotChanged = true
	}
	if req.Type != nil {
		t := Type(*req.Type)
		if !t.Valid() {
			return nil, ErrInvalidType
		}
		if t != b.Type {
			next.Type = t
			repriced = true
		}
	}
	if req.EntityID != nil {
		next.EntityID = normalizeEntityID(req.EntityID)
		repriced = true
	}
	if req.IsYouth != nil && *req.IsYouth != b.IsYouth {
		next.IsYouth = *req.IsYouth
		repriced = true
	}
	if req.CourtCount != nil {
		if *req.CourtCount < 1 {
			return nil, ErrInvalidCourtCount
		}
		next.CourtCount = req.CourtCount
		repriced = true
	}
	if req.TotalHours != nil {
		repriced = true
	}
	if req.Customer != nil {
		next.Customer = strings.TrimSpace(*req.Customer)
	}
	if req.Notes != nil {
		next.Notes = strings.TrimSpace(*req.Notes)
	}

	if next.Type != b.Type || req.EntityID != nil {
		if err := s.checkEntity(ctx, next.Type, next.EntityID); err != nil {
			return nil, err
		}
	}

	if slotChanged || next.Type != b.Type {
		if err := next.Interval().Validate(); err != nil {
			return nil, ErrInvalidTimeRange
		}
		if err := s.checkCourt(ctx, next.CourtID, next.Type); err != nil {
			return nil, err
		}
	}

	if slotChanged {
		snapshot, err := s.repo.ListForCourtDay(ctx, next.Date, next.CourtID)
		if err != nil {
			return nil, err
		}
		// The code only identifies this booking within its own court-day.
		exclude := ""
		if next.Date == b.Date && next.CourtID == b.CourtID {
			exclude = b.ID
		}
		if !IsAvailable(snapshot, next.Date, next.CourtID, next.Interval(), exclude) {
			return nil, ErrTimeConflict
		}
		next.ID = Synthesize(next.Date, next.CourtID, next.TimeStart)
		repriced = true
	}

	if repriced && req.PaymentAmount == nil {
		quote, err := s.quoteFor(ctx, &next, req.TotalHours, b.UID)
		if err != nil {
			return nil, err
		}
		applyQuote(&next, quote)
		if next.PaymentAmount.Equal(b.PaymentAmount) {
			next.PaymentStatus = b.PaymentStatus
		}
	}
	if req.PaymentAmount != nil {
		if req.PaymentAmount.IsNegative() {
			return nil, ErrInvalidInput
		}
		next.PaymentAmount = req.PaymentAmount.Round(2)
	}
	if req.PaymentStatus != nil {
		ps := PaymentStatus(*req.PaymentStatus)
		if !ps.Valid() {
			return nil, ErrInvalidInput
		}
		next.PaymentStatus = ps
	}
	if req.PaymentDescription != nil {
		next.PaymentDescription = strings.TrimSpace(*req.PaymentDescription)
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		return nil, err
	}

	s.logger.Info("booking updated",
		zap.String("code", next.ID),
		zap.Int("court", next.CourtID),
		zap.Bool("moved", slotChanged),
		zap.String("actor", actor),
	)
	return &next, nil
}

func (s *service) CheckIn(ctx context.Context, uid string, actor string) (*Booking, error) {
	if actor == "" {
		return nil, ErrActorRequired
	}
	b, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, ErrInvalidStatus
	}
	if b.CheckedIn() {
		return nil, ErrAlreadyCheckedIn
	}

	b.CheckIn = &CheckIn{At: s.opts.Now(), By: actor}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking checked in", zap.String("code", b.ID), zap.Int("court", b.CourtID), zap.String("actor", actor))
	return b, nil
}

func (s *service) SuggestRefund(ctx context.Context, uid string, reason string) (RefundSuggestion, error) {
	r, err := parseReason(reason)
	if err != nil {
		return RefundSuggestion{}, err
	}
	b, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return RefundSuggestion{}, err
	}
	return s.refunds.SuggestRefund(b, r, s.opts.Now()), nil
}

func (s *service) Cancel(ctx context.Context, uid string, req CancelRequest, actor string) (*Booking, error) {
	if actor == "" {
		return nil, ErrActorRequired
	}
	reason, err := parseReason(req.Reason)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, ErrInvalidStatus
	}

	now := s.opts.Now()
	suggestion := s.refunds.SuggestRefund(b, reason, now)

	status := suggestion.Status
	amount := suggestion.Amount
	if req.RefundStatus != nil {
		status = RefundStatus(*req.RefundStatus)
		if !status.Valid() {
			return nil, ErrInvalidInput
		}
		switch status {
		case RefundNone:
			amount = decimal.Zero
		case RefundFull:
			amount = b.PaymentAmount
		case RefundPartial:
			if req.RefundAmount == nil {
				return nil, ErrRefundAmountRequired
			}
		}
	}
	if req.RefundAmount != nil {
		amount = req.RefundAmount.Round(2)
	}
	if amount.IsNegative() || amount.GreaterThan(b.PaymentAmount) {
		return nil, ErrInvalidRefund
	}
	note := suggestion.Description
	if req.RefundNote != nil {
		note = strings.TrimSpace(*req.RefundNote)
	}

	b.Status = StatusCancelled
	b.Cancellation = &Cancellation{
		At:           now,
		By:           actor,
		Reason:       reason,
		RefundStatus: status,
		RefundAmount: amount,
		RefundNote:   note,
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		zap.String("code", b.ID),
		zap.Int("court", b.CourtID),
		zap.String("reason", string(reason)),
		zap.String("refund_status", string(status)),
		zap.String("refund_amount", amount.StringFixed(2)),
		zap.String("actor", actor),
	)
	return b, nil
}

func (s *service) MarkNoShow(ctx context.Context, uid string, actor string) (*Booking, error) {
	return s.finish(ctx, uid, StatusNoShow, actor)
}

func (s *service) Complete(ctx context.Context, uid string, actor string) (*Booking, error) {
	return s.finish(ctx, uid, StatusCompleted, actor)
}

func (s *service) finish(ctx context.Context, uid string, status Status, actor string) (*Booking, error) {
	if actor == "" {
		return nil, ErrActorRequired
	}
	b, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if !b.IsActive() {
		return nil, ErrInvalidStatus
	}

	b.Status = status
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking closed",
		zap.String("code", b.ID),
		zap.Int("court", b.CourtID),
		zap.String("status", string(status)),
		zap.String("actor", actor),
	)
	return b, nil
}

func (s *service) DaySchedule(ctx context.Context, date timegrid.Date) (*DaySchedule, error) {
	courts, err := s.courtService.List(ctx, court.Filter{})
	if err != nil {
		return nil, err
	}
	bookings, err := s.repo.ListForDay(ctx, date)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	lattice := timegrid.SlotLattice(s.opts.Open, s.opts.Close, s.opts.SlotMinutes)

	schedule := &DaySchedule{Date: date, Courts: make([]CourtSchedule, 0, len(courts))}
	for _, c := range courts {
		slots := make([]Slot, len(lattice))
		for i, t := range lattice {
			slots[i] = Slot{
				Time:        t,
				IsPrimeTime: timegrid.IsPrimeTime(date, t),
				IsPast:      timegrid.IsPast(date, t, now),
				Booking:     BookingAt(bookings, date, c.ID, t),
			}
		}
		schedule.Courts = append(schedule.Courts, CourtSchedule{Court: c, Slots: slots})
	}
	return schedule, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (RateQuote, error) {
	t := Type(req.Type)
	if !t.Valid() {
		return RateQuote{}, ErrInvalidType
	}
	if req.CourtCount != nil && *req.CourtCount < 1 {
		return RateQuote{}, ErrInvalidCourtCount
	}
	b := &Booking{
		Date:       req.Date,
		TimeStart:  req.Start,
		TimeEnd:    req.End,
		Type:       t,
		EntityID:   normalizeEntityID(req.EntityID),
		IsYouth:    req.IsYouth,
		CourtCount: req.CourtCount,
	}
	return s.quoteFor(ctx, b, req.TotalHours, "")
}

func (s *service) Import(ctx context.Context, rows []ImportRow, actor string) (*ImportResult, error) {
	if actor == "" {
		return nil, ErrActorRequired
	}

	result := &ImportResult{}
	days := make(map[timegrid.Date][]*Booking)

	for _, in := range rows {
		row := in.Booking
		if row == nil {
			continue
		}
		skip := func(reason string) {
			result.Skipped = append(result.Skipped, ImportSkip{Line: in.Line, ID: row.ID, Reason: reason})
		}

		if !row.Type.Valid() {
			skip(ErrInvalidType.Message)
			continue
		}
		if !court.ValidID(row.CourtID) {
			skip(court.ErrInvalidID.Message)
			continue
		}
		if err := row.Interval().Validate(); err != nil {
			skip(ErrInvalidTimeRange.Message)
			continue
		}
		if err := s.checkCourt(ctx, row.CourtID, row.Type); err != nil {
			if !rejected(err) {
				return nil, err
			}
			skip(err.Error())
			continue
		}
		if err := s.checkEntity(ctx, row.Type, row.EntityID); err != nil {
			if !rejected(err) {
				return nil, err
			}
			skip(err.Error())
			continue
		}

		snapshot, ok := days[row.Date]
		if !ok {
			var err error
			snapshot, err = s.repo.ListForDay(ctx, row.Date)
			if err != nil {
				return nil, err
			}
		}
		row.ID = Synthesize(row.Date, row.CourtID, row.TimeStart)
		if !IsAvailable(snapshot, row.Date, row.CourtID, row.Interval(), "") {
			skip(ErrTimeConflict.Message)
			days[row.Date] = snapshot
			continue
		}

		if row.PaymentDescription == "" {
			quote, err := s.quoteFor(ctx, row, nil, "")
			if err != nil {
				skip(err.Error())
				days[row.Date] = snapshot
				continue
			}
			// A status marked on the sheet survives re-pricing.
			marked := row.PaymentStatus
			applyQuote(row, quote)
			if marked != "" {
				row.PaymentStatus = marked
			}
		}
		if row.Status == "" {
			row.Status = StatusActive
		}
		if row.PaymentStatus == "" {
			row.PaymentStatus = paymentStatusFor(row.PaymentAmount)
		}
		row.CreatedBy = actor

		if err := s.repo.Create(ctx, row); err != nil {
			return nil, err
		}
		days[row.Date] = append(snapshot, row)
		result.Imported = append(result.Imported, row)
	}

	s.logger.Info("bookings imported",
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", len(result.Skipped)),
		zap.String("actor", actor),
	)
	return result, nil
}

// checkCourt rejects unknown courts and customer bookings on courts that are
// not open for play.
func (s *service) checkCourt(ctx context.Context, courtID int, t Type) error {
	c, err := s.courtService.GetByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return ErrCourtNotFound
		}
		return err
	}
	if c.Status != court.StatusAvailable && !t.Blocking() {
		return ErrCourtUnavailable
	}
	return nil
}

func (s *service) checkEntity(ctx context.Context, t Type, entityID *string) error {
	if !t.RequiresEntity() {
		if entityID != nil {
			return ErrEntityNotAllowed
		}
		return nil
	}
	if entityID == nil {
		return ErrEntityRequired
	}

	e, err := s.entityService.GetByID(ctx, *entityID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrEntityNotFound
		}
		return err
	}
	want := entity.KindTeam
	if t == TypeContractor {
		want = entity.KindContractor
	}
	if e.Kind != want {
		return ErrEntityMismatch
	}
	return nil
}

// quoteFor prices b. Contractor bookings without explicit hours are priced on
// the entity's booked hours for the calendar month, including b itself.
func (s *service) quoteFor(ctx context.Context, b *Booking, totalHours *float64, excludeUID string) (RateQuote, error) {
	iv := b.Interval()
	if err := iv.Validate(); err != nil {
		return RateQuote{}, ErrInvalidTimeRange
	}

	pc := PriceContext{CourtCount: b.CourtCount, TotalHours: totalHours, IsYouth: b.IsYouth}
	if pc.TotalHours == nil && b.Type == TypeContractor && b.EntityID != nil {
		from := timegrid.NewDate(b.Date.Year, b.Date.Month, 1)
		to := timegrid.NewDate(b.Date.Year, b.Date.Month+1, 0)
		booked, err := s.repo.SumEntityHours(ctx, *b.EntityID, from, to, excludeUID)
		if err != nil {
			return RateQuote{}, err
		}
		hours := booked + iv.Hours()
		pc.TotalHours = &hours
	}

	return s.pricer.Quote(PriceRequest{Type: b.Type, Date: b.Date, Interval: iv, Context: pc})
}

func applyQuote(b *Booking, q RateQuote) {
	b.PaymentAmount = q.Total
	b.PaymentDescription = q.Description
	b.PaymentStatus = paymentStatusFor(q.Total)
}

func paymentStatusFor(amount decimal.Decimal) PaymentStatus {
	if amount.IsZero() {
		return PaymentWaived
	}
	return PaymentPending
}

func parseReason(s string) (CancelReason, error) {
	r := CancelReason(strings.TrimSpace(s))
	switch r {
	case ReasonWeather, ReasonNoShow, ReasonCustomer, ReasonFacility:
		return r, nil
	}
	return "", ErrInvalidReason
}

// rejected reports whether err is a validation outcome rather than a storage failure.
func rejected(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr)
}

func normalizeEntityID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}
