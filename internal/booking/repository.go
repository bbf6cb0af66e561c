package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByUID(ctx context.Context, uid string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error

	// ListForCourtDay returns every booking on the court and date, cancelled ones included.
	ListForCourtDay(ctx context.Context, date timegrid.Date, courtID int) ([]*Booking, error)
	ListForDay(ctx context.Context, date timegrid.Date) ([]*Booking, error)

	// SumEntityHours totals non-cancelled booked hours for the entity in [from, to].
	// excludeUID is used during updates to ignore the booking itself.
	SumEntityHours(ctx context.Context, entityID string, from, to timegrid.Date, excludeUID string) (float64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingColumns = []string{
	"uid", "code", "booking_date", "court_id", "start_minute", "end_minute",
	"type", "entity_id", "customer", "notes", "is_youth", "court_count",
	"status", "payment_cents", "payment_status", "payment_description",
	"cancelled_at", "cancelled_by", "cancel_reason", "refund_status", "refund_cents", "refund_note",
	"checked_in_at", "checked_in_by",
	"created_by", "created_at", "updated_at",
}

// sortable maps API sort keys to columns.
var sortable = map[string]string{
	"date":       "booking_date",
	"court":      "court_id",
	"start":      "start_minute",
	"created_at": "created_at",
}

// row mirrors the nullable storage layout of a booking.
type row struct {
	uid, code                         string
	date                              time.Time
	courtID, startMinute, endMinute   int
	typ                               string
	entityID                          *string
	customer, notes                   string
	isYouth                           bool
	courtCount                        *int
	status                            string
	paymentCents                      int64
	paymentStatus, paymentDescription string
	cancelledAt                       *time.Time
	cancelledBy, cancelReason         *string
	refundStatus                      *string
	refundCents                       *int64
	refundNote                        *string
	checkedInAt                       *time.Time
	checkedInBy                       *string
	createdBy                         string
	createdAt, updatedAt              time.Time
}

func (r *row) dest() []any {
	return []any{
		&r.uid, &r.code, &r.date, &r.courtID, &r.startMinute, &r.endMinute,
		&r.typ, &r.entityID, &r.customer, &r.notes, &r.isYouth, &r.courtCount,
		&r.status, &r.paymentCents, &r.paymentStatus, &r.paymentDescription,
		&r.cancelledAt, &r.cancelledBy, &r.cancelReason, &r.refundStatus, &r.refundCents, &r.refundNote,
		&r.checkedInAt, &r.checkedInBy,
		&r.createdBy, &r.createdAt, &r.updatedAt,
	}
}

func (r *row) booking() *Booking {
	b := &Booking{
		UID:                r.uid,
		ID:                 r.code,
		Date:               timegrid.DateOf(r.date),
		CourtID:            r.courtID,
		TimeStart:          timegrid.FromMinutes(r.startMinute),
		TimeEnd:            timegrid.FromMinutes(r.endMinute),
		Type:               Type(r.typ),
		EntityID:           r.entityID,
		Customer:           r.customer,
		Notes:              r.notes,
		IsYouth:            r.isYouth,
		CourtCount:         r.courtCount,
		Status:             Status(r.status),
		PaymentAmount:      fromCents(r.paymentCents),
		PaymentStatus:      PaymentStatus(r.paymentStatus),
		PaymentDescription: r.paymentDescription,
		CreatedBy:          r.createdBy,
		CreatedAt:          r.createdAt,
		UpdatedAt:          r.updatedAt,
	}
	if r.cancelledAt != nil {
		c := &Cancellation{At: *r.cancelledAt}
		if r.cancelledBy != nil {
			c.By = *r.cancelledBy
		}
		if r.cancelReason != nil {
			c.Reason = CancelReason(*r.cancelReason)
		}
		if r.refundStatus != nil {
			c.RefundStatus = RefundStatus(*r.refundStatus)
		}
		if r.refundCents != nil {
			c.RefundAmount = fromCents(*r.refundCents)
		}
		if r.refundNote != nil {
			c.RefundNote = *r.refundNote
		}
		b.Cancellation = c
	}
	if r.checkedInAt != nil {
		ci := &CheckIn{At: *r.checkedInAt}
		if r.checkedInBy != nil {
			ci.By = *r.checkedInBy
		}
		b.CheckIn = ci
	}
	return b
}

func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

// lifecycleValues flattens the optional cancellation and check-in records.
func lifecycleValues(b *Booking) map[string]any {
	v := map[string]any{
		"cancelled_at": nil, "cancelled_by": nil, "cancel_reason": nil,
		"refund_status": nil, "refund_cents": nil, "refund_note": nil,
		"checked_in_at": nil, "checked_in_by": nil,
	}
	if c := b.Cancellation; c != nil {
		v["cancelled_at"] = c.At
		v["cancelled_by"] = c.By
		v["cancel_reason"] = string(c.Reason)
		v["refund_status"] = string(c.RefundStatus)
		v["refund_cents"] = toCents(c.RefundAmount)
		v["refund_note"] = c.RefundNote
	}
	if ci := b.CheckIn; ci != nil {
		v["checked_in_at"] = ci.At
		v["checked_in_by"] = ci.By
	}
	return v
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"code", "booking_date", "court_id", "start_minute", "end_minute",
			"type", "entity_id", "customer", "notes", "is_youth", "court_count",
			"status", "payment_cents", "payment_status", "payment_description", "created_by",
		).
		Values(
			b.ID, b.Date.Time(), b.CourtID, b.TimeStart.TotalMinutes(), b.TimeEnd.TotalMinutes(),
			string(b.Type), b.EntityID, b.Customer, b.Notes, b.IsYouth, b.CourtCount,
			string(b.Status), toCents(b.PaymentAmount), string(b.PaymentStatus), b.PaymentDescription, b.CreatedBy,
		).
		Suffix("RETURNING uid, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.UID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return translateWriteError(err, "create booking failed")
	}
	return nil
}

func (r *pgxRepository) GetByUID(ctx context.Context, uid string) (*Booking, error) {
	if _, err := uuid.Parse(uid); err != nil {
		return nil, ErrNotFound
	}

	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"uid": uid}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var rw row
	if err := r.pool.QueryRow(ctx, query, args...).Scan(rw.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return rw.booking(), nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := psql.Select(append(bookingColumns, "count(*) OVER() AS total_count")...).
		From("public.bookings")

	if filter.Date != nil {
		query = query.Where(squirrel.Eq{"booking_date": filter.Date.Time()})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"booking_date": filter.DateFrom.Time()})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"booking_date": filter.DateTo.Time()})
	}
	if filter.CourtID != 0 {
		query = query.Where(squirrel.Eq{"court_id": filter.CourtID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.EntityID != "" {
		query = query.Where(squirrel.Eq{"entity_id": filter.EntityID})
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"code": pattern},
			squirrel.ILike{"customer": pattern},
		})
	}

	orderDir := "ASC"
	if filter.SortOrder == "desc" || filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	if col, ok := sortable[filter.SortBy]; ok {
		query = query.OrderBy(col + " " + orderDir)
	} else {
		query = query.OrderBy("booking_date "+orderDir, "court_id ASC", "start_minute ASC")
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var rw row
		if err := rows.Scan(append(rw.dest(), &total)...); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, rw.booking())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	return bookings, total, nil
}

func (r *pgxRepository) ListForCourtDay(ctx context.Context, date timegrid.Date, courtID int) ([]*Booking, error) {
	return r.listWhere(ctx, squirrel.Eq{"booking_date": date.Time(), "court_id": courtID})
}

func (r *pgxRepository) ListForDay(ctx context.Context, date timegrid.Date) ([]*Booking, error) {
	return r.listWhere(ctx, squirrel.Eq{"booking_date": date.Time()})
}

func (r *pgxRepository) listWhere(ctx context.Context, pred squirrel.Sqlizer) ([]*Booking, error) {
	sql, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(pred).
		OrderBy("court_id ASC", "start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build snapshot query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("load snapshot failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var rw row
		if err := rows.Scan(rw.dest()...); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, rw.booking())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot failed: %w", err)
	}
	return bookings, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	query := psql.Update("public.bookings").
		Set("code", b.ID).
		Set("booking_date", b.Date.Time()).
		Set("court_id", b.CourtID).
		Set("start_minute", b.TimeStart.TotalMinutes()).
		Set("end_minute", b.TimeEnd.TotalMinutes()).
		Set("type", string(b.Type)).
		Set("entity_id", b.EntityID).
		Set("customer", b.Customer).
		Set("notes", b.Notes).
		Set("is_youth", b.IsYouth).
		Set("court_count", b.CourtCount).
		Set("status", string(b.Status)).
		Set("payment_cents", toCents(b.PaymentAmount)).
		Set("payment_status", string(b.PaymentStatus)).
		Set("payment_description", b.PaymentDescription).
		SetMap(lifecycleValues(b)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"uid": b.UID}).
		Suffix("RETURNING updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return translateWriteError(err, "update booking failed")
	}
	return nil
}

func (r *pgxRepository) SumEntityHours(ctx context.Context, entityID string, from, to timegrid.Date, excludeUID string) (float64, error) {
	query := psql.Select("COALESCE(SUM(end_minute - start_minute), 0)").
		From("public.bookings").
		Where(squirrel.Eq{"entity_id": entityID}).
		Where(squirrel.NotEq{"status": string(StatusCancelled)}).
		Where(squirrel.GtOrEq{"booking_date": from.Time()}).
		Where(squirrel.LtOrEq{"booking_date": to.Time()})
	if excludeUID != "" {
		query = query.Where(squirrel.NotEq{"uid": excludeUID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build entity hours query failed: %w", err)
	}

	var minutes int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("sum entity hours failed: %w", err)
	}
	return float64(minutes) / 60, nil
}

// translateWriteError maps constraint violations to domain errors.
func translateWriteError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return ErrTimeConflict
		case pgerrcode.ForeignKeyViolation:
			if pgErr.ConstraintName == "bookings_entity_id_fkey" {
				return ErrEntityNotFound
			}
			return ErrCourtNotFound
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
