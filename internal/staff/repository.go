package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing staff data from storage.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context, activeOnly bool) ([]*Staff, error)
	Create(ctx context.Context, s *Staff) error
	Update(ctx context.Context, s *Staff) error
	UpdateLastSignIn(ctx context.Context, id string, t time.Time) error
}

type pgxStaffRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxStaffRepository{pool: pool}
}

func (r *pgxStaffRepository) GetByID(ctx context.Context, id string) (*Staff, error) {
	// Token subjects and roster picks are uuids; anything else cannot match.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	const query = `
		SELECT id, name, pin_hash, role, is_active, created_at, last_sign_in_at
		FROM public.staff
		WHERE id = $1
	`

	var s Staff
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.PINHash,
		&s.Role,
		&s.IsActive,
		&s.CreatedAt,
		&s.LastSignInAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByID query failed: %w", err)
	}

	return &s, nil
}

func (r *pgxStaffRepository) List(ctx context.Context, activeOnly bool) ([]*Staff, error) {
	query := `
		SELECT id, name, pin_hash, role, is_active, created_at, last_sign_in_at
		FROM public.staff
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List staff query failed: %w", err)
	}
	defer rows.Close()

	var result []*Staff
	for rows.Next() {
		var s Staff
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.PINHash,
			&s.Role,
			&s.IsActive,
			&s.CreatedAt,
			&s.LastSignInAt,
		); err != nil {
			return nil, fmt.Errorf("scan staff failed: %w", err)
		}
		result = append(result, &s)
	}

	return result, rows.Err()
}

func (r *pgxStaffRepository) Create(ctx context.Context, s *Staff) error {
	const query = `
		INSERT INTO public.staff (name, pin_hash, role, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, s.Name, s.PINHash, s.Role, s.IsActive).
		Scan(&s.ID, &s.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("Create staff failed: %w", err)
	}

	return nil
}

func (r *pgxStaffRepository) Update(ctx context.Context, s *Staff) error {
	const query = `
		UPDATE public.staff
		SET name = $1, pin_hash = $2, role = $3, is_active = $4
		WHERE id = $5
	`

	ct, err := r.pool.Exec(ctx, query, s.Name, s.PINHash, s.Role, s.IsActive, s.ID)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrNameAlreadyUsed
		}
		return fmt.Errorf("Update staff failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxStaffRepository) UpdateLastSignIn(ctx context.Context, id string, t time.Time) error {
	const query = `
		UPDATE public.staff
		SET last_sign_in_at = $1
		WHERE id = $2
	`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("UpdateLastSignIn failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
