package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/court-scheduler/internal/auth"
)

type CreateRequest struct {
	Name string
	PIN  string
	Role string
}

type UpdateRequest struct {
	Name     *string
	PIN      *string
	Role     *string
	IsActive *bool
}

// Service defines business logic related to front-desk staff.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Staff, error)
	GetByID(ctx context.Context, id string) (*Staff, error)
	List(ctx context.Context, activeOnly bool) ([]*Staff, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Staff, error)
	SignIn(ctx context.Context, id, pin string) (*Staff, error)
}

type service struct {
	repo   Repository
	hasher auth.PINHasher
	log    *zap.Logger
}

// NewService creates a new staff Service.
func NewService(repo Repository, hasher auth.PINHasher, log *zap.Logger) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		log:    log,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Staff, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !validPIN(req.PIN) {
		return nil, ErrInvalidPIN
	}

	role := RoleStaff
	if req.Role != "" {
		role = Role(req.Role)
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(req.PIN)
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	st := &Staff{
		Name:     name,
		PINHash:  hash,
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	s.log.Info("staff created", zap.String("staff_id", st.ID), zap.String("role", string(st.Role)))
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Staff, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]*Staff, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Staff, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		st.Name = name
	}
	if req.PIN != nil {
		if !validPIN(*req.PIN) {
			return nil, ErrInvalidPIN
		}
		hash, err := s.hasher.Hash(*req.PIN)
		if err != nil {
			return nil, fmt.Errorf("failed to hash pin: %w", err)
		}
		st.PINHash = hash
	}
	if req.Role != nil {
		role := Role(*req.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		st.Role = role
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SignIn checks the PIN of the staff member picked from the roster.
func (s *service) SignIn(ctx context.Context, id, pin string) (*Staff, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	if !st.IsActive {
		return nil, ErrInactive
	}
	if err := s.hasher.Compare(st.PINHash, pin); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed stamp does not block sign-in.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastSignIn(ctx, st.ID, now); err != nil {
		s.log.Warn("failed to record sign-in", zap.String("staff_id", st.ID), zap.Error(err))
	} else {
		st.LastSignInAt = &now
	}

	return st, nil
}

func validPIN(pin string) bool {
	if len(pin) < 4 || len(pin) > 8 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
