package court

import (
	"context"
	"strings"
)

type UpdateRequest struct {
	Name         *string
	Status       *string
	DisplayOrder *int
}

type Service interface {
	GetByID(ctx context.Context, id int) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Court, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id int) (*Court, error) {
	if !ValidID(id) {
		return nil, ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, error) {
	if filter.Status != "" && !Status(filter.Status).Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id int, req UpdateRequest) (*Court, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		c.Name = name
	}
	if req.Status != nil {
		st := Status(*req.Status)
		if !st.Valid() {
			return nil, ErrInvalidStatus
		}
		c.Status = st
	}
	if req.DisplayOrder != nil {
		c.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
