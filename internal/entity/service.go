package entity

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Kind    string
	Name    string
	Contact string
}

type UpdateRequest struct {
	Name     *string
	Contact  *string
	IsActive *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Entity, error)
	GetByID(ctx context.Context, id string) (*Entity, error)
	List(ctx context.Context, filter Filter) ([]*Entity, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Entity, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Entity, error) {
	kind := Kind(req.Kind)
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	e := &Entity{
		Kind:     kind,
		Name:     name,
		Contact:  strings.TrimSpace(req.Contact),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Entity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entity, int, error) {
	if filter.Kind != "" && !Kind(filter.Kind).Valid() {
		return nil, 0, ErrInvalidKind
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Entity, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		e.Name = name
	}
	if req.Contact != nil {
		e.Contact = strings.TrimSpace(*req.Contact)
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
