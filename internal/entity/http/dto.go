package http

import (
	"time"

	"github.com/nekogravitycat/court-scheduler/internal/entity"
	"github.com/nekogravitycat/court-scheduler/internal/pkg/request"
)

type EntityResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(e *entity.Entity) EntityResponse {
	return EntityResponse{
		ID:        e.ID,
		Kind:      string(e.Kind),
		Name:      e.Name,
		Contact:   e.Contact,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
	}
}

type ListEntitiesRequest struct {
	request.ListParams
	Kind       string `form:"kind" binding:"omitempty,oneof=contractor team"`
	Keyword    string `form:"q" binding:"omitempty,max=64"`
	ActiveOnly bool   `form:"active_only"`
}

type CreateEntityRequest struct {
	Kind    string `json:"kind" binding:"required,oneof=contractor team"`
	Name    string `json:"name" binding:"required,max=128"`
	Contact string `json:"contact" binding:"omitempty,max=256"`
}

type UpdateEntityRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=128"`
	Contact  *string `json:"contact" binding:"omitempty,max=256"`
	IsActive *bool   `json:"is_active"`
}
