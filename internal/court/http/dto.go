package http

import (
	"time"

	"github.com/nekogravitycat/court-scheduler/internal/court"
)

type CourtResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	DisplayOrder int       `json:"display_order"`
	IsStadium    bool      `json:"is_stadium"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:           c.ID,
		Name:         c.Name,
		Status:       string(c.Status),
		DisplayOrder: c.DisplayOrder,
		IsStadium:    c.IsStadium(),
		UpdatedAt:    c.UpdatedAt,
	}
}

// CourtTag is the compact form embedded in other responses.
type CourtTag struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

type ListCourtsRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=available maintenance closed"`
}

type UpdateCourtRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=64"`
	Status       *string `json:"status" binding:"omitempty,oneof=available maintenance closed"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}
