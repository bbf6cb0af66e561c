package http

import (
	"time"

	"github.com/nekogravitycat/court-scheduler/internal/staff"
)

// StaffResponse never exposes the PIN hash.
type StaffResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}

func NewStaffResponse(s *staff.Staff) StaffResponse {
	return StaffResponse{
		ID:           s.ID,
		Name:         s.Name,
		Role:         string(s.Role),
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
		LastSignInAt: s.LastSignInAt,
	}
}

// RosterEntry is what the identity picker shows before sign-in.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SignInRequest struct {
	StaffID string `json:"staff_id" binding:"required,uuid"`
	PIN     string `json:"pin" binding:"required,numeric,min=4,max=8"`
}

type SignInResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   int64         `json:"expires_in"`
	Staff       StaffResponse `json:"staff"`
}

type CreateStaffRequest struct {
	Name string `json:"name" binding:"required,max=64"`
	PIN  string `json:"pin" binding:"required,numeric,min=4,max=8"`
	Role string `json:"role" binding:"omitempty,oneof=staff manager"`
}

type UpdateStaffRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=64"`
	PIN      *string `json:"pin" binding:"omitempty,numeric,min=4,max=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=staff manager"`
	IsActive *bool   `json:"is_active"`
}
