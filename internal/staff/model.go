package staff

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-scheduler/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "staff member not found")
	ErrNameRequired       = apperror.New(http.StatusBadRequest, "name is required")
	ErrNameAlreadyUsed    = apperror.New(http.StatusConflict, "name already used")
	ErrInvalidPIN         = apperror.New(http.StatusBadRequest, "pin must be 4 to 8 digits")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid staff role")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid staff id or pin")
	ErrInactive           = apperror.New(http.StatusForbidden, "staff member is inactive")
)

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool { return r == RoleStaff || r == RoleManager }

// Staff is a front-desk operator. Staff IDs are recorded on bookings for audit.
type Staff struct {
	ID           string // UUID
	Name         string
	PINHash      string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastSignInAt *time.Time
}

func (s *Staff) IsManager() bool { return s.Role == RoleManager }
