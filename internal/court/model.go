package court

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nekogravitycat/court-scheduler/internal/pkg/apperror"
)

const (
	MinID     = 1
	MaxID     = 17
	StadiumID = 17
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "court not found")
	ErrInvalidID     = apperror.New(http.StatusBadRequest, "court id must be between 1 and 17")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid court status")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusClosed      Status = "closed"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusMaintenance || s == StatusClosed
}

// Court is one of the facility's numbered courts.
type Court struct {
	ID           int
	Name         string
	Status       Status
	DisplayOrder int
	UpdatedAt    time.Time
}

func (c *Court) IsStadium() bool { return c.ID == StadiumID }

// ParseID reads a court number the way the front desk sheet writes it:
// surrounding whitespace and leading zeros are tolerated.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrInvalidID
	}
	if !ValidID(id) {
		return 0, ErrInvalidID
	}
	return id, nil
}

func ValidID(id int) bool {
	return id >= MinID && id <= MaxID
}

// Filter defines parameters for listing courts.
type Filter struct {
	Status string
}
