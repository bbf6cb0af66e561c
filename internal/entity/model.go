package entity

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/court-scheduler/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "entity not found")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "name is required")
	ErrInvalidKind     = apperror.New(http.StatusBadRequest, "kind must be contractor or team")
	ErrNameAlreadyUsed = apperror.New(http.StatusConflict, "an entity with this name already exists")
)

type Kind string

const (
	KindContractor Kind = "contractor"
	KindTeam       Kind = "team"
)

func (k Kind) Valid() bool { return k == KindContractor || k == KindTeam }

// Entity is a contractor (coach, lesson provider) or a team that books courts
// under its own account.
type Entity struct {
	ID        string // UUID
	Kind      Kind
	Name      string
	Contact   string
	IsActive  bool
	CreatedAt time.Time
}

type Filter struct {
	Kind       string
	Keyword    string
	ActiveOnly bool
	Page       int
	PageSize   int
}
