package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/court-scheduler/internal/auth"
	"github.com/nekogravitycat/court-scheduler/internal/pkg/request"
	"github.com/nekogravitycat/court-scheduler/internal/pkg/response"
	"github.com/nekogravitycat/court-scheduler/internal/staff"
)

type Handler struct {
	service    staff.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service staff.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// Roster lists active staff for the identity picker. No PINs or roles are exposed.
func (h *Handler) Roster(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RosterEntry, len(members))
	for i, s := range members {
		items[i] = RosterEntry{ID: s.ID, Name: s.Name}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

// SignIn verifies the PIN of the picked staff member and returns a session token.
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	st, err := h.service.SignIn(c.Request.Context(), req.StaffID, req.PIN)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(st.ID, string(st.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, SignInResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.jwtManager.TTL().Seconds()),
		Staff:       NewStaffResponse(st),
	})
}

// Me returns the signed-in staff member.
func (h *Handler) Me(c *gin.Context) {
	staffID := auth.GetStaffID(c)
	if staffID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	st, err := h.service.GetByID(c.Request.Context(), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStaffResponse(st))
}

func (h *Handler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]StaffResponse, len(members))
	for i, s := range members {
		items[i] = NewStaffResponse(s)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	st, err := h.service.Create(c.Request.Context(), staff.CreateRequest{
		Name: req.Name,
		PIN:  req.PIN,
		Role: req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewStaffResponse(st))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateStaffRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	st, err := h.service.Update(c.Request.Context(), uri.ID, staff.UpdateRequest{
		Name:     body.Name,
		PIN:      body.PIN,
		Role:     body.Role,
		IsActive: body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStaffResponse(st))
}
