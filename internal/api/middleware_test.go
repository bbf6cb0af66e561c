package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nekogravitycat/court-scheduler/internal/staff"
)

type mockStaffService struct {
	mock.Mock
}

func (m *mockStaffService) Create(ctx context.Context, req staff.CreateRequest) (*staff.Staff, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *mockStaffService) GetByID(ctx context.Context, id string) (*staff.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *mockStaffService) List(ctx context.Context, activeOnly bool) ([]*staff.Staff, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staff.Staff), args.Error(1)
}

func (m *mockStaffService) Update(ctx context.Context, id string, req staff.UpdateRequest) (*staff.Staff, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func (m *mockStaffService) SignIn(ctx context.Context, id, pin string) (*staff.Staff, error) {
	args := m.Called(ctx, id, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staff.Staff), args.Error(1)
}

func managerRouter(svc staff.Service, staffID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/managed", func(c *gin.Context) {
		if staffID != "" {
			c.Set("staffID", staffID)
		}
		c.Next()
	}, RequireManager(svc), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequireManager(t *testing.T) {
	svc := new(mockStaffService)
	svc.On("GetByID", mock.Anything, "mgr").Return(&staff.Staff{ID: "mgr", Role: staff.RoleManager, IsActive: true}, nil)
	svc.On("GetByID", mock.Anything, "desk").Return(&staff.Staff{ID: "desk", Role: staff.RoleStaff, IsActive: true}, nil)
	svc.On("GetByID", mock.Anything, "former").Return(&staff.Staff{ID: "former", Role: staff.RoleManager, IsActive: false}, nil)
	svc.On("GetByID", mock.Anything, "ghost").Return(nil, staff.ErrNotFound)

	tests := []struct {
		name    string
		staffID string
		want    int
	}{
		{"Manager", "mgr", http.StatusNoContent},
		{"Desk staff", "desk", http.StatusForbidden},
		{"Inactive manager", "former", http.StatusForbidden},
		{"Unknown", "ghost", http.StatusUnauthorized},
		{"Not signed in", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			managerRouter(svc, tt.staffID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/managed", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRecoverAndRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(RequestLogger(logger), Recover(logger))
	r.GET("/boom", func(c *gin.Context) { panic("court 18 does not exist") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, 1, logs.FilterMessage("HTTP request").FilterField(zap.Int("status", 500)).Len())
}

func TestAllowedOrigins(t *testing.T) {
	assert.Contains(t, allowedOrigins(false, ""), "http://localhost:3000")
	assert.Equal(t, []string{"https://desk.example.com", "https://admin.example.com"},
		allowedOrigins(true, " https://desk.example.com, ,https://admin.example.com"))
	assert.Empty(t, allowedOrigins(true, ""))
}
