package staff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/court-scheduler/internal/auth"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Staff), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, activeOnly bool) ([]*Staff, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Staff), args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, s *Staff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockRepo) Update(ctx context.Context, s *Staff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockRepo) UpdateLastSignIn(ctx context.Context, id string, t time.Time) error {
	args := m.Called(ctx, id, t)
	return args.Error(0)
}

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewBcryptPINHasherWithCost(4), zap.NewNop())
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestService(repo)

		repo.On("Create", ctx, mock.AnythingOfType("*staff.Staff")).Return(nil)

		st, err := svc.Create(ctx, CreateRequest{Name: " Dana ", PIN: "4821"})
		require.NoError(t, err)
		assert.Equal(t, "Dana", st.Name)
		assert.Equal(t, RoleStaff, st.Role)
		assert.True(t, st.IsActive)
		assert.NotEqual(t, "4821", st.PINHash)
	})

	t.Run("Rejects bad input", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestService(repo)

		_, err := svc.Create(ctx, CreateRequest{Name: "", PIN: "4821"})
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = svc.Create(ctx, CreateRequest{Name: "Dana", PIN: "12"})
		assert.ErrorIs(t, err, ErrInvalidPIN)

		_, err = svc.Create(ctx, CreateRequest{Name: "Dana", PIN: "12ab"})
		assert.ErrorIs(t, err, ErrInvalidPIN)

		_, err = svc.Create(ctx, CreateRequest{Name: "Dana", PIN: "4821", Role: "owner"})
		assert.ErrorIs(t, err, ErrInvalidRole)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptPINHasherWithCost(4)
	hash, err := hasher.Hash("4821")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestService(repo)

		repo.On("GetByID", ctx, "s1").Return(&Staff{ID: "s1", Name: "Dana", PINHash: hash, Role: RoleStaff, IsActive: true}, nil)
		repo.On("UpdateLastSignIn", ctx, "s1", mock.AnythingOfType("time.Time")).Return(nil)

		st, err := svc.SignIn(ctx, "s1", "4821")
		require.NoError(t, err)
		assert.NotNil(t, st.LastSignInAt)
	})

	t.Run("Wrong pin", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "s1").Return(&Staff{ID: "s1", PINHash: hash, IsActive: true}, nil)

		_, err := svc.SignIn(ctx, "s1", "0000")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown staff", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "missing").Return(nil, ErrNotFound)

		_, err := svc.SignIn(ctx, "missing", "4821")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Inactive staff", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "s1").Return(&Staff{ID: "s1", PINHash: hash, IsActive: false}, nil)

		_, err := svc.SignIn(ctx, "s1", "4821")
		assert.ErrorIs(t, err, ErrInactive)
	})

	t.Run("Sign-in stamp failure is ignored", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newTestService(repo)
		repo.On("GetByID", ctx, "s1").Return(&Staff{ID: "s1", PINHash: hash, IsActive: true}, nil)
		repo.On("UpdateLastSignIn", ctx, "s1", mock.Anything).Return(errors.New("db down"))

		st, err := svc.SignIn(ctx, "s1", "4821")
		require.NoError(t, err)
		assert.Nil(t, st.LastSignInAt)
	})
}
