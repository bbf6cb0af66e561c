package booking_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nekogravitycat/court-scheduler/internal/booking"
	"github.com/nekogravitycat/court-scheduler/internal/court"
	"github.com/nekogravitycat/court-scheduler/internal/entity"
	"github.com/nekogravitycat/court-scheduler/internal/timegrid"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) GetByUID(ctx context.Context, uid string) (*booking.Booking, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*booking.Booking), args.Int(1), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, b *booking.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockRepo) ListForCourtDay(ctx context.Context, date timegrid.Date, courtID int) ([]*booking.Booking, error) {
	args := m.Called(ctx, date, courtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *mockRepo) ListForDay(ctx context.Context, date timegrid.Date) ([]*booking.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *mockRepo) SumEntityHours(ctx context.Context, entityID string, from, to timegrid.Date, excludeUID string) (float64, error) {
	args := m.Called(ctx, entityID, from, to, excludeUID)
	return args.Get(0).(float64), args.Error(1)
}

type mockCourts struct {
	mock.Mock
}

func (m *mockCourts) GetByID(ctx context.Context, id int) (*court.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

func (m *mockCourts) List(ctx context.Context, filter court.Filter) ([]*court.Court, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*court.Court), args.Error(1)
}

func (m *mockCourts) Update(ctx context.Context, id int, req court.UpdateRequest) (*court.Court, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*court.Court), args.Error(1)
}

type mockEntities struct {
	mock.Mock
}

func (m *mockEntities) Create(ctx context.Context, req entity.CreateRequest) (*entity.Entity, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

func (m *mockEntities) GetByID(ctx context.Context, id string) (*entity.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

func (m *mockEntities) List(ctx context.Context, filter entity.Filter) ([]*entity.Entity, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Entity), args.Int(1), args.Error(2)
}

func (m *mockEntities) Update(ctx context.Context, id string, req entity.UpdateRequest) (*entity.Entity, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}
