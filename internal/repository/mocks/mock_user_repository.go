package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"userapi/internal/database"
	"userapi/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, s *database.Session, user *model.User) (*model.User, error) {
	args := m.Called(ctx, s, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, s *database.Session, id int64) (*model.User, error) {
	args := m.Called(ctx, s, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetMany(ctx context.Context, s *database.Session, offset, limit int) ([]model.User, error) {
	args := m.Called(ctx, s, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) DeleteByID(ctx context.Context, s *database.Session, id int64) (*model.User, error) {
	args := m.Called(ctx, s, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, s *database.Session) (int, error) {
	args := m.Called(ctx, s)
	return args.Int(0), args.Error(1)
}
