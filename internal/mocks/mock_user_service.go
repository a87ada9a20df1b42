package mocks

import (
	"context"

	"github.com/you/learnsvc/domain"
)

// MockUserService implements domain.UserService for handler tests
type MockUserService struct {
	ProfileFunc        func(ctx context.Context, userID uint) (*domain.User, error)
	UpdateInfoFunc     func(ctx context.Context, userID uint, name, email string) (*domain.User, error)
	UpdatePasswordFunc func(ctx context.Context, userID uint, oldPassword, newPassword string) (*domain.User, error)
}

// NewMockUserService creates a new MockUserService with default behaviors
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) UpdateInfo(ctx context.Context, userID uint, name, email string) (*domain.User, error) {
	if m.UpdateInfoFunc != nil {
		return m.UpdateInfoFunc(ctx, userID, name, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword string) (*domain.User, error) {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, oldPassword, newPassword)
	}
	return nil, domain.ErrUserNotFound
}
