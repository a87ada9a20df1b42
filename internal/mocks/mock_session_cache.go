package mocks

import (
	"context"

	"github.com/you/learnsvc/domain"
)

// MockSessionCache implements domain.SessionCache for testing
type MockSessionCache struct {
	SaveFunc   func(ctx context.Context, user *domain.User) error
	FindFunc   func(ctx context.Context, userID uint) (*domain.User, error)
	DeleteFunc func(ctx context.Context, userID uint) error
}

// NewMockSessionCache creates a new MockSessionCache with default behaviors
func NewMockSessionCache() *MockSessionCache {
	return &MockSessionCache{}
}

// Save stores a user snapshot
func (m *MockSessionCache) Save(ctx context.Context, user *domain.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, user)
	}
	// Default behavior: success
	return nil
}

// Find loads a user snapshot
func (m *MockSessionCache) Find(ctx context.Context, userID uint) (*domain.User, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Delete removes a user snapshot
func (m *MockSessionCache) Delete(ctx context.Context, userID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	// Default behavior: success (idempotent)
	return nil
}
