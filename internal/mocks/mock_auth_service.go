package mocks

import (
	"context"

	"github.com/you/learnsvc/domain"
)

// MockAuthService implements domain.AuthService for handler tests
type MockAuthService struct {
	RegisterFunc   func(ctx context.Context, name, email, password string) (*domain.ActivationToken, error)
	ActivateFunc   func(ctx context.Context, token, code string) (*domain.User, error)
	LoginFunc      func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	SocialAuthFunc func(ctx context.Context, email, name, avatarURL, password string) (*domain.AuthResult, error)
	RefreshFunc    func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc     func(ctx context.Context, userID uint) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.ActivationToken, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &domain.ActivationToken{Token: "activation_token", Code: "1234"}, nil
}

func (m *MockAuthService) Activate(ctx context.Context, token, code string) (*domain.User, error) {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, token, code)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) SocialAuth(ctx context.Context, email, name, avatarURL, password string) (*domain.AuthResult, error) {
	if m.SocialAuthFunc != nil {
		return m.SocialAuthFunc(ctx, email, name, avatarURL, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockAuthService) Logout(ctx context.Context, userID uint) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID)
	}
	return nil
}
