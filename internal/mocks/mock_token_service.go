package mocks

import (
	"fmt"

	"github.com/you/learnsvc/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GenerateActivationTokenFunc func(pending *domain.PendingUser) (*domain.ActivationToken, error)
	ValidateActivationTokenFunc func(token string) (*domain.PendingUser, string, error)
	GenerateAccessTokenFunc     func(userID uint) (string, error)
	GenerateRefreshTokenFunc    func(userID uint) (string, error)
	ValidateAccessTokenFunc     func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc    func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateActivationToken issues an activation token
func (m *MockTokenService) GenerateActivationToken(pending *domain.PendingUser) (*domain.ActivationToken, error) {
	if m.GenerateActivationTokenFunc != nil {
		return m.GenerateActivationTokenFunc(pending)
	}
	// Default behavior: deterministic token and code
	return &domain.ActivationToken{Token: "activation_token_" + pending.Email, Code: "1234"}, nil
}

// ValidateActivationToken validates an activation token
func (m *MockTokenService) ValidateActivationToken(token string) (*domain.PendingUser, string, error) {
	if m.ValidateActivationTokenFunc != nil {
		return m.ValidateActivationTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, "", domain.ErrTokenInvalid
}

// GenerateAccessToken issues an access token
func (m *MockTokenService) GenerateAccessToken(userID uint) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID)
	}
	return fmt.Sprintf("access_token_%d", userID), nil
}

// GenerateRefreshToken issues a refresh token
func (m *MockTokenService) GenerateRefreshToken(userID uint) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(userID)
	}
	return fmt.Sprintf("refresh_token_%d", userID), nil
}

// ValidateAccessToken validates an access token
func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}

// ValidateRefreshToken validates a refresh token
func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	// Default behavior: invalid
	return nil, domain.ErrTokenInvalid
}
