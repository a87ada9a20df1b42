package services

import (
	"context"
	"fmt"

	"github.com/you/learnsvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo     domain.UserRepository
	sessionCache domain.SessionCache
	passwordSvc  domain.PasswordService
	tokenSvc     domain.TokenService
	mailer       domain.Mailer
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionCache domain.SessionCache,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailer domain.Mailer,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		sessionCache: sessionCache,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		mailer:       mailer,
	}
}

// Register implements domain.AuthService. Nothing is persisted here: the
// candidate user lives only inside the signed activation token until the
// code is confirmed.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.ActivationToken, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	pending := &domain.PendingUser{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
	}

	activation, err := s.tokenSvc.GenerateActivationToken(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to generate activation token: %w", err)
	}

	if err := s.mailer.SendActivationMail(email, name, activation.Code); err != nil {
		return nil, fmt.Errorf("failed to send activation mail: %w", err)
	}

	return activation, nil
}

// Activate implements domain.AuthService. The transition is one-way: a
// second activation of the same claim fails on the email uniqueness guard,
// and two concurrent activations race only on the store's unique index.
func (s *AuthServiceImpl) Activate(ctx context.Context, token, code string) (*domain.User, error) {
	pending, issuedCode, err := s.tokenSvc.ValidateActivationToken(token)
	if err != nil {
		return nil, err
	}

	if issuedCode != code {
		return nil, domain.ErrActivationCodeMismatch
	}

	existing, err := s.userRepo.FindByEmail(ctx, pending.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	user := &domain.User{
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Avatar:       domain.Avatar{URL: pending.AvatarURL},
		Role:         "user",
		IsVerified:   true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login implements domain.AuthService. Both a missing user and a password
// mismatch return the same ErrInvalidCredentials so responses do not leak
// which emails exist.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.userRepo.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return s.startSession(ctx, user)
}

// SocialAuth implements domain.AuthService. Unknown emails get an account
// created on the spot; social identities skip the activation flow.
func (s *AuthServiceImpl) SocialAuth(ctx context.Context, email, name, avatarURL, password string) (*domain.AuthResult, error) {
	if email == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == domain.ErrUserNotFound {
		hashed, herr := s.passwordSvc.Hash(password)
		if herr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", herr)
		}
		user = &domain.User{
			Name:         name,
			Email:        email,
			PasswordHash: hashed,
			Avatar:       domain.Avatar{URL: avatarURL},
			Role:         "user",
			IsVerified:   true,
		}
		if cerr := s.userRepo.Create(ctx, user); cerr != nil {
			return nil, cerr
		}
		user.PasswordHash = ""
	} else if err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

// Refresh implements domain.AuthService. A cryptographically valid refresh
// token is not enough: the session cache entry must still exist, which is
// how logout revokes refresh tokens despite their being stateless. Both
// tokens are rotated and the session entry's TTL restarted.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.sessionCache.Find(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	return s.startSession(ctx, user)
}

// Logout implements domain.AuthService. Safe to call twice: deleting an
// absent session entry is a no-op.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uint) error {
	return s.sessionCache.Delete(ctx, userID)
}

// startSession mints both tokens and writes the user snapshot to the
// session cache, keyed by user id.
func (s *AuthServiceImpl) startSession(ctx context.Context, user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.sessionCache.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
