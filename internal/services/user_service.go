package services

import (
	"context"
	"fmt"

	"github.com/you/learnsvc/domain"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo     domain.UserRepository
	sessionCache domain.SessionCache
	passwordSvc  domain.PasswordService
}

// NewUserService creates a new user service
func NewUserService(
	userRepo domain.UserRepository,
	sessionCache domain.SessionCache,
	passwordSvc domain.PasswordService,
) domain.UserService {
	return &UserServiceImpl{
		userRepo:     userRepo,
		sessionCache: sessionCache,
		passwordSvc:  passwordSvc,
	}
}

// Profile implements domain.UserService. The cache is a read-through
// shortcut only; a miss falls back to the store.
func (s *UserServiceImpl) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	if user, err := s.sessionCache.Find(ctx, userID); err == nil {
		return user, nil
	}
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateInfo implements domain.UserService. An email change re-checks
// uniqueness before applying; the session snapshot is rewritten so later
// cached reads see the new identity.
func (s *UserServiceImpl) UpdateInfo(ctx context.Context, userID uint, name, email string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" && email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return nil, domain.ErrEmailTaken
		}
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.sessionCache.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	return user, nil
}

// UpdatePassword implements domain.UserService. The old password must
// re-verify through the same one-way comparison used at login.
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword string) (*domain.User, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.userRepo.FindByIDWithPassword(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, oldPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	if err := s.sessionCache.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	return user, nil
}
