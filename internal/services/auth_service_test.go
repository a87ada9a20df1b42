package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/learnsvc/domain"
	"github.com/you/learnsvc/internal/mocks"
)

func existingUser() *domain.User {
	return &domain.User{
		ID:         1,
		Name:       "Alice",
		Email:      "alice@example.com",
		Role:       "user",
		IsVerified: true,
	}
}

func newAuthService(userRepo *mocks.MockUserRepository, cache *mocks.MockSessionCache,
	tokenSvc *mocks.MockTokenService, mailer *mocks.MockMailer) domain.AuthService {
	return NewAuthService(userRepo, cache, mocks.NewMockPasswordService(), tokenSvc, mailer)
}

func TestAuthServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		setupMocks    func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer)
		expectedError error
		validate      func(t *testing.T, activation *domain.ActivationToken, mailer *mocks.MockMailer)
	}{
		{
			name:     "successful registration issues token and mails the code",
			userName: "Alice",
			email:    "alice@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {
				// default: email unknown, mail recorded
			},
			expectedError: nil,
			validate: func(t *testing.T, activation *domain.ActivationToken, mailer *mocks.MockMailer) {
				if activation == nil || activation.Token == "" {
					t.Fatal("expected an activation token")
				}
				if len(mailer.Sent) != 1 {
					t.Fatalf("expected exactly one mail, got %d", len(mailer.Sent))
				}
				if mailer.Sent[0].To != "alice@example.com" || mailer.Sent[0].Code != activation.Code {
					t.Errorf("mail mismatch: %+v", mailer.Sent[0])
				}
			},
		},
		{
			name:     "duplicate email rejected before any token is issued",
			userName: "Alice",
			email:    "alice@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return existingUser(), nil
				}
			},
			expectedError: domain.ErrEmailTaken,
			validate: func(t *testing.T, activation *domain.ActivationToken, mailer *mocks.MockMailer) {
				if activation != nil {
					t.Error("expected no activation token")
				}
				if len(mailer.Sent) != 0 {
					t.Error("expected no mail for duplicate email")
				}
			},
		},
		{
			name:          "missing fields rejected",
			userName:      "",
			email:         "alice@example.com",
			password:      "password123",
			setupMocks:    func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {},
			expectedError: domain.ErrMissingFields,
			validate:      func(t *testing.T, activation *domain.ActivationToken, mailer *mocks.MockMailer) {},
		},
		{
			name:     "mailer failure surfaces",
			userName: "Alice",
			email:    "alice@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, mailer *mocks.MockMailer) {
				mailer.SendActivationMailFunc = func(to, name, code string) error {
					return errors.New("smtp down")
				}
			},
			expectedError: nil, // matched by substring below
			validate: func(t *testing.T, activation *domain.ActivationToken, mailer *mocks.MockMailer) {
				if activation != nil {
					t.Error("expected no activation token when mail fails")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			mailer := mocks.NewMockMailer()
			tt.setupMocks(userRepo, mailer)

			svc := newAuthService(userRepo, mocks.NewMockSessionCache(), mocks.NewMockTokenService(), mailer)
			activation, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.name == "mailer failure surfaces" {
				if err == nil {
					t.Fatal("expected an error")
				}
			} else if !errors.Is(err, tt.expectedError) && err != tt.expectedError {
				t.Errorf("expected error %v, got %v", tt.expectedError, err)
			}
			tt.validate(t, activation, mailer)
		})
	}
}

func TestAuthServiceImpl_Activate(t *testing.T) {
	pending := &domain.PendingUser{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed_password123",
	}

	tests := []struct {
		name          string
		token         string
		code          string
		setupMocks    func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService)
		expectedError error
		validate      func(t *testing.T, user *domain.User, created *int)
	}{
		{
			name:  "correct code within expiry creates exactly one user",
			token: "good-token",
			code:  "4321",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateActivationTokenFunc = func(token string) (*domain.PendingUser, string, error) {
					return pending, "4321", nil
				}
			},
			expectedError: nil,
			validate: func(t *testing.T, user *domain.User, created *int) {
				if user == nil {
					t.Fatal("expected a user")
				}
				if *created != 1 {
					t.Errorf("expected exactly one create, got %d", *created)
				}
				if user.Role != "user" || !user.IsVerified {
					t.Errorf("unexpected user state: %+v", user)
				}
				if user.PasswordHash != "hashed_password123" {
					t.Error("expected the claim's password hash to be persisted")
				}
			},
		},
		{
			name:  "wrong code creates nothing",
			token: "good-token",
			code:  "0000",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateActivationTokenFunc = func(token string) (*domain.PendingUser, string, error) {
					return pending, "4321", nil
				}
			},
			expectedError: domain.ErrActivationCodeMismatch,
			validate: func(t *testing.T, user *domain.User, created *int) {
				if *created != 0 {
					t.Error("expected no user to be created")
				}
			},
		},
		{
			name:  "expired token creates nothing",
			token: "expired-token",
			code:  "4321",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateActivationTokenFunc = func(token string) (*domain.PendingUser, string, error) {
					return nil, "", domain.ErrTokenExpired
				}
			},
			expectedError: domain.ErrTokenExpired,
			validate: func(t *testing.T, user *domain.User, created *int) {
				if *created != 0 {
					t.Error("expected no user to be created")
				}
			},
		},
		{
			name:  "second activation of the same email fails on the uniqueness guard",
			token: "good-token",
			code:  "4321",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateActivationTokenFunc = func(token string) (*domain.PendingUser, string, error) {
					return pending, "4321", nil
				}
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return existingUser(), nil
				}
			},
			expectedError: domain.ErrEmailTaken,
			validate: func(t *testing.T, user *domain.User, created *int) {
				if *created != 0 {
					t.Error("expected no user to be created")
				}
			},
		},
		{
			name:  "store uniqueness violation on the final create surfaces as conflict",
			token: "good-token",
			code:  "4321",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				tokenSvc.ValidateActivationTokenFunc = func(token string) (*domain.PendingUser, string, error) {
					return pending, "4321", nil
				}
				userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					return domain.ErrEmailTaken
				}
			},
			expectedError: domain.ErrEmailTaken,
			validate:      func(t *testing.T, user *domain.User, created *int) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tokenSvc := mocks.NewMockTokenService()
			tt.setupMocks(userRepo, tokenSvc)

			created := 0
			baseCreate := userRepo.CreateFunc
			userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
				if baseCreate != nil {
					return baseCreate(ctx, user)
				}
				created++
				user.ID = 1
				return nil
			}

			svc := newAuthService(userRepo, mocks.NewMockSessionCache(), tokenSvc, mocks.NewMockMailer())
			user, err := svc.Activate(context.Background(), tt.token, tt.code)

			if !errors.Is(err, tt.expectedError) {
				t.Errorf("expected error %v, got %v", tt.expectedError, err)
			}
			tt.validate(t, user, &created)
		})
	}
}

func TestAuthServiceImpl_Login(t *testing.T) {
	withPassword := func() *domain.User {
		u := existingUser()
		u.PasswordHash = "hashed_password123"
		return u
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(userRepo *mocks.MockUserRepository)
		expectedError error
		validate      func(t *testing.T, result *domain.AuthResult, saved []*domain.User)
	}{
		{
			name:     "correct credentials yield tokens and a session entry",
			email:    "alice@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByEmailWithPasswordFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return withPassword(), nil
				}
			},
			expectedError: nil,
			validate: func(t *testing.T, result *domain.AuthResult, saved []*domain.User) {
				if result == nil {
					t.Fatal("expected a result")
				}
				if result.AccessToken == "" || result.RefreshToken == "" {
					t.Error("expected both tokens")
				}
				if result.User.PasswordHash != "" {
					t.Error("password hash must not leave the service")
				}
				if len(saved) != 1 || saved[0].ID != 1 {
					t.Errorf("expected one session entry keyed by the user, got %v", saved)
				}
			},
		},
		{
			name:     "wrong password never creates a session entry",
			email:    "alice@example.com",
			password: "wrong",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				userRepo.FindByEmailWithPasswordFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return withPassword(), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
			validate: func(t *testing.T, result *domain.AuthResult, saved []*domain.User) {
				if len(saved) != 0 {
					t.Error("expected no session entry")
				}
			},
		},
		{
			name:          "unknown email returns the same generic error",
			email:         "nobody@example.com",
			password:      "password123",
			setupMocks:    func(userRepo *mocks.MockUserRepository) {},
			expectedError: domain.ErrInvalidCredentials,
			validate: func(t *testing.T, result *domain.AuthResult, saved []*domain.User) {
				if len(saved) != 0 {
					t.Error("expected no session entry")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)

			var saved []*domain.User
			cache := mocks.NewMockSessionCache()
			cache.SaveFunc = func(ctx context.Context, user *domain.User) error {
				saved = append(saved, user)
				return nil
			}

			svc := newAuthService(userRepo, cache, mocks.NewMockTokenService(), mocks.NewMockMailer())
			result, err := svc.Login(context.Background(), tt.email, tt.password)

			if !errors.Is(err, tt.expectedError) {
				t.Errorf("expected error %v, got %v", tt.expectedError, err)
			}
			tt.validate(t, result, saved)
		})
	}
}

func TestAuthServiceImpl_Refresh(t *testing.T) {
	t.Run("valid refresh token with live session rotates both tokens", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 1}, nil
		}

		cache := mocks.NewMockSessionCache()
		cache.FindFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
			return existingUser(), nil
		}
		saves := 0
		cache.SaveFunc = func(ctx context.Context, user *domain.User) error {
			saves++
			return nil
		}

		svc := newAuthService(mocks.NewMockUserRepository(), cache, tokenSvc, mocks.NewMockMailer())
		result, err := svc.Refresh(context.Background(), "refresh_token_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Error("expected rotated access and refresh tokens")
		}
		if saves != 1 {
			t.Errorf("expected the session entry to be rewritten, got %d saves", saves)
		}
	})

	t.Run("refresh after logout fails even though the token is still valid", func(t *testing.T) {
		tokenSvc := mocks.NewMockTokenService()
		tokenSvc.ValidateRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
			return &domain.TokenClaims{UserID: 1}, nil
		}

		// session cache default: not found (the logout already removed it)
		svc := newAuthService(mocks.NewMockUserRepository(), mocks.NewMockSessionCache(), tokenSvc, mocks.NewMockMailer())
		_, err := svc.Refresh(context.Background(), "refresh_token_1")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("invalid refresh token is rejected before any cache lookup", func(t *testing.T) {
		cache := mocks.NewMockSessionCache()
		cache.FindFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
			t.Fatal("cache must not be consulted for an invalid token")
			return nil, nil
		}

		svc := newAuthService(mocks.NewMockUserRepository(), cache, mocks.NewMockTokenService(), mocks.NewMockMailer())
		_, err := svc.Refresh(context.Background(), "garbage")
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	deletes := 0
	cache := mocks.NewMockSessionCache()
	cache.DeleteFunc = func(ctx context.Context, userID uint) error {
		deletes++
		return nil
	}

	svc := newAuthService(mocks.NewMockUserRepository(), cache, mocks.NewMockTokenService(), mocks.NewMockMailer())

	// calling twice in a row must be safe
	if err := svc.Logout(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Logout(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error on repeat logout: %v", err)
	}
	if deletes != 2 {
		t.Errorf("expected two delete calls, got %d", deletes)
	}
}

func TestAuthServiceImpl_SocialAuth(t *testing.T) {
	t.Run("unknown email creates a verified account and starts a session", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		var created *domain.User
		userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			user.ID = 5
			created = user
			return nil
		}

		cache := mocks.NewMockSessionCache()
		saves := 0
		cache.SaveFunc = func(ctx context.Context, user *domain.User) error {
			saves++
			return nil
		}

		svc := newAuthService(userRepo, cache, mocks.NewMockTokenService(), mocks.NewMockMailer())
		result, err := svc.SocialAuth(context.Background(), "new@example.com", "New", "http://img", "pw")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created == nil || !created.IsVerified {
			t.Errorf("expected a verified account, got %+v", created)
		}
		if result.User.ID != 5 || saves != 1 {
			t.Errorf("expected a session for the new user, got %+v saves=%d", result.User, saves)
		}
	})

	t.Run("known email logs straight in without creating", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return existingUser(), nil
		}
		userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
			t.Fatal("no account must be created for a known email")
			return nil
		}

		svc := newAuthService(userRepo, mocks.NewMockSessionCache(), mocks.NewMockTokenService(), mocks.NewMockMailer())
		result, err := svc.SocialAuth(context.Background(), "alice@example.com", "Alice", "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.User.ID != 1 {
			t.Errorf("expected the existing user, got %+v", result.User)
		}
	})
}
