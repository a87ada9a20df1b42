package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByEmailWithPassword includes the password hash, which default
	// reads omit. Login and password change are its only callers.
	FindByEmailWithPassword(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByIDWithPassword(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}

// SessionCache defines the ephemeral user-snapshot store keyed by user id.
// It is not authoritative; the user repository remains source of truth.
type SessionCache interface {
	Save(ctx context.Context, user *User) error
	Find(ctx context.Context, userID uint) (*User, error)
	Delete(ctx context.Context, userID uint) error
}

// TokenService defines token issuing and validation operations
type TokenService interface {
	GenerateActivationToken(pending *PendingUser) (*ActivationToken, error)
	ValidateActivationToken(token string) (*PendingUser, string, error)
	GenerateAccessToken(userID uint) (string, error)
	GenerateRefreshToken(userID uint) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// Mailer defines outbound mail operations
type Mailer interface {
	SendActivationMail(to, name, code string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*ActivationToken, error)
	Activate(ctx context.Context, token, code string) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	SocialAuth(ctx context.Context, email, name, avatarURL, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID uint) error
}

// UserService defines profile operations for an authenticated user
type UserService interface {
	Profile(ctx context.Context, userID uint) (*User, error)
	UpdateInfo(ctx context.Context, userID uint, name, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID uint, oldPassword, newPassword string) (*User, error)
}

// PolicyEnforcer is the subset of the casbin enforcer the middleware needs
type PolicyEnforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
	AddPolicy(params ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
