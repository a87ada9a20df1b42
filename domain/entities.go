package domain

import "time"

// User represents a platform user. PasswordHash is never serialized:
// neither into API responses nor into the session cache snapshot.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       Avatar    `json:"avatar"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	Courses      []string  `json:"courses"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Avatar is an optional reference to an externally hosted image.
type Avatar struct {
	PublicID string `json:"public_id,omitempty"`
	URL      string `json:"url,omitempty"`
}

// PendingUser is a candidate account carried inside an activation token.
// The password is hashed before it enters the claim; the plaintext never
// leaves the registration flow.
type PendingUser struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	AvatarURL    string `json:"avatar_url,omitempty"`
}

// ActivationToken pairs the signed activation JWT with the 4-digit code
// mailed to the candidate. The code is embedded in the token's claims as
// well; activation succeeds only when both match.
type ActivationToken struct {
	Token string
	Code  string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// TokenClaims represents decoded access/refresh token claims
type TokenClaims struct {
	UserID    uint
	IssuedAt  int64
	ExpiresAt int64
}
