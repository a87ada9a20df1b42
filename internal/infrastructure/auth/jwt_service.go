package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/learnsvc/domain"
)

const activationCodeLength = 4

// JWTServiceImpl implements domain.TokenService. Activation, access and
// refresh tokens are signed with three distinct secrets so a token of one
// kind never verifies as another.
type JWTServiceImpl struct {
	activationSecret []byte
	accessSecret     []byte
	refreshSecret    []byte
	issuer           string
	activationTTL    time.Duration
	accessTTL        time.Duration
	refreshTTL       time.Duration
}

// Secrets holds the three signing secrets for NewJWTService.
type Secrets struct {
	Activation string
	Access     string
	Refresh    string
}

// TTLs holds the three token lifetimes for NewJWTService.
type TTLs struct {
	Activation time.Duration
	Access     time.Duration
	Refresh    time.Duration
}

// NewJWTService creates a new JWT token service
func NewJWTService(secrets Secrets, issuer string, ttls TTLs) domain.TokenService {
	return &JWTServiceImpl{
		activationSecret: []byte(secrets.Activation),
		accessSecret:     []byte(secrets.Access),
		refreshSecret:    []byte(secrets.Refresh),
		issuer:           issuer,
		activationTTL:    ttls.Activation,
		accessTTL:        ttls.Access,
		refreshTTL:       ttls.Refresh,
	}
}

type activationClaims struct {
	User domain.PendingUser `json:"user"`
	Code string             `json:"activation_code"`
	jwt.RegisteredClaims
}

type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateActivationToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateActivationToken(pending *domain.PendingUser) (*domain.ActivationToken, error) {
	code, err := generateCode(activationCodeLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claims := activationClaims{
		User: *pending,
		Code: code,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.activationTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.activationSecret)
	if err != nil {
		return nil, err
	}
	return &domain.ActivationToken{Token: token, Code: code}, nil
}

// ValidateActivationToken implements domain.TokenService. It returns the
// candidate user and the code the token was issued with.
func (j *JWTServiceImpl) ValidateActivationToken(tokenString string) (*domain.PendingUser, string, error) {
	claims := &activationClaims{}
	if err := j.parse(tokenString, claims, j.activationSecret); err != nil {
		return nil, "", err
	}
	return &claims.User, claims.Code, nil
}

// GenerateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateAccessToken(userID uint) (string, error) {
	return j.signSession(userID, j.accessSecret, j.accessTTL)
}

// GenerateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) GenerateRefreshToken(userID uint) (string, error) {
	return j.signSession(userID, j.refreshSecret, j.refreshTTL)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateSession(tokenString, j.accessSecret)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateSession(tokenString, j.refreshSecret)
}

func (j *JWTServiceImpl) signSession(userID uint, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (j *JWTServiceImpl) validateSession(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	claims := &sessionClaims{}
	if err := j.parse(tokenString, claims, secret); err != nil {
		return nil, err
	}
	return &domain.TokenClaims{
		UserID:    claims.UserID,
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (j *JWTServiceImpl) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return domain.ErrTokenMalformed
		}
		return domain.ErrTokenInvalid
	}
	if !token.Valid {
		return domain.ErrTokenInvalid
	}
	return nil
}

// generateCode produces a numeric code from crypto/rand. The code is
// single-use and short-lived; it is only ever valid together with the
// signed activation token it was issued with.
func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
