package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/you/learnsvc/domain"
)

const (
	// AccessTokenCookie is the cookie carrying the access token.
	AccessTokenCookie = "access_token"
	// RefreshTokenCookie is the cookie carrying the refresh token.
	RefreshTokenCookie = "refresh_token"

	currentUserKey = "current_user"
)

// AuthMW wraps the token service and session cache for middleware
type AuthMW struct {
	tokenSvc     domain.TokenService
	sessionCache domain.SessionCache
	userRepo     domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, sessionCache domain.SessionCache, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:     tokenSvc,
		sessionCache: sessionCache,
		userRepo:     userRepo,
	}
}

// WithAuth validates the access token and resolves the caller's identity
// before any handler runs. The identity comes from the session cache when
// present, falling back to the user store. Handlers read it back with
// CurrentUser; this is the only place that writes it.
func (mw *AuthMW) WithAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			abortUnauthorized(c, "access token required")
			return
		}

		claims, err := mw.tokenSvc.ValidateAccessToken(token)
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				abortUnauthorized(c, "access token expired")
			default:
				abortUnauthorized(c, "invalid access token")
			}
			return
		}

		user, err := mw.sessionCache.Find(c.Request.Context(), claims.UserID)
		if err != nil {
			user, err = mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
			if err != nil {
				abortUnauthorized(c, "user not found")
				return
			}
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated identity attached by WithAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// tokenFromRequest prefers the access_token cookie and falls back to a
// Bearer Authorization header.
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}
