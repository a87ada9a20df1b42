package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/learnsvc/domain"
)

// CasbinMW gates protected routes by (role, path, method) policies.
type CasbinMW struct {
	enforcer domain.PolicyEnforcer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.PolicyEnforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce runs after WithAuth and checks the caller's role against the
// persisted policies for the requested path and verb.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "identity not resolved"})
			return
		}

		allowed, err := mw.enforcer.Enforce("role_"+user.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "authorization check failed"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "insufficient role permissions"})
			return
		}

		c.Next()
	}
}
