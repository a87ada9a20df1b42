package httpx

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/you/learnsvc/internal/http/handlers"
	"github.com/you/learnsvc/internal/http/middleware"
)

// BuildRouter wires the REST surface under /api/v1. Protected routes run
// the auth middleware and the role enforcer; everything else is open.
func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, authmw *middleware.AuthMW, cb *middleware.CasbinMW, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if len(origins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
		r.Use(cors.New(corsCfg))
	}

	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "API is working."})
	})

	v1 := r.Group("/api/v1")
	v1.POST("/registration", ah.Register)
	v1.POST("/activateUser", ah.Activate)
	v1.POST("/login", ah.Login)
	v1.POST("/socialAuth", ah.SocialAuth)
	v1.GET("/refreshToken", ah.Refresh)

	protected := v1.Group("/").Use(authmw.WithAuth(), cb.Enforce())
	protected.POST("/logout", ah.Logout)
	protected.GET("/getUserInfo", uh.GetUserInfo)
	protected.PUT("/updateUser", uh.UpdateUser)
	protected.PUT("/updateUserPassword", uh.UpdateUserPassword)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": fmt.Sprintf("Route %s not found.", c.Request.URL.Path),
		})
	})

	return r
}
