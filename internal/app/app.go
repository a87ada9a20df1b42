package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/you/learnsvc/internal/config"
	httpx "github.com/you/learnsvc/internal/http"
	"github.com/you/learnsvc/internal/http/handlers"
	"github.com/you/learnsvc/internal/http/middleware"
	"github.com/you/learnsvc/internal/infrastructure/auth"
	"github.com/you/learnsvc/internal/infrastructure/database"
	"github.com/you/learnsvc/internal/infrastructure/notifications"
	"github.com/you/learnsvc/internal/infrastructure/repositories"
	"github.com/you/learnsvc/internal/services"
)

// Run wires every component from the immutable config and serves until
// the listener fails. Startup failures are fatal; request failures never
// are.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(
		auth.Secrets{Activation: cfg.ActivationSecret, Access: cfg.AccessSecret, Refresh: cfg.RefreshSecret},
		cfg.JWTIssuer,
		auth.TTLs{Activation: cfg.ActivationTTL, Access: cfg.AccessTTL, Refresh: cfg.RefreshTTL},
	)
	mailer := notifications.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername,
		cfg.SMTPPassword, cfg.SMTPFrom, int(cfg.ActivationTTL.Minutes()))

	userRepo := repositories.NewUserRepository(gdb)
	sessionCache := repositories.NewSessionCache(rdb, cfg.RefreshTTL)

	authSvc := services.NewAuthService(userRepo, sessionCache, passwordSvc, tokenSvc, mailer)
	userSvc := services.NewUserService(userRepo, sessionCache, passwordSvc)

	cookieOpts := handlers.CookieOptions{
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		Secure:     cfg.IsProduction(),
	}
	authH := handlers.NewAuthHandlers(authSvc, cookieOpts)
	userH := handlers.NewUserHandlers(userSvc)

	authMW := middleware.NewAuthMW(tokenSvc, sessionCache, userRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, userH, authMW, casbinMW, cfg.Origins)

	seedPolicies(cas)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Environment).Msg("listening")
	return http.ListenAndServe(addr, r)
}

func seedPolicies(cas *auth.CasbinService) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	cas.E.AddPolicy("role_admin", "/api/v1/*", "(GET|POST|PUT|DELETE)")
	cas.E.AddPolicy("role_user", "/api/v1/logout", "POST")
	cas.E.AddPolicy("role_user", "/api/v1/getUserInfo", "GET")
	cas.E.AddPolicy("role_user", "/api/v1/updateUser", "PUT")
	cas.E.AddPolicy("role_user", "/api/v1/updateUserPassword", "PUT")
	_ = cas.E.SavePolicy()
	log.Info().Msg("casbin: seeded default policies")
}
