package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ombreaffaire/authsvc/internal/config"
	httpx "github.com/ombreaffaire/authsvc/internal/http"
	"github.com/ombreaffaire/authsvc/internal/http/handlers"
	"github.com/ombreaffaire/authsvc/internal/http/middleware"
	"github.com/ombreaffaire/authsvc/internal/infrastructure/auth"
	"github.com/ombreaffaire/authsvc/internal/infrastructure/database"
	"github.com/ombreaffaire/authsvc/internal/infrastructure/notifications"
	"github.com/ombreaffaire/authsvc/internal/infrastructure/repositories"
	"github.com/ombreaffaire/authsvc/internal/services"

	"github.com/ombreaffaire/authsvc/domain"
)

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

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	notificationSvc := notifications.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPFromName)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOTPRepository(gdb)
	resetRepo := repositories.NewResetRepository(gdb)

	// The resend throttle needs redis; skipped entirely when disabled.
	var throttle domain.OTPThrottle
	if cfg.OTPResendWindow > 0 && cfg.RedisAddr != "" {
		rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(context.Background()); err != nil {
			return err
		}
		throttle = repositories.NewThrottleRepository(rdb.Client, cfg.OTPResendWindow)
	}

	// Services
	otpSvc := services.NewOTPService(otpRepo, userRepo, notificationSvc, throttle, services.OTPConfig{
		TTL:          cfg.OTPTTL,
		ResendWindow: cfg.OTPResendWindow,
	})
	authSvc := services.NewAuthService(userRepo, otpRepo, passwordSvc, tokenSvc, cfg.TokenTTL)
	resetSvc := services.NewResetService(resetRepo, userRepo, passwordSvc, notificationSvc, services.ResetConfig{
		TTL:         cfg.ResetTTL,
		FrontendURL: cfg.FrontendURL,
	})

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, otpSvc, resetSvc)
	jwtMW := middleware.NewAuthMW(tokenSvc)

	r := httpx.BuildRouter(authH, jwtMW, cfg.AllowedOrigins)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
