package httpx

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ombreaffaire/authsvc/internal/http/handlers"
	"github.com/ombreaffaire/authsvc/internal/http/middleware"
)

// BuildRouter wires the auth endpoints. Only the configured origins may
// call them; preflight OPTIONS is handled by the CORS middleware before
// any business logic runs.
func BuildRouter(ah *handlers.AuthHandlers, jwtmw *middleware.AuthMW, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"POST", "GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/send-otp", ah.SendOTP)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/request-password-reset", ah.RequestPasswordReset)
	auth.POST("/validate-reset-token", ah.ValidateResetToken)
	auth.POST("/reset-password", ah.ResetPassword)

	v := r.Group("/auth").Use(jwtmw.WithJWT())
	v.GET("/me", ah.Me)

	return r
}
