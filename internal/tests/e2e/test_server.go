package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ombreaffaire/authsvc/domain"
	httpx "github.com/ombreaffaire/authsvc/internal/http"
	"github.com/ombreaffaire/authsvc/internal/http/handlers"
	"github.com/ombreaffaire/authsvc/internal/http/middleware"
	"github.com/ombreaffaire/authsvc/internal/infrastructure/auth"
	"github.com/ombreaffaire/authsvc/internal/infrastructure/database"
	"github.com/ombreaffaire/authsvc/internal/infrastructure/repositories"
	"github.com/ombreaffaire/authsvc/internal/mocks"
	"github.com/ombreaffaire/authsvc/internal/services"
)

// TestServer wires the full stack against in-memory backends: sqlite for
// the relational store, miniredis for the resend throttle, and a recording
// mail service instead of SMTP.
type TestServer struct {
	Router   *gin.Engine
	Mail     *mocks.MockNotificationService
	TokenSvc domain.TokenService
	OTPRepo  domain.OTPRepository
	Redis    *miniredis.Miniredis

	OTPTTL       time.Duration
	ResendWindow time.Duration
}

type TestServerOptions struct {
	OTPTTL       time.Duration
	ResendWindow time.Duration
}

func NewTestServer(t *testing.T, opts TestServerOptions) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if opts.OTPTTL == 0 {
		opts.OTPTTL = 10 * time.Minute
	}

	gdb, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gdb))

	mr := miniredis.RunT(t)

	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOTPRepository(gdb)
	resetRepo := repositories.NewResetRepository(gdb)

	var throttle domain.OTPThrottle
	if opts.ResendWindow > 0 {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		throttle = repositories.NewThrottleRepository(client, opts.ResendWindow)
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-secret", "authsvc", 7*24*time.Hour)
	mail := mocks.NewMockNotificationService()

	otpSvc := services.NewOTPService(otpRepo, userRepo, mail, throttle, services.OTPConfig{
		TTL:          opts.OTPTTL,
		ResendWindow: opts.ResendWindow,
	})
	authSvc := services.NewAuthService(userRepo, otpRepo, passwordSvc, tokenSvc, 7*24*time.Hour)
	resetSvc := services.NewResetService(resetRepo, userRepo, passwordSvc, mail, services.ResetConfig{
		TTL:         10 * time.Minute,
		FrontendURL: "http://localhost:3000",
	})

	ah := handlers.NewAuthHandlers(authSvc, otpSvc, resetSvc)
	jwtmw := middleware.NewAuthMW(tokenSvc)

	return &TestServer{
		Router:       httpx.BuildRouter(ah, jwtmw, []string{"http://localhost:3000"}),
		Mail:         mail,
		TokenSvc:     tokenSvc,
		OTPRepo:      otpRepo,
		Redis:        mr,
		OTPTTL:       opts.OTPTTL,
		ResendWindow: opts.ResendWindow,
	}
}

// PostJSON sends a JSON body to the server and returns the recorder.
func (s *TestServer) PostJSON(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Get sends a GET request, optionally with a bearer token.
func (s *TestServer) Get(t *testing.T, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// Body decodes a JSON response body.
func Body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
