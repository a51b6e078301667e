package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
  gin_mode: release
  frontend_url: http://localhost:3000
database:
  dsn: host=localhost user=auth dbname=auth
redis:
  addr: localhost:6379
  db: 1
jwt:
  secret: file-secret
  issuer: authsvc
  ttl: 168h
otp:
  ttl: 10m
  resend_window: 60s
reset:
  ttl: 10m
smtp:
  host: smtp.example.com
  port: 587
  from: noreply@example.com
  from_name: OMBRE affaire
cors:
  allowed_origins:
    - http://localhost:3000
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.Equal(t, "host=localhost user=auth dbname=auth", cfg.DSN)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 1, cfg.RedisDB)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, time.Minute, cfg.OTPResendWindow)
	assert.Equal(t, 10*time.Minute, cfg.ResetTTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadFrom_Defaults(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, time.Duration(0), cfg.OTPResendWindow)
	assert.Equal(t, 10*time.Minute, cfg.ResetTTL)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  port: 8080
jwt:
  secret: file-secret
`)

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_DSN", "host=db user=auth")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "host=db user=auth", cfg.DSN)
}

func TestLoadFrom_BadDuration(t *testing.T) {
	path := writeConfig(t, `
jwt:
  ttl: soon
`)

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
