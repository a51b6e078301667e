package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
)

// resetTokenBytes is the entropy of a recovery token (hex-encoded to 64
// characters on the wire).
const resetTokenBytes = 32

// ResetServiceImpl implements domain.PasswordResetService
type ResetServiceImpl struct {
	resetRepo       domain.PasswordResetRepository
	userRepo        domain.UserRepository
	passwordSvc     domain.PasswordService
	notificationSvc domain.NotificationService
	config          ResetConfig
}

type ResetConfig struct {
	TTL         time.Duration
	FrontendURL string
}

// NewResetService creates a new password reset service
func NewResetService(resetRepo domain.PasswordResetRepository, userRepo domain.UserRepository, passwordSvc domain.PasswordService, notificationSvc domain.NotificationService, config ResetConfig) domain.PasswordResetService {
	return &ResetServiceImpl{
		resetRepo:       resetRepo,
		userRepo:        userRepo,
		passwordSvc:     passwordSvc,
		notificationSvc: notificationSvc,
		config:          config,
	}
}

// Request implements domain.PasswordResetService. Requires an existing
// account; prior tokens for the email are invalidated before the new one
// is stored. Like OTP issue, the row survives a failed send.
func (s *ResetServiceImpl) Request(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return err
	}

	if err := s.resetRepo.DeleteByEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to delete previous reset tokens: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	reset := &domain.PasswordReset{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	subject, body := resetEmail(s.config.FrontendURL, token, s.config.TTL)
	if err := s.notificationSvc.SendEmail(email, subject, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	return nil
}

// Validate implements domain.PasswordResetService
func (s *ResetServiceImpl) Validate(ctx context.Context, token string) error {
	reset, err := s.resetRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	if time.Now().After(reset.ExpiresAt) {
		return domain.ErrResetTokenExpired
	}

	return nil
}

// Consume implements domain.PasswordResetService. The token row is claimed
// with a conditional delete before the password write, so a token cannot be
// spent twice even under concurrent calls.
func (s *ResetServiceImpl) Consume(ctx context.Context, token, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	reset, err := s.resetRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	if time.Now().After(reset.ExpiresAt) {
		return domain.ErrResetTokenExpired
	}

	claimed, err := s.resetRepo.ConsumeByToken(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !claimed {
		return domain.ErrResetTokenInvalid
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordByEmail(ctx, reset.Email, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("PASSWORD_RESET_COMPLETED: email=%s timestamp=%s", reset.Email, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// generateResetToken returns a hex-encoded 256-bit random token.
func generateResetToken() (string, error) {
	bytes := make([]byte, resetTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func resetEmail(frontendURL, token string, ttl time.Duration) (subject, body string) {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token)
	subject = "Reset your OMBRE affaire password"
	body = fmt.Sprintf(`<h2>Password Reset</h2>
<p>You requested a password reset. Click the link below to set a new password:</p>
<a href="%s">%s</a>
<p>This link is valid for %d minutes.</p>`, resetLink, resetLink, int(ttl.Minutes()))
	return subject, body
}
