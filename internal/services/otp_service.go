package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
)

// OTPServiceImpl implements domain.OTPService
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	userRepo        domain.UserRepository
	notificationSvc domain.NotificationService
	throttle        domain.OTPThrottle
	config          OTPConfig
}

type OTPConfig struct {
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service. throttle may be nil, in which
// case reissue frequency is not limited.
func NewOTPService(otpRepo domain.OTPRepository, userRepo domain.UserRepository, notificationSvc domain.NotificationService, throttle domain.OTPThrottle, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		throttle:        throttle,
		config:          config,
	}
}

// Issue implements domain.OTPService. Old codes for the email are deleted
// before the new row is inserted, so at most one code is current. The row
// intentionally survives a failed send: a retry re-deletes and reissues.
func (s *OTPServiceImpl) Issue(ctx context.Context, email string) (*domain.OTPIssue, error) {
	email = domain.NormalizeEmail(email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if s.throttle != nil && s.config.ResendWindow > 0 {
		ok, wait, err := s.throttle.Reserve(ctx, email)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: retry in %ds", domain.ErrOTPThrottled, int(wait.Seconds())+1)
		}
	}

	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to delete previous otps: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp code: %w", err)
	}

	otp := &domain.EmailOTP{
		Email:     email,
		Code:      code,
		Verified:  false,
		ExpiresAt: time.Now().Add(s.config.TTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	subject, body := otpEmail(code, s.config.TTL)
	if err := s.notificationSvc.SendEmail(email, subject, body); err != nil {
		if s.throttle != nil && s.config.ResendWindow > 0 {
			_ = s.throttle.Release(ctx, email)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	return &domain.OTPIssue{
		Email:     email,
		Code:      code,
		ExpiresAt: otp.ExpiresAt,
	}, nil
}

// Verify implements domain.OTPService. Verification is idempotent: the row
// stays valid until registration deletes it or a newer issue supersedes it.
func (s *OTPServiceImpl) Verify(ctx context.Context, email, code string) error {
	email = domain.NormalizeEmail(email)

	otp, err := s.otpRepo.LatestByEmail(ctx, email)
	if err != nil {
		return err
	}

	if time.Now().After(otp.ExpiresAt) {
		return domain.ErrOTPExpired
	}

	if otp.Code != code {
		return domain.ErrOTPMismatch
	}

	if err := s.otpRepo.MarkVerified(ctx, otp.ID); err != nil {
		return fmt.Errorf("failed to mark otp verified: %w", err)
	}

	log.Printf("EMAIL_VERIFIED: email=%s timestamp=%s", email, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// generateCode returns a 6-digit decimal code, uniform in [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func otpEmail(code string, ttl time.Duration) (subject, body string) {
	subject = "Verify your email - OMBRE affaire OTP"
	body = fmt.Sprintf(`<h2>OMBRE affaire - One Time Password</h2>
<p>Hello,</p>
<p>Your one-time password (OTP) is:</p>
<h3 style="color: #333; font-size: 24px;">%s</h3>
<p>This code is valid for %d minutes. Do not share it with anyone.</p>
<p>Thanks,<br/>OMBRE affaire Support</p>`, code, int(ttl.Minutes()))
	return subject, body
}
