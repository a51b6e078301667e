package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	otpRepo     domain.OTPRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	tokenTTL    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	otpRepo domain.OTPRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	tokenTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		tokenTTL:    tokenTTL,
	}
}

// Register implements domain.AuthService. Registration trusts the Verified
// flag set during OTP verification and never re-checks the code itself, so
// the verify-then-register client flow is load-bearing.
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)

	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	otp, err := s.otpRepo.LatestByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return nil, domain.ErrEmailNotVerified
		}
		return nil, fmt.Errorf("failed to load otp record: %w", err)
	}
	if !otp.Verified {
		return nil, domain.ErrEmailNotVerified
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Clean up the consumed OTP. The account exists either way, so a
	// failure here is logged, not surfaced.
	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		log.Printf("OTP_CLEANUP_FAILED: email=%s error=%v", email, err)
	}

	log.Printf("USER_REGISTERED: user_id=%d email=%s timestamp=%s", user.ID, email, time.Now().UTC().Format(time.RFC3339))
	return user, nil
}

// Login implements domain.AuthService. Unknown accounts and wrong
// passwords fail identically so the endpoint cannot be used to enumerate
// registered emails.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = domain.NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
