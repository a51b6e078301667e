package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error
}

// OTPRepository defines email OTP data access operations
type OTPRepository interface {
	Create(ctx context.Context, otp *EmailOTP) error
	// LatestByEmail returns the most recently created row for the email,
	// guarding against duplicate rows left behind by racing issuers.
	LatestByEmail(ctx context.Context, email string) (*EmailOTP, error)
	MarkVerified(ctx context.Context, id uint) error
	DeleteByEmail(ctx context.Context, email string) error
}

// PasswordResetRepository defines reset token data access operations
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *PasswordReset) error
	FindByToken(ctx context.Context, token string) (*PasswordReset, error)
	DeleteByEmail(ctx context.Context, email string) error
	// ConsumeByToken deletes the row for the token and reports whether this
	// caller won the delete. Two concurrent consumers cannot both win.
	ConsumeByToken(ctx context.Context, token string) (bool, error)
}

// OTPThrottle guards OTP reissue frequency per email.
type OTPThrottle interface {
	// Reserve claims the resend slot for the email. When the slot is taken
	// it returns false and how long the caller must wait.
	Reserve(ctx context.Context, email string) (bool, time.Duration, error)
	// Release frees the slot early, used when delivery fails.
	Release(ctx context.Context, email string) error
}

// OTPService defines the OTP issue/verify protocol
type OTPService interface {
	Issue(ctx context.Context, email string) (*OTPIssue, error)
	Verify(ctx context.Context, email, code string) error
}

// AuthService defines registration and login business logic
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// PasswordResetService defines the recovery token protocol
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Validate(ctx context.Context, token string) error
	Consume(ctx context.Context, token, newPassword string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session token operations
type TokenService interface {
	Generate(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService defines outbound mail operations
type NotificationService interface {
	SendEmail(to, subject, htmlBody string) error
}
