package domain

import "errors"

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// OTP errors
var (
	ErrOTPNotFound  = errors.New("no otp found for this email")
	ErrOTPExpired   = errors.New("otp has expired")
	ErrOTPMismatch  = errors.New("invalid otp code")
	ErrOTPThrottled = errors.New("otp resend limit exceeded")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("invalid reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
)

// Session token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Password policy errors
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordNoUpper  = errors.New("password must include at least 1 uppercase letter")
	ErrPasswordNoDigit  = errors.New("password must include at least 1 number")
	ErrPasswordNoSymbol = errors.New("password must include at least 1 special character")
)

// Dependency errors
var (
	ErrMailDelivery = errors.New("failed to send email")
)
