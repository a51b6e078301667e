package domain

import "time"

// User represents a storefront account. Created only after the email
// ownership check has passed; only PasswordHash mutates afterwards.
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmailOTP represents a one-time code bound to an email address. At most
// one active code per email is current; the verifier always reads the most
// recently created row.
type EmailOTP struct {
	ID        uint
	Email     string
	Code      string
	Verified  bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// PasswordReset represents a single-use recovery token for an account.
type PasswordReset struct {
	ID        uint
	Email     string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// OTPIssue is the outcome of issuing a fresh code.
type OTPIssue struct {
	Email     string
	Code      string
	ExpiresAt time.Time
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User      *User
	Token     string
	ExpiresIn int64
}

// TokenClaims represents session token claims
type TokenClaims struct {
	UserID    uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
