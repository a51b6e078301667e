package mocks

import (
	"context"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
)

// MockOTPThrottle implements domain.OTPThrottle for testing
type MockOTPThrottle struct {
	ReserveFunc func(ctx context.Context, email string) (bool, time.Duration, error)
	ReleaseFunc func(ctx context.Context, email string) error

	Released []string
}

// NewMockOTPThrottle creates a new MockOTPThrottle with default behaviors
func NewMockOTPThrottle() *MockOTPThrottle {
	return &MockOTPThrottle{}
}

// Reserve claims the resend slot
func (m *MockOTPThrottle) Reserve(ctx context.Context, email string) (bool, time.Duration, error) {
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, email)
	}
	// Default behavior: slot free
	return true, 0, nil
}

// Release frees the resend slot
func (m *MockOTPThrottle) Release(ctx context.Context, email string) error {
	m.Released = append(m.Released, email)
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, email)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPThrottle = (*MockOTPThrottle)(nil)
